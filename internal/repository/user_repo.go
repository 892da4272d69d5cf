package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"app/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

type userRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, u *model.User) error {
	vehicleInfo, err := marshalVehicleInfo(u.VehicleInfo)
	if err != nil {
		return fmt.Errorf("failed to create user profile: %w", err)
	}
	query := `INSERT INTO users (id, email, display_name, company_name, vehicle_info)
              VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query, u.ID, u.Email, u.DisplayName, u.CompanyName, vehicleInfo).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create user profile: %w", ErrConflict)
		}
		return fmt.Errorf("failed to create user profile: %w", err)
	}
	return nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	var vehicleInfo []byte
	query := `SELECT id, email, display_name, company_name, vehicle_info, created_at, updated_at
		FROM users WHERE id=$1`
	row := r.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.CompanyName, &vehicleInfo, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	if len(vehicleInfo) > 0 {
		u.VehicleInfo = &model.VehicleInfo{}
		if err := json.Unmarshal(vehicleInfo, u.VehicleInfo); err != nil {
			return nil, fmt.Errorf("failed to decode vehicle info: %w", err)
		}
	}
	return &u, nil
}

func marshalVehicleInfo(v *model.VehicleInfo) (any, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
