package service

import (
	"context"
	"errors"

	"app/internal/model"
	"app/internal/repository"
)

var ErrUserConflict = errors.New("user profile already exists")

type UserService interface {
	// GetOrCreate returns the driver's profile, creating a minimal one from
	// the auth token's identity on first access.
	GetOrCreate(ctx context.Context, userID, email string) (*model.User, error)
	Create(ctx context.Context, u *model.User) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetOrCreate(ctx context.Context, userID, email string) (*model.User, error) {
	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	u = &model.User{ID: userID, Email: email}
	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		// Lost a race against a concurrent first access; the row exists now.
		if errors.Is(err, repository.ErrConflict) {
			return s.userRepo.GetUserByID(ctx, userID)
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) Create(ctx context.Context, u *model.User) (*model.User, error) {
	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserConflict
		}
		return nil, err
	}
	return u, nil
}
