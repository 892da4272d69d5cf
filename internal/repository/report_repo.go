package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"app/internal/model"
)

// ReportRepository defines the persistence boundary for daily reports. Every
// operation is scoped to a single owner; update and delete match on both the
// row id and the user id so one driver can never touch another's rows.
type ReportRepository interface {
	Create(ctx context.Context, r *model.DailyReport) error
	GetByDate(ctx context.Context, userID, date string) (*model.DailyReport, error)
	Update(ctx context.Context, r *model.DailyReport) error
	// Delete removes a report and returns its date, so callers can refresh
	// the snapshot for the affected month.
	Delete(ctx context.Context, userID string, id int64) (string, error)
	List(ctx context.Context, userID string, filter model.ReportFilter) ([]model.DailyReport, error)
	LastOdometerReading(ctx context.Context, userID string) (*int, error)
}

type reportRepo struct {
	db *sql.DB
}

// NewReportRepo creates a new ReportRepository
func NewReportRepo(db *sql.DB) ReportRepository {
	return &reportRepo{db: db}
}

const reportColumns = `id, user_id, date, is_worked, start_time, end_time,
	start_odometer, end_odometer, distance_km, deliveries, highway_fee, notes,
	created_at, updated_at`

func scanReport(row interface{ Scan(...any) error }, r *model.DailyReport) error {
	return row.Scan(
		&r.ID, &r.UserID, &r.Date, &r.IsWorked, &r.StartTime, &r.EndTime,
		&r.StartOdometer, &r.EndOdometer, &r.DistanceKm, &r.Deliveries,
		&r.HighwayFee, &r.Notes, &r.CreatedAt, &r.UpdatedAt,
	)
}

func (repo *reportRepo) Create(ctx context.Context, r *model.DailyReport) error {
	query := `INSERT INTO daily_reports
		(user_id, date, is_worked, start_time, end_time, start_odometer,
		 end_odometer, distance_km, deliveries, highway_fee, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		r.UserID, r.Date, r.IsWorked, r.StartTime, r.EndTime, r.StartOdometer,
		r.EndOdometer, r.DistanceKm, r.Deliveries, r.HighwayFee, r.Notes,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create daily report: %w", ErrConflict)
		}
		return fmt.Errorf("failed to create daily report: %w", err)
	}
	return nil
}

func (repo *reportRepo) GetByDate(ctx context.Context, userID, date string) (*model.DailyReport, error) {
	var r model.DailyReport
	query := `SELECT ` + reportColumns + ` FROM daily_reports WHERE user_id=$1 AND date=$2`
	row := repo.db.QueryRowContext(ctx, query, userID, date)
	if err := scanReport(row, &r); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get daily report: %w", err)
	}
	return &r, nil
}

func (repo *reportRepo) Update(ctx context.Context, r *model.DailyReport) error {
	query := `UPDATE daily_reports SET
		date=$1, is_worked=$2, start_time=$3, end_time=$4, start_odometer=$5,
		end_odometer=$6, distance_km=$7, deliveries=$8, highway_fee=$9,
		notes=$10, updated_at=now()
		WHERE id=$11 AND user_id=$12
		RETURNING created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		r.Date, r.IsWorked, r.StartTime, r.EndTime, r.StartOdometer,
		r.EndOdometer, r.DistanceKm, r.Deliveries, r.HighwayFee, r.Notes,
		r.ID, r.UserID,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to update daily report: %w", ErrNotFound)
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to update daily report: %w", ErrConflict)
		}
		return fmt.Errorf("failed to update daily report: %w", err)
	}
	return nil
}

func (repo *reportRepo) Delete(ctx context.Context, userID string, id int64) (string, error) {
	var date string
	query := `DELETE FROM daily_reports WHERE id=$1 AND user_id=$2 RETURNING date`
	if err := repo.db.QueryRowContext(ctx, query, id, userID).Scan(&date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("failed to delete daily report: %w", ErrNotFound)
		}
		return "", fmt.Errorf("failed to delete daily report: %w", err)
	}
	return date, nil
}

func (repo *reportRepo) List(ctx context.Context, userID string, filter model.ReportFilter) ([]model.DailyReport, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + reportColumns + ` FROM daily_reports WHERE user_id=$1`)
	args := []any{userID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		sb.WriteString(" AND date >= $" + strconv.Itoa(len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		sb.WriteString(" AND date <= $" + strconv.Itoa(len(args)))
	}
	if filter.IsWorked != nil {
		args = append(args, *filter.IsWorked)
		sb.WriteString(" AND is_worked = $" + strconv.Itoa(len(args)))
	}
	sb.WriteString(" ORDER BY date DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}

	rows, err := repo.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily reports: %w", err)
	}
	defer rows.Close()

	var reports []model.DailyReport
	for rows.Next() {
		var r model.DailyReport
		if err := scanReport(rows, &r); err != nil {
			return nil, fmt.Errorf("failed to list daily reports: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list daily reports: %w", err)
	}
	return reports, nil
}

func (repo *reportRepo) LastOdometerReading(ctx context.Context, userID string) (*int, error) {
	var reading int
	query := `SELECT end_odometer FROM daily_reports
		WHERE user_id=$1 AND end_odometer IS NOT NULL
		ORDER BY date DESC LIMIT 1`
	if err := repo.db.QueryRowContext(ctx, query, userID).Scan(&reading); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last odometer reading: %w", err)
	}
	return &reading, nil
}
