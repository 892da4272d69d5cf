package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"app/internal/model"
)

// MonthlyReportRepository persists the monthly_reports snapshot rows that the
// aggregation orchestrator maintains. Snapshots are derived data; the upsert
// overwrites whatever was there before.
type MonthlyReportRepository interface {
	Upsert(ctx context.Context, m *model.MonthlyReport) error
	Get(ctx context.Context, userID string, year, month int) (*model.MonthlyReport, error)
}

type monthlyReportRepo struct {
	db *sql.DB
}

func NewMonthlyReportRepo(db *sql.DB) MonthlyReportRepository {
	return &monthlyReportRepo{db: db}
}

func (r *monthlyReportRepo) Upsert(ctx context.Context, m *model.MonthlyReport) error {
	query := `INSERT INTO monthly_reports
		(user_id, year, month, working_days, total_distance, total_deliveries, total_highway_fee, total_hours, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (user_id, year, month) DO UPDATE SET
			working_days=EXCLUDED.working_days,
			total_distance=EXCLUDED.total_distance,
			total_deliveries=EXCLUDED.total_deliveries,
			total_highway_fee=EXCLUDED.total_highway_fee,
			total_hours=EXCLUDED.total_hours,
			updated_at=now()
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		m.UserID, m.Year, m.Month, m.WorkingDays, m.TotalDistance,
		m.TotalDeliveries, m.TotalHighwayFee, m.TotalHours,
	).Scan(&m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert monthly report: %w", err)
	}
	return nil
}

func (r *monthlyReportRepo) Get(ctx context.Context, userID string, year, month int) (*model.MonthlyReport, error) {
	var m model.MonthlyReport
	query := `SELECT user_id, year, month, working_days, total_distance, total_deliveries, total_highway_fee, total_hours, updated_at
		FROM monthly_reports WHERE user_id=$1 AND year=$2 AND month=$3`
	row := r.db.QueryRowContext(ctx, query, userID, year, month)
	err := row.Scan(&m.UserID, &m.Year, &m.Month, &m.WorkingDays, &m.TotalDistance,
		&m.TotalDeliveries, &m.TotalHighwayFee, &m.TotalHours, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get monthly report: %w", err)
	}
	return &m, nil
}
