package model

import "time"

// DailyReport is one driver's work record for a single calendar date.
// At most one report exists per (user_id, date); the daily_reports table
// carries a unique index on that pair.
type DailyReport struct {
	ID            int64     `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	Date          string    `db:"date" json:"date"` // YYYY-MM-DD
	IsWorked      bool      `db:"is_worked" json:"is_worked"`
	StartTime     *string   `db:"start_time" json:"start_time,omitempty"` // HH:MM
	EndTime       *string   `db:"end_time" json:"end_time,omitempty"`     // HH:MM
	StartOdometer *int      `db:"start_odometer" json:"start_odometer,omitempty"`
	EndOdometer   *int      `db:"end_odometer" json:"end_odometer,omitempty"`
	DistanceKm    *int      `db:"distance_km" json:"distance_km,omitempty"` // derived, never user-supplied
	Deliveries    *int      `db:"deliveries" json:"deliveries,omitempty"`
	HighwayFee    *int      `db:"highway_fee" json:"highway_fee,omitempty"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// DailyReportForm is the raw submission for one day. Nil means "not yet
// entered", which is distinct from zero for every optional field.
type DailyReportForm struct {
	Date          string
	IsWorked      bool
	StartTime     *string
	EndTime       *string
	StartOdometer *int
	EndOdometer   *int
	Deliveries    *int
	HighwayFee    *int
	Notes         *string
}

// ReportFilter narrows a report listing. Zero limit means no limit.
type ReportFilter struct {
	StartDate *string
	EndDate   *string
	IsWorked  *bool
	Limit     int
	Offset    int
}

// MonthlyStats is the on-demand aggregate over one user's worked days in a
// calendar month.
type MonthlyStats struct {
	WorkingDays     int     `json:"working_days"`
	TotalDistance   int     `json:"total_distance"`
	TotalDeliveries int     `json:"total_deliveries"`
	TotalHighwayFee int     `json:"total_highway_fee"`
	TotalHours      float64 `json:"total_hours"`
}

// MonthlyReport is the persisted snapshot of MonthlyStats kept in the
// monthly_reports table, refreshed by the aggregation orchestrator.
type MonthlyReport struct {
	UserID          string    `db:"user_id" json:"user_id"`
	Year            int       `db:"year" json:"year"`
	Month           int       `db:"month" json:"month"`
	WorkingDays     int       `db:"working_days" json:"working_days"`
	TotalDistance   int       `db:"total_distance" json:"total_distance"`
	TotalDeliveries int       `db:"total_deliveries" json:"total_deliveries"`
	TotalHighwayFee int       `db:"total_highway_fee" json:"total_highway_fee"`
	TotalHours      float64   `db:"total_hours" json:"total_hours"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// AggregationJob asks the orchestrator to refresh one user's snapshot for
// one month.
type AggregationJob struct {
	UserID string `json:"user_id"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
}
