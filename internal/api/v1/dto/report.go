package dto

import (
	"time"

	"app/internal/report"
)

// ReportUpsertDTO is the daily report submission body. Optional fields are
// pointers: an omitted field means "not entered", not zero.
type ReportUpsertDTO struct {
	Date          string  `json:"date" validate:"required"`
	IsWorked      bool    `json:"is_worked"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
	StartOdometer *int    `json:"start_odometer"`
	EndOdometer   *int    `json:"end_odometer"`
	Deliveries    *int    `json:"deliveries"`
	HighwayFee    *int    `json:"highway_fee"`
	Notes         *string `json:"notes"`
}

// ReportResponseDTO is returned in API responses
type ReportResponseDTO struct {
	ID            int64     `json:"id"`
	Date          string    `json:"date"`
	IsWorked      bool      `json:"is_worked"`
	StartTime     *string   `json:"start_time,omitempty"`
	EndTime       *string   `json:"end_time,omitempty"`
	StartOdometer *int      `json:"start_odometer,omitempty"`
	EndOdometer   *int      `json:"end_odometer,omitempty"`
	DistanceKm    *int      `json:"distance_km,omitempty"`
	Deliveries    *int      `json:"deliveries,omitempty"`
	HighwayFee    *int      `json:"highway_fee,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidationErrorResponseDTO carries per-field messages for a rejected form.
type ValidationErrorResponseDTO struct {
	Errors report.FieldErrors `json:"errors"`
}

type MonthlyStatsResponseDTO struct {
	WorkingDays     int     `json:"working_days"`
	TotalDistance   int     `json:"total_distance"`
	TotalDeliveries int     `json:"total_deliveries"`
	TotalHighwayFee int     `json:"total_highway_fee"`
	TotalHours      float64 `json:"total_hours"`
}

// LastOdometerResponseDTO reports the newest recorded end odometer, null
// when the driver has no readings yet.
type LastOdometerResponseDTO struct {
	EndOdometer *int `json:"end_odometer"`
}
