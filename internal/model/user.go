package model

import "time"

// User represents a driver's profile in the system. The row id matches the
// auth provider's user id; the report core reads profiles but never mutates
// them.
type User struct {
	ID          string       `db:"id" json:"id"`
	Email       string       `db:"email" json:"email"`
	DisplayName *string      `db:"display_name" json:"display_name,omitempty"`
	CompanyName *string      `db:"company_name" json:"company_name,omitempty"`
	VehicleInfo *VehicleInfo `db:"vehicle_info" json:"vehicle_info,omitempty"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

// VehicleInfo is stored as JSONB on the users row.
type VehicleInfo struct {
	Model *string `json:"model,omitempty"`
	Plate *string `json:"plate,omitempty"`
	Year  *int    `json:"year,omitempty"`
}
