package dto

import "time"

// UserCreateDTO is used for incoming profile create requests
type UserCreateDTO struct {
	DisplayName *string         `json:"display_name"`
	CompanyName *string         `json:"company_name"`
	VehicleInfo *VehicleInfoDTO `json:"vehicle_info"`
}

type VehicleInfoDTO struct {
	Model *string `json:"model,omitempty"`
	Plate *string `json:"plate,omitempty"`
	Year  *int    `json:"year,omitempty"`
}

// UserResponseDTO is returned in API responses
type UserResponseDTO struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	DisplayName *string         `json:"display_name,omitempty"`
	CompanyName *string         `json:"company_name,omitempty"`
	VehicleInfo *VehicleInfoDTO `json:"vehicle_info,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
