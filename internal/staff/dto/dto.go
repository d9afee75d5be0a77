package dto

import "github.com/fekuna/protrack-service/internal/model"

type StaffFilters struct {
	CompanyID string
	Rol       string
	Page      int
	PageSize  int
}

// CreatedStaff carries the temporary password in clear text. It is returned
// once and never stored.
type CreatedStaff struct {
	Profile      *model.Profile `json:"profile"`
	TempPassword string         `json:"temp_password"`
	// Reset is set when the e-mail already existed and only its password and
	// profile fields were replaced.
	Reset bool `json:"reset"`
}
