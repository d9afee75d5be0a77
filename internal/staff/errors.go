package staff

import "errors"

var (
	ErrStaffNotFound = errors.New("staff member not found")
	// ErrEmailTaken means the e-mail belongs to a profile of another company.
	ErrEmailTaken = errors.New("email is registered to another company")
)
