package movement

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrRestockDisabled = errors.New("restock notifications are not configured")
)
