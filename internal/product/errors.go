package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("a product with this id already exists")
	ErrUnknownFormat   = errors.New("unknown template format")
)
