package warehouse

import "errors"

var ErrWarehouseNotFound = errors.New("warehouse not found")
