package dto

type WarehouseFilters struct {
	CompanyID string
	Search    string
	Page      int
	PageSize  int
}
