package dto

import (
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/product/filter"
	"github.com/shopspring/decimal"
)

type ProductFilters struct {
	CompanyID string      `json:"company_id"`
	Spec      filter.Spec `json:"spec"`
	Page      int         `json:"page"`
	PageSize  int         `json:"page_size"`
}

type ProductList struct {
	Products []model.Product `json:"products"`
	// Total counts matches before pagination.
	Total int `json:"total"`
}

type Template struct {
	Filename    string
	ContentType string
	Content     []byte
}

type CompanyCounts struct {
	Staff      int `db:"staff"`
	Movements  int `db:"movements"`
	Warehouses int `db:"warehouses"`
}

type Dashboard struct {
	TotalProducts  int             `json:"total_products"`
	TotalUnits     int             `json:"total_units"`
	LowStock       int             `json:"low_stock"`
	ExpiringSoon   int             `json:"expiring_soon"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LowStockItems  []model.Product `json:"low_stock_items"`

	// Director General only
	Staff      *int `json:"staff,omitempty"`
	Movements  *int `json:"movements,omitempty"`
	Warehouses *int `json:"warehouses,omitempty"`
}
