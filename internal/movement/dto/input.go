package dto

import "github.com/shopspring/decimal"

type MovementInput struct {
	CompanyID       string           `json:"company_id" validate:"required"`
	UserID          string           `json:"user_id"`
	ProductID       string           `json:"product_id" validate:"required"`
	TipoMovimiento  string           `json:"tipo_movimiento" validate:"required,oneof=Entrada Salida"`
	Unidades        int              `json:"unidades" validate:"gt=0"`
	FechaMovimiento string           `json:"fecha_movimiento"`
	PrecioVenta     *decimal.Decimal `json:"precio_venta" validate:"omitempty,gte=0"`
	Referencia      string           `json:"referencia"`
}

type TransferInput struct {
	CompanyID  string `json:"company_id" validate:"required"`
	UserID     string `json:"user_id"`
	ProductID  string `json:"product_id" validate:"required"`
	SedeOrigen string `json:"sede_origen" validate:"required"`
	Destino    string `json:"destino" validate:"required,nefield=SedeOrigen"`
	Fecha      string `json:"fecha"`
	Motivo     string `json:"motivo"`
	Encargado  string `json:"encargado"`
	Unidades   int    `json:"unidades" validate:"gt=0"`
}

type RestockInput struct {
	CompanyID string `json:"company_id" validate:"required"`
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id" validate:"required"`
	Cantidad  int    `json:"cantidad" validate:"gt=0"`
	Nota      string `json:"nota" validate:"max=500"`
}
