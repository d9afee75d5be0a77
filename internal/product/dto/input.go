package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	CompanyID          string           `json:"company_id" validate:"required"`
	UserID             string           `json:"user_id"`
	ID                 string           `json:"id" validate:"omitempty,max=64"`
	Nombre             string           `json:"nombre" validate:"required,max=255"`
	Ubicacion          string           `json:"ubicacion"`
	NumeroLotes        int              `json:"numero_lotes" validate:"gte=0"`
	TamanoLote         int              `json:"tamano_lote" validate:"gte=0"`
	Unidades           int              `json:"unidades" validate:"gte=0"`
	CantidadDisponible int              `json:"cantidad_disponible" validate:"gte=0"`
	FechaExpiracion    string           `json:"fecha_expiracion"`
	Proveedores        string           `json:"proveedores"`
	UmbralMinimo       int              `json:"umbral_minimo" validate:"gte=0"`
	UmbralMaximo       int              `json:"umbral_maximo" validate:"gte=0"`
	Entrada            string           `json:"entrada"`
	PrecioCompra       *decimal.Decimal `json:"precio_compra" validate:"omitempty,gte=0"`
	TotalCompra        *decimal.Decimal `json:"total_compra" validate:"omitempty,gte=0"`
	ImagenURL          string           `json:"imagen_url" validate:"omitempty,url"`
	CategoriaABC       string           `json:"categoria_abc" validate:"omitempty,oneof=A B C"`
	CodigoBarras       string           `json:"codigo_barras"`
	WarehouseID        string           `json:"warehouse_id"`
}

type UpdateProductInput struct {
	ID                 string           `json:"id" validate:"required"`
	CompanyID          string           `json:"company_id" validate:"required"`
	Nombre             string           `json:"nombre" validate:"required,max=255"`
	Ubicacion          string           `json:"ubicacion"`
	NumeroLotes        int              `json:"numero_lotes" validate:"gte=0"`
	TamanoLote         int              `json:"tamano_lote" validate:"gte=0"`
	Unidades           int              `json:"unidades" validate:"gte=0"`
	CantidadDisponible int              `json:"cantidad_disponible" validate:"gte=0"`
	FechaExpiracion    string           `json:"fecha_expiracion"`
	Proveedores        string           `json:"proveedores"`
	UmbralMinimo       int              `json:"umbral_minimo" validate:"gte=0"`
	UmbralMaximo       int              `json:"umbral_maximo" validate:"gte=0"`
	Entrada            string           `json:"entrada"`
	PrecioCompra       *decimal.Decimal `json:"precio_compra" validate:"omitempty,gte=0"`
	TotalCompra        *decimal.Decimal `json:"total_compra" validate:"omitempty,gte=0"`
	ImagenURL          string           `json:"imagen_url" validate:"omitempty,url"`
	CategoriaABC       string           `json:"categoria_abc" validate:"omitempty,oneof=A B C"`
	CodigoBarras       string           `json:"codigo_barras"`
	WarehouseID        string           `json:"warehouse_id"`
}

type ImportInput struct {
	CompanyID string
	UserID    string
	Content   []byte
}
