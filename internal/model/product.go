package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one inventory item. Nullable columns are pointers so that a
// missing value can be told apart from zero when filtering.
type Product struct {
	ID                 string           `db:"id" json:"id"`
	CompanyID          string           `db:"company_id" json:"company_id"`
	Nombre             string           `db:"nombre" json:"nombre"`
	Ubicacion          string           `db:"ubicacion" json:"ubicacion"`
	NumeroLotes        int              `db:"numero_lotes" json:"numero_lotes"`
	TamanoLote         int              `db:"tamano_lote" json:"tamano_lote"`
	Unidades           int              `db:"unidades" json:"unidades"`
	CantidadDisponible *int             `db:"cantidad_disponible" json:"cantidad_disponible"`
	FechaExpiracion    string           `db:"fecha_expiracion" json:"fecha_expiracion"` // YYYY-MM-DD
	Proveedores        string           `db:"proveedores" json:"proveedores"`
	UmbralMinimo       int              `db:"umbral_minimo" json:"umbral_minimo"`
	UmbralMaximo       int              `db:"umbral_maximo" json:"umbral_maximo"`
	Entrada            string           `db:"entrada" json:"entrada"`
	PrecioCompra       *decimal.Decimal `db:"precio_compra" json:"precio_compra"`
	TotalCompra        *decimal.Decimal `db:"total_compra" json:"total_compra"`
	ImagenURL          *string          `db:"imagen_url" json:"imagen_url"`
	CategoriaABC       *string          `db:"categoria_abc" json:"categoria_abc"`
	CodigoBarras       *string          `db:"codigo_barras" json:"codigo_barras"`
	WarehouseID        *string          `db:"warehouse_id" json:"warehouse_id"`
	UserID             *string          `db:"user_id" json:"user_id"`
	CreatedAt          *time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt          *time.Time       `db:"updated_at" json:"updated_at"`
}

// Stock returns cantidad_disponible, treating a missing value as zero.
func (p *Product) Stock() int {
	if p.CantidadDisponible == nil {
		return 0
	}
	return *p.CantidadDisponible
}

func (p *Product) IsLowStock() bool {
	return p.Stock() <= p.UmbralMinimo
}
