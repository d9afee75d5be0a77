package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MovementEntrada = "Entrada"
	MovementSalida  = "Salida"
)

type Movement struct {
	ID                string           `db:"id" json:"id"`
	CompanyID         string           `db:"company_id" json:"company_id"`
	ProductID         string           `db:"product_id" json:"product_id"`
	TipoMovimiento    string           `db:"tipo_movimiento" json:"tipo_movimiento"`
	Unidades          int              `db:"unidades" json:"unidades"`
	FechaMovimiento   string           `db:"fecha_movimiento" json:"fecha_movimiento"`
	PrecioVenta       *decimal.Decimal `db:"precio_venta" json:"precio_venta"`
	Ganancia          *decimal.Decimal `db:"ganancia" json:"ganancia"`
	CantidadAnterior  int              `db:"cantidad_anterior" json:"cantidad_anterior"`
	CantidadPosterior int              `db:"cantidad_posterior" json:"cantidad_posterior"`
	Referencia        *string          `db:"referencia" json:"referencia"`
	UserID            *string          `db:"user_id" json:"user_id"`
	CreatedAt         time.Time        `db:"created_at" json:"created_at"`
}

// Transfer records units moved between two company sites.
type Transfer struct {
	ID         string    `db:"id" json:"id"`
	CompanyID  string    `db:"company_id" json:"company_id"`
	ProductID  string    `db:"product_id" json:"product_id"`
	SedeOrigen string    `db:"sede_origen" json:"sede_origen"`
	Destino    string    `db:"destino" json:"destino"`
	Fecha      string    `db:"fecha" json:"fecha"`
	Motivo     string    `db:"motivo" json:"motivo"`
	Encargado  string    `db:"encargado" json:"encargado"`
	Unidades   int       `db:"unidades" json:"unidades"`
	UserID     *string   `db:"user_id" json:"user_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Settle fills the stock snapshot and profit of m from p as it stands when the
// movement is applied. A Salida never takes stock below zero.
func (m *Movement) Settle(p *Product) {
	m.CantidadAnterior = p.Stock()
	m.CantidadPosterior = m.CantidadAnterior + m.Unidades
	m.Ganancia = nil
	if m.TipoMovimiento != MovementSalida {
		return
	}
	m.CantidadPosterior = max(m.CantidadAnterior-m.Unidades, 0)
	if m.PrecioVenta != nil && p.PrecioCompra != nil {
		g := m.PrecioVenta.Sub(*p.PrecioCompra).Mul(decimal.NewFromInt(int64(m.Unidades)))
		m.Ganancia = &g
	}
}
