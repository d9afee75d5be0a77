// Package filter derives the product list view: search, ranges and sorting
// over products already loaded for one company. It does no I/O.
package filter

import (
	"slices"
	"strings"
	"time"

	"github.com/fekuna/protrack-service/internal/model"
	"github.com/shopspring/decimal"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Spec is the set of list parameters chosen by the user. Zero values mean
// "not set".
type Spec struct {
	Query        string           `json:"query,omitempty"`
	CodigoBarras string           `json:"codigo_barras,omitempty"`
	PriceMin     *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax     *decimal.Decimal `json:"price_max,omitempty"`
	StockMin     *int             `json:"stock_min,omitempty"`
	StockMax     *int             `json:"stock_max,omitempty"`
	SortBy       string           `json:"sort_by,omitempty"`
	SortOrder    string           `json:"sort_order,omitempty"`
}

// Apply returns the matching products in display order. The input slice is
// never modified.
func Apply(products []model.Product, spec Spec) []model.Product {
	code := strings.TrimSpace(spec.CodigoBarras)
	query := strings.ToLower(strings.TrimSpace(spec.Query))

	out := make([]model.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if code != "" && !matchesCode(p, code) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Nombre), query) {
			continue
		}
		if !inPriceRange(p, spec.PriceMin, spec.PriceMax) {
			continue
		}
		if !inStockRange(p, spec.StockMin, spec.StockMax) {
			continue
		}
		out = append(out, *p)
	}

	if spec.SortBy != "" {
		sortProducts(out, spec.SortBy, strings.ToLower(spec.SortOrder) == SortDesc)
	}
	return out
}

// matchesCode compares against the barcode, or the product id for products
// that have none.
func matchesCode(p *model.Product, code string) bool {
	if p.CodigoBarras != nil && *p.CodigoBarras != "" {
		return *p.CodigoBarras == code
	}
	return p.ID == code
}

func inPriceRange(p *model.Product, lo, hi *decimal.Decimal) bool {
	if lo == nil && hi == nil {
		return true
	}
	if p.PrecioCompra == nil {
		return false
	}
	if lo != nil && p.PrecioCompra.LessThan(*lo) {
		return false
	}
	if hi != nil && p.PrecioCompra.GreaterThan(*hi) {
		return false
	}
	return true
}

func inStockRange(p *model.Product, lo, hi *int) bool {
	if lo == nil && hi == nil {
		return true
	}
	if p.CantidadDisponible == nil {
		return false
	}
	stock := *p.CantidadDisponible
	if lo != nil && stock < *lo {
		return false
	}
	if hi != nil && stock > *hi {
		return false
	}
	return true
}

type kind int

const (
	kindNumber kind = iota + 1
	kindTime
	kindString
)

// sortKey is one product's value for the sort field. A zero kind means the
// product has no value and goes last.
type sortKey struct {
	kind kind
	num  decimal.Decimal
	at   time.Time
	str  string
}

func (k sortKey) compare(o sortKey) int {
	switch k.kind {
	case kindNumber:
		return k.num.Cmp(o.num)
	case kindTime:
		return k.at.Compare(o.at)
	default:
		return strings.Compare(k.str, o.str)
	}
}

func intKey(n int) sortKey { return sortKey{kind: kindNumber, num: decimal.NewFromInt(int64(n))} }
func strKey(s string) sortKey { return sortKey{kind: kindString, str: s} }

func optIntKey(n *int) sortKey {
	if n == nil {
		return sortKey{}
	}
	return intKey(*n)
}

func optDecimalKey(d *decimal.Decimal) sortKey {
	if d == nil {
		return sortKey{}
	}
	return sortKey{kind: kindNumber, num: *d}
}

func optTimeKey(t *time.Time) sortKey {
	if t == nil {
		return sortKey{}
	}
	return sortKey{kind: kindTime, at: *t}
}

func optStrKey(s *string) sortKey {
	if s == nil {
		return sortKey{}
	}
	return strKey(*s)
}

var keyFuncs = map[string]func(*model.Product) sortKey{
	"id":                  func(p *model.Product) sortKey { return strKey(p.ID) },
	"company_id":          func(p *model.Product) sortKey { return strKey(p.CompanyID) },
	"nombre":              func(p *model.Product) sortKey { return strKey(p.Nombre) },
	"ubicacion":           func(p *model.Product) sortKey { return strKey(p.Ubicacion) },
	"numero_lotes":        func(p *model.Product) sortKey { return intKey(p.NumeroLotes) },
	"tamano_lote":         func(p *model.Product) sortKey { return intKey(p.TamanoLote) },
	"unidades":            func(p *model.Product) sortKey { return intKey(p.Unidades) },
	"cantidad_disponible": func(p *model.Product) sortKey { return optIntKey(p.CantidadDisponible) },
	"fecha_expiracion":    func(p *model.Product) sortKey { return strKey(p.FechaExpiracion) },
	"proveedores":         func(p *model.Product) sortKey { return strKey(p.Proveedores) },
	"umbral_minimo":       func(p *model.Product) sortKey { return intKey(p.UmbralMinimo) },
	"umbral_maximo":       func(p *model.Product) sortKey { return intKey(p.UmbralMaximo) },
	"entrada":             func(p *model.Product) sortKey { return strKey(p.Entrada) },
	"precio_compra":       func(p *model.Product) sortKey { return optDecimalKey(p.PrecioCompra) },
	"total_compra":        func(p *model.Product) sortKey { return optDecimalKey(p.TotalCompra) },
	"imagen_url":          func(p *model.Product) sortKey { return optStrKey(p.ImagenURL) },
	"categoria_abc":       func(p *model.Product) sortKey { return optStrKey(p.CategoriaABC) },
	"codigo_barras":       func(p *model.Product) sortKey { return optStrKey(p.CodigoBarras) },
	"warehouse_id":        func(p *model.Product) sortKey { return optStrKey(p.WarehouseID) },
	"user_id":             func(p *model.Product) sortKey { return optStrKey(p.UserID) },
	"created_at":          func(p *model.Product) sortKey { return optTimeKey(p.CreatedAt) },
	"updated_at":          func(p *model.Product) sortKey { return optTimeKey(p.UpdatedAt) },
}

// IsSortable reports whether field can be used as SortBy.
func IsSortable(field string) bool {
	_, ok := keyFuncs[field]
	return ok
}

// sortProducts sorts in place, stably. Products without a value for field
// go last in both directions. Unknown fields leave the order alone.
func sortProducts(products []model.Product, field string, desc bool) {
	keyOf, ok := keyFuncs[field]
	if !ok {
		return
	}

	type keyed struct {
		key sortKey
		p   model.Product
	}
	items := make([]keyed, len(products))
	for i := range products {
		items[i] = keyed{key: keyOf(&products[i]), p: products[i]}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		switch {
		case a.key.kind == 0 && b.key.kind == 0:
			return 0
		case a.key.kind == 0:
			return 1
		case b.key.kind == 0:
			return -1
		}
		c := a.key.compare(b.key)
		if desc {
			return -c
		}
		return c
	})

	for i := range items {
		products[i] = items[i].p
	}
}

// Page returns the 1-based page of size pageSize. A pageSize of zero or less
// returns everything.
func Page(products []model.Product, page, pageSize int) []model.Product {
	if pageSize <= 0 {
		return products
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(products) {
		return []model.Product{}
	}
	end := min(start+pageSize, len(products))
	return products[start:end]
}
