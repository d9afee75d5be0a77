package csvimport

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/protrack-service/internal/model"
	"github.com/shopspring/decimal"
)

// numberIssue describes a numeric cell that could not be used as-is.
type numberIssue struct {
	Field string
	Value string
}

// rowBuilder reads one split line through the column mapping. Nothing it
// accumulates is visible outside until build returns the finished product.
type rowBuilder struct {
	values []string
	cols   ColumnMapping
	issues []numberIssue
}

func newRowBuilder(values []string, cols ColumnMapping) *rowBuilder {
	return &rowBuilder{values: values, cols: cols}
}

func (b *rowBuilder) cell(field string) string {
	i := b.cols.Index(field)
	if i < 0 || i >= len(b.values) {
		return ""
	}
	return b.values[i]
}

func (b *rowBuilder) str(field, fallback string) string {
	if v := b.cell(field); v != "" {
		return v
	}
	return fallback
}

func (b *rowBuilder) optional(field string) *string {
	if v := b.cell(field); v != "" {
		return &v
	}
	return nil
}

// integer accepts "12" and "12.0"; anything else, including negatives,
// becomes 0 and is reported.
func (b *rowBuilder) integer(field string) int {
	raw := b.cell(field)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			b.issues = append(b.issues, numberIssue{Field: field, Value: raw})
			return 0
		}
		n = int(f)
	}
	if n < 0 {
		b.issues = append(b.issues, numberIssue{Field: field, Value: raw})
		return 0
	}
	return n
}

func (b *rowBuilder) money(field string) decimal.Decimal {
	raw := b.cell(field)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(raw, "$"))
	if err != nil || d.IsNegative() {
		b.issues = append(b.issues, numberIssue{Field: field, Value: raw})
		return decimal.Zero
	}
	return d
}

var errMissingKey = errors.New("product id and company are required")

type rowDefaults struct {
	ID              string
	Nombre          string
	FechaExpiracion string
	CompanyID       string
	UserID          string
	Now             time.Time
}

func (b *rowBuilder) build(d rowDefaults) (model.Product, error) {
	if d.ID == "" || d.CompanyID == "" {
		return model.Product{}, errMissingKey
	}

	cantidad := b.integer(FieldCantidadDisponible)
	precio := b.money(FieldPrecioCompra)
	total := b.money(FieldTotalCompra)
	var userID *string
	if d.UserID != "" {
		u := d.UserID
		userID = &u
	}
	now := d.Now

	return model.Product{
		ID:                 d.ID,
		CompanyID:          d.CompanyID,
		Nombre:             b.str(FieldNombre, d.Nombre),
		Ubicacion:          b.cell(FieldUbicacion),
		NumeroLotes:        b.integer(FieldNumeroLotes),
		TamanoLote:         b.integer(FieldTamanoLote),
		Unidades:           b.integer(FieldUnidades),
		CantidadDisponible: &cantidad,
		FechaExpiracion:    d.FechaExpiracion,
		Proveedores:        b.cell(FieldProveedores),
		UmbralMinimo:       b.integer(FieldUmbralMinimo),
		UmbralMaximo:       b.integer(FieldUmbralMaximo),
		Entrada:            b.cell(FieldEntrada),
		PrecioCompra:       &precio,
		TotalCompra:        &total,
		ImagenURL:          b.optional(FieldImagenURL),
		CategoriaABC:       b.optional(FieldCategoriaABC),
		UserID:             userID,
		CreatedAt:          &now,
		UpdatedAt:          &now,
	}, nil
}
