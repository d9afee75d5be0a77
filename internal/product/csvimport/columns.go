package csvimport

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Canonical product fields in template order.
const (
	FieldID                 = "id"
	FieldNombre             = "nombre"
	FieldUbicacion          = "ubicacion"
	FieldNumeroLotes        = "numero_lotes"
	FieldTamanoLote         = "tamano_lote"
	FieldUnidades           = "unidades"
	FieldCantidadDisponible = "cantidad_disponible"
	FieldFechaExpiracion    = "fecha_expiracion"
	FieldProveedores        = "proveedores"
	FieldUmbralMinimo       = "umbral_minimo"
	FieldUmbralMaximo       = "umbral_maximo"
	FieldEntrada            = "entrada"
	FieldPrecioCompra       = "precio_compra"
	FieldTotalCompra        = "total_compra"
	FieldImagenURL          = "imagen_url"
	FieldCategoriaABC       = "categoria_abc"
)

// Fields lists every canonical field in the order the template writes them.
var Fields = []string{
	FieldID, FieldNombre, FieldUbicacion, FieldNumeroLotes, FieldTamanoLote,
	FieldUnidades, FieldCantidadDisponible, FieldFechaExpiracion, FieldProveedores,
	FieldUmbralMinimo, FieldUmbralMaximo, FieldEntrada, FieldPrecioCompra,
	FieldTotalCompra, FieldImagenURL, FieldCategoriaABC,
}

// Aliases holds the accepted header spellings per field, most specific first.
var Aliases = map[string][]string{
	FieldID:                 {"id", "codigo", "sku", "codigo_producto"},
	FieldNombre:             {"nombre", "name", "producto", "descripcion"},
	FieldUbicacion:          {"ubicacion", "location", "almacen", "bodega"},
	FieldNumeroLotes:        {"numero_lotes", "lotes", "numero lotes", "num_lotes", "cantidad_lotes"},
	FieldTamanoLote:         {"tamano_lote", "tamaño_lote", "tamano lote", "tamaño lote", "size_lote"},
	FieldUnidades:           {"unidades", "units", "unidad"},
	FieldCantidadDisponible: {"cantidad_disponible", "cantidad", "stock", "disponible", "cantidad disponible"},
	FieldFechaExpiracion:    {"fecha_expiracion", "expiracion", "fecha exp", "fecha_exp", "vencimiento"},
	FieldProveedores:        {"proveedores", "proveedor", "supplier", "vendedor"},
	FieldUmbralMinimo:       {"umbral_minimo", "minimo", "min", "umbral minimo", "stock_minimo"},
	FieldUmbralMaximo:       {"umbral_maximo", "maximo", "max", "umbral maximo", "stock_maximo"},
	FieldEntrada:            {"entrada", "entry", "ingreso"},
	FieldPrecioCompra:       {"precio_compra", "precio", "price", "precio compra", "costo"},
	FieldTotalCompra:        {"total_compra", "total", "total compra", "monto_total"},
	FieldImagenURL:          {"imagen_url", "imagen", "image", "foto", "url_imagen"},
	FieldCategoriaABC:       {"categoria_abc", "categoria", "category", "tipo"},
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWord       = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// NormalizeColumnName folds a header for comparison: lowercase, no
// diacritics, whitespace runs as "_", only [A-Za-z0-9_] kept.
func NormalizeColumnName(s string) string {
	s = strings.ToLower(s)
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = nonWord.ReplaceAllString(s, "")
	return strings.Trim(s, "_")
}

// ResolveColumn returns the index of the header matching the first alias that
// matches anything, or -1. For each alias an exact match anywhere in the row
// wins over a partial match, so reordering the headers cannot change the
// result when one column is named exactly. Partial matching is two-way
// substring containment. Headers that normalize to "" never match.
func ResolveColumn(headers []string, aliases []string) int {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeColumnName(h)
	}
	return resolveNormalized(normalized, aliases)
}

func resolveNormalized(headers []string, aliases []string) int {
	for _, alias := range aliases {
		a := NormalizeColumnName(alias)
		if a == "" {
			continue
		}
		for i, h := range headers {
			if h == a {
				return i
			}
		}
		for i, h := range headers {
			if h == "" {
				continue
			}
			if strings.Contains(h, a) || strings.Contains(a, h) {
				return i
			}
		}
	}
	return -1
}

// ColumnMapping maps each canonical field to a source column index, -1 when
// the file has no such column.
type ColumnMapping map[string]int

func (m ColumnMapping) Index(field string) int {
	if i, ok := m[field]; ok {
		return i
	}
	return -1
}

// ResolveColumns resolves every canonical field against one header row. A
// column named exactly after one of a field's aliases belongs to that field
// and is hidden from the partial matching of every other field, so short
// headers such as "id" are not picked up by "cantidad_lotes" or "unidades".
func ResolveColumns(headers []string) ColumnMapping {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeColumnName(h)
	}
	owner := exactOwners(normalized)

	m := make(ColumnMapping, len(Fields))
	view := make([]string, len(normalized))
	for _, f := range Fields {
		for i, h := range normalized {
			view[i] = h
			if o := owner[i]; o != "" && o != f {
				view[i] = ""
			}
		}
		m[f] = resolveNormalized(view, Aliases[f])
	}
	return m
}

// exactOwners returns, per column, the first field in template order with an
// alias equal to the header, or "".
func exactOwners(headers []string) []string {
	owner := make([]string, len(headers))
	for _, f := range Fields {
		for _, alias := range Aliases[f] {
			a := NormalizeColumnName(alias)
			for i, h := range headers {
				if h != "" && h == a && owner[i] == "" {
					owner[i] = f
				}
			}
		}
	}
	return owner
}
