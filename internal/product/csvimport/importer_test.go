package csvimport

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fekuna/protrack-service/internal/i18n"
	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	ids       map[string]bool
	inserted  []model.Product
	lookupErr error
	insertErr error
	lookedUp  []string
}

func newMemStore(ids ...string) *memStore {
	s := &memStore{ids: map[string]bool{}}
	for _, id := range ids {
		s.ids[id] = true
	}
	return s
}

func (s *memStore) ExistingIDs(_ context.Context, ids []string) ([]string, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	s.lookedUp = append(s.lookedUp, ids...)
	var found []string
	for _, id := range ids {
		if s.ids[id] {
			found = append(found, id)
		}
	}
	return found, nil
}

func (s *memStore) BulkInsert(_ context.Context, products []model.Product) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	for _, p := range products {
		s.ids[p.ID] = true
	}
	s.inserted = append(s.inserted, products...)
	return nil
}

var importTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestImporter(store Store, opts ...Option) *Importer {
	opts = append([]Option{WithClock(clock.NewFake(importTime))}, opts...)
	return NewImporter(store, i18n.MustTranslator("es"), logger.NewNop(), opts...)
}

var owner = Owner{CompanyID: "c1", UserID: "u1"}

func TestImport_Template(t *testing.T) {
	store := newMemStore()
	res := newTestImporter(store).Import(context.Background(), string(TemplateCSV()), owner)

	require.True(t, res.Success, res.Error)
	assert.Equal(t, 1, res.Data.Imported)
	assert.Equal(t, "1 productos importados exitosamente", res.Data.Message)
	assert.NotNil(t, res.Data.Duplicates)
	assert.Empty(t, res.Data.Duplicates)
	assert.Nil(t, res.Data.Warnings)
	assert.Nil(t, res.Data.Errors)

	require.Len(t, store.inserted, 1)
	p := store.inserted[0]
	assert.Equal(t, "PROD-001", p.ID)
	assert.Equal(t, "c1", p.CompanyID)
	assert.Equal(t, "Producto Ejemplo", p.Nombre)
	assert.Equal(t, "Bodega A", p.Ubicacion)
	assert.Equal(t, 5, p.NumeroLotes)
	assert.Equal(t, 20, p.TamanoLote)
	assert.Equal(t, 100, p.Unidades)
	assert.Equal(t, 100, p.Stock())
	assert.Equal(t, "2025-12-31", p.FechaExpiracion)
	assert.Equal(t, "Proveedor XYZ", p.Proveedores)
	assert.Equal(t, 10, p.UmbralMinimo)
	assert.Equal(t, 200, p.UmbralMaximo)
	assert.Equal(t, "Entrada", p.Entrada)
	assert.Equal(t, "15.5", p.PrecioCompra.String())
	assert.Equal(t, "1550", p.TotalCompra.String())
	require.NotNil(t, p.ImagenURL)
	require.NotNil(t, p.CategoriaABC)
	assert.Equal(t, "A", *p.CategoriaABC)
	assert.Nil(t, p.WarehouseID)
	require.NotNil(t, p.UserID)
	assert.Equal(t, "u1", *p.UserID)
	assert.Equal(t, importTime, *p.CreatedAt)
}

func TestImport_SecondRunOnlyFindsDuplicates(t *testing.T) {
	csv := "id,nombre,cantidad_disponible\nA1,Uno,1\nA2,Dos,2\nA3,Tres,3\n"
	store := newMemStore()
	im := newTestImporter(store)

	first := im.Import(context.Background(), csv, owner)
	require.True(t, first.Success)
	require.Equal(t, 3, first.Data.Imported)

	second := im.Import(context.Background(), csv, owner)
	require.True(t, second.Success)
	assert.Equal(t, 0, second.Data.Imported)
	assert.Len(t, second.Data.Duplicates, first.Data.Imported)
	assert.Equal(t, `Fila 2: El ID "A1" ya existe en la base de datos`, second.Data.Duplicates[0])
	assert.Equal(t, "0 productos importados exitosamente. 3 productos omitidos por ID duplicado", second.Data.Message)
	assert.Len(t, store.inserted, 3)
}

func TestImport_DuplicateWithinFile(t *testing.T) {
	csv := "id,nombre,cantidad_disponible\nP1,Widget,10\nP1,Widget2,20\n"
	store := newMemStore()

	res := newTestImporter(store).Import(context.Background(), csv, owner)

	require.True(t, res.Success)
	assert.Equal(t, 1, res.Data.Imported)
	assert.Equal(t, []string{`Fila 3: El ID "P1" está repetido en el archivo`}, res.Data.Duplicates)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, "Widget", store.inserted[0].Nombre)
	assert.Equal(t, 10, store.inserted[0].Stock())
}

func TestImport_NeverEmitsSameIDTwice(t *testing.T) {
	csv := "id,nombre\nX,a\nY,b\nX,c\nZ,d\nY,e\nX,f\n"
	store := newMemStore("Z")

	res := newTestImporter(store).Import(context.Background(), csv, owner)
	require.True(t, res.Success)

	seen := map[string]bool{}
	for _, p := range store.inserted {
		assert.False(t, seen[p.ID], "id %s inserted twice", p.ID)
		seen[p.ID] = true
	}
	assert.Equal(t, 2, res.Data.Imported)
	assert.Len(t, res.Data.Duplicates, 4)
}

func TestImport_InvalidDateGetsDefaultAndWarning(t *testing.T) {
	csv := "id,nombre,fecha_expiracion\nD1,Leche,31/02/2024\nD2,Pan,\nD3,Queso,01/07/2024\n"
	store := newMemStore()

	res := newTestImporter(store).Import(context.Background(), csv, owner)

	require.True(t, res.Success)
	require.Len(t, store.inserted, 3)
	assert.Equal(t, "2025-06-01", store.inserted[0].FechaExpiracion)
	assert.Equal(t, "2025-06-01", store.inserted[1].FechaExpiracion, "blank date uses the default silently")
	assert.Equal(t, "2024-07-01", store.inserted[2].FechaExpiracion)
	assert.Equal(t, []string{`Fila 2: Fecha inválida "31/02/2024" - se usará 2025-06-01`}, res.Data.Warnings)
	assert.Equal(t, "3 productos importados exitosamente. 1 advertencias", res.Data.Message)
}

func TestImport_BadNumbersBecomeZeroWithWarning(t *testing.T) {
	csv := "id,nombre,unidades,precio_compra,umbral_minimo\nN1,Clavos,abc,12.x,-4\nN2,Tornillos,7.0,$3.25,2\n"
	store := newMemStore()

	res := newTestImporter(store).Import(context.Background(), csv, owner)

	require.True(t, res.Success)
	require.Len(t, store.inserted, 2)
	bad := store.inserted[0]
	assert.Equal(t, 0, bad.Unidades)
	assert.True(t, bad.PrecioCompra.IsZero())
	assert.Equal(t, 0, bad.UmbralMinimo)
	assert.Len(t, res.Data.Warnings, 3)
	assert.Contains(t, res.Data.Warnings, `Fila 2: Valor numérico inválido "abc" en unidades - se usará 0`)
	assert.Contains(t, res.Data.Warnings, `Fila 2: Valor numérico inválido "12.x" en precio_compra - se usará 0`)
	assert.Contains(t, res.Data.Warnings, `Fila 2: Valor numérico inválido "-4" en umbral_minimo - se usará 0`)

	good := store.inserted[1]
	assert.Equal(t, 7, good.Unidades)
	assert.Equal(t, "3.25", good.PrecioCompra.String())
	assert.Equal(t, 2, good.UmbralMinimo)
}

func TestImport_GeneratesIDsWithoutIDColumn(t *testing.T) {
	csv := "nombre,stock\nTuerca,4\nArandela,9\n"
	store := newMemStore()

	res := newTestImporter(store).Import(context.Background(), csv, owner)

	require.True(t, res.Success)
	require.Len(t, store.inserted, 2)
	ms := importTime.UnixMilli()
	assert.Equal(t, fmt.Sprintf("PROD-%d-1", ms), store.inserted[0].ID)
	assert.Equal(t, fmt.Sprintf("PROD-%d-2", ms), store.inserted[1].ID)
	assert.Equal(t, 9, store.inserted[1].Stock())
	assert.Empty(t, store.lookedUp, "nothing to look up without an id column")
}

func TestImport_StockHeaderIsNotTakenForIDs(t *testing.T) {
	csv := "nombre,cantidad_disponible\nTuerca,4\nArandela,4\n"
	store := newMemStore()

	res := newTestImporter(store).Import(context.Background(), csv, owner)

	require.True(t, res.Success)
	assert.Empty(t, res.Data.Duplicates)
	require.Len(t, store.inserted, 2)
	ms := importTime.UnixMilli()
	assert.Equal(t, fmt.Sprintf("PROD-%d-1", ms), store.inserted[0].ID)
	assert.Equal(t, fmt.Sprintf("PROD-%d-2", ms), store.inserted[1].ID)
	assert.Equal(t, 4, store.inserted[1].Stock())
}

func TestImport_DuplicateIDsScenarioHasNoWarnings(t *testing.T) {
	csv := "id,nombre,cantidad_disponible\nP1,Widget,10\nP1,Widget2,20\n"
	store := newMemStore()

	res := newTestImporter(store).Import(context.Background(), csv, owner)

	require.True(t, res.Success)
	assert.Empty(t, res.Data.Warnings)
	require.Len(t, res.Data.Duplicates, 1)
	require.Len(t, store.inserted, 1)
	p := store.inserted[0]
	assert.Equal(t, "Widget", p.Nombre)
	assert.Equal(t, 10, p.Stock())
	assert.Zero(t, p.NumeroLotes)
	assert.Zero(t, p.Unidades)
}

func TestImport_DefaultsMissingName(t *testing.T) {
	csv := "id,nombre,imagen_url\nK1,,\n"
	store := newMemStore()

	res := newTestImporter(store).Import(context.Background(), csv, owner)

	require.True(t, res.Success)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, "Producto 1", store.inserted[0].Nombre)
	assert.Nil(t, store.inserted[0].ImagenURL)
	assert.Nil(t, store.inserted[0].CategoriaABC)
}

func TestImport_SkipsRowsWithoutFirstCell(t *testing.T) {
	csv := "id,nombre\n,Fantasma\n\n   \nP2,Real\n"
	store := newMemStore()

	res := newTestImporter(store).Import(context.Background(), csv, owner)

	require.True(t, res.Success)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, "P2", store.inserted[0].ID)
	assert.Equal(t, []string{"P2"}, store.lookedUp)
}

func TestImport_FileLevelFailures(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr string
	}{
		{"empty", "", "El archivo CSV está vacío o no tiene datos"},
		{"header only", "id,nombre\n\n", "El archivo CSV está vacío o no tiene datos"},
		{"no usable rows", "id,nombre\n,a\n,b\n", "No se pudieron procesar productos del CSV"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			res := newTestImporter(store).Import(context.Background(), tt.csv, owner)

			assert.False(t, res.Success)
			assert.Nil(t, res.Data)
			assert.Equal(t, tt.wantErr, res.Error)
			assert.Empty(t, store.inserted)
		})
	}
}

func TestImport_MissingCompanyIsRowError(t *testing.T) {
	store := newMemStore()
	res := newTestImporter(store).Import(context.Background(), "id,nombre\nP1,a\n", Owner{})

	assert.False(t, res.Success)
	assert.Equal(t, "No se pudieron procesar productos del CSV", res.Error)
}

func TestImport_StoreFailures(t *testing.T) {
	t.Run("insert rejected", func(t *testing.T) {
		store := newMemStore()
		store.insertErr = errors.New("duplicate key value")

		res := newTestImporter(store).Import(context.Background(), "id,nombre\nP1,a\n", owner)

		assert.False(t, res.Success)
		assert.Nil(t, res.Data)
		assert.Equal(t, "Error al insertar productos: duplicate key value", res.Error)
	})

	t.Run("lookup failed", func(t *testing.T) {
		store := newMemStore()
		store.lookupErr = errors.New("timeout")

		res := newTestImporter(store).Import(context.Background(), "id,nombre\nP1,a\n", owner)

		assert.False(t, res.Success)
		assert.Equal(t, "Error al consultar productos existentes: timeout", res.Error)
	})
}

func TestImport_RejectsOversizedFile(t *testing.T) {
	res := newTestImporter(newMemStore(), WithMaxBytes(10)).Import(context.Background(), "id,nombre\nP1,a\n", owner)

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "10 bytes")
}

func TestImport_EnglishMessages(t *testing.T) {
	im := NewImporter(newMemStore("P1"), i18n.MustTranslator("en"), logger.NewNop(), WithClock(clock.NewFake(importTime)))

	res := im.Import(context.Background(), "id,nombre\nP1,a\nP2,b\n", owner)

	require.True(t, res.Success)
	assert.Equal(t, "1 products imported successfully. 1 products skipped as duplicate IDs", res.Data.Message)
	assert.Equal(t, []string{`Row 2: ID "P1" already exists in the database`}, res.Data.Duplicates)
}

func TestParse(t *testing.T) {
	im := newTestImporter(newMemStore())

	_, err := im.Parse("id\n", nil, owner)
	assert.ErrorIs(t, err, ErrEmptyFile)

	batch, err := im.Parse("id,nombre\nP1,a\nP2,b\n", []string{"P2"}, owner)
	require.NoError(t, err)
	require.Len(t, batch.Products, 1)
	assert.Equal(t, "P1", batch.Products[0].ID)
	assert.Len(t, batch.Duplicates, 1)
}

func TestParse_AppliesSizeLimit(t *testing.T) {
	im := newTestImporter(newMemStore(), WithMaxBytes(10))

	_, err := im.Parse("id,nombre\nP1,a\n", nil, owner)
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.NoError(t, im.CheckSize("id\nP1\n"))
}

func TestDefaultExpiry(t *testing.T) {
	assert.Equal(t, "2025-06-01", DefaultExpiry(importTime))
}

func TestCandidateIDs(t *testing.T) {
	text := "Código,Nombre\nA1,Uno\n,Sin código\nB2,Dos\n"
	assert.Equal(t, []string{"A1", "B2"}, CandidateIDs(text))
	assert.Nil(t, CandidateIDs("nombre,stock\nUno,1\n"), "no id column")
	assert.Nil(t, CandidateIDs("id,nombre\n"))
}
