package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fekuna/protrack-service/internal/cache"
	"github.com/fekuna/protrack-service/internal/database"
	"github.com/fekuna/protrack-service/internal/i18n"
	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/pkg/clock"
	"github.com/fekuna/protrack-service/internal/pkg/validate"
	"github.com/fekuna/protrack-service/internal/product"
	"github.com/fekuna/protrack-service/internal/product/csvimport"
	"github.com/fekuna/protrack-service/internal/product/dto"
	"github.com/fekuna/protrack-service/internal/product/filter"
	"github.com/fekuna/protrack-service/internal/product/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	uc    product.UseCase
	repo  *repository.PGRepository
	redis *miniredis.Miniredis
	clock *clock.FakeClock
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(ctx, db))

	mr := miniredis.RunT(t)
	rc, err := cache.NewRedisClient(&cache.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { rc.Close() })

	clk := clock.NewFake(fixedNow)
	repo := repository.NewPGRepository(db)
	importer := csvimport.NewImporter(repo, i18n.MustTranslator("es"), logger.NewNop(), csvimport.WithClock(clk))

	return &fixture{
		uc:    NewProductUseCase(repo, importer, rc, time.Minute, clk, logger.NewNop()),
		repo:  repo,
		redis: mr,
		clock: clk,
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateProduct(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p, err := f.uc.CreateProduct(ctx, &dto.CreateProductInput{
		CompanyID:          "c1",
		UserID:             "u1",
		ID:                 "SKU-1",
		Nombre:             "Martillo",
		CantidadDisponible: 4,
		FechaExpiracion:    "15/03/2026",
		PrecioCompra:       dec("20"),
		CategoriaABC:       "A",
	})
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", p.ID)
	assert.Equal(t, "2026-03-15", p.FechaExpiracion)
	assert.Equal(t, "u1", *p.UserID)
	assert.Nil(t, p.WarehouseID)

	_, err = f.uc.CreateProduct(ctx, &dto.CreateProductInput{CompanyID: "c2", ID: "SKU-1", Nombre: "Otro"})
	assert.ErrorIs(t, err, product.ErrProductExists, "ids are global")
}

func TestCreateProduct_Defaults(t *testing.T) {
	f := setup(t)

	p, err := f.uc.CreateProduct(context.Background(), &dto.CreateProductInput{CompanyID: "c1", Nombre: "Sin código"})
	require.NoError(t, err)
	assert.Equal(t, "PROD-1717232400000", p.ID)
	assert.Equal(t, "2025-06-01", p.FechaExpiracion)
	assert.Nil(t, p.PrecioCompra)
}

func TestCreateProduct_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.uc.CreateProduct(ctx, &dto.CreateProductInput{CompanyID: "c1"})
	assert.ErrorIs(t, err, validate.ErrInvalidInput)

	_, err = f.uc.CreateProduct(ctx, &dto.CreateProductInput{CompanyID: "c1", Nombre: "x", PrecioCompra: dec("-1")})
	assert.ErrorIs(t, err, validate.ErrInvalidInput)

	_, err = f.uc.CreateProduct(ctx, &dto.CreateProductInput{CompanyID: "c1", Nombre: "x", CategoriaABC: "Z"})
	assert.ErrorIs(t, err, validate.ErrInvalidInput)

	_, err = f.uc.CreateProduct(ctx, &dto.CreateProductInput{CompanyID: "c1", Nombre: "x", FechaExpiracion: "31/02/2024"})
	assert.ErrorIs(t, err, validate.ErrInvalidInput)
}

func TestListProducts_FiltersAndCaches(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, in := range []dto.CreateProductInput{
		{CompanyID: "c1", ID: "A", Nombre: "Tornillo", PrecioCompra: dec("5"), CantidadDisponible: 9},
		{CompanyID: "c1", ID: "B", Nombre: "Tuerca", PrecioCompra: dec("15"), CantidadDisponible: 1},
		{CompanyID: "c1", ID: "C", Nombre: "Tornillo largo", CantidadDisponible: 3},
		{CompanyID: "c2", ID: "D", Nombre: "Tornillo ajeno", PrecioCompra: dec("5")},
	} {
		_, err := f.uc.CreateProduct(ctx, &in)
		require.NoError(t, err)
	}

	filters := &dto.ProductFilters{
		CompanyID: "c1",
		Spec:      filter.Spec{Query: "tornillo", SortBy: "cantidad_disponible", SortOrder: filter.SortAsc},
	}
	list, err := f.uc.ListProducts(ctx, filters)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	require.Len(t, list.Products, 2)
	assert.Equal(t, "C", list.Products[0].ID)
	assert.Equal(t, "A", list.Products[1].ID)
	assert.Len(t, f.redis.Keys(), 1)

	// written behind the use case's back: the cached page is served
	stock := 0
	created := fixedNow
	require.NoError(t, f.repo.Create(ctx, &model.Product{ID: "E", CompanyID: "c1", Nombre: "Tornillo nuevo", CantidadDisponible: &stock, CreatedAt: &created}))
	list, err = f.uc.ListProducts(ctx, filters)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)

	// a write through the use case drops the company's cached pages
	_, err = f.uc.CreateProduct(ctx, &dto.CreateProductInput{CompanyID: "c1", ID: "F", Nombre: "Clavo"})
	require.NoError(t, err)
	assert.Empty(t, f.redis.Keys())

	list, err = f.uc.ListProducts(ctx, filters)
	require.NoError(t, err)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, "E", list.Products[0].ID)

	paged, err := f.uc.ListProducts(ctx, &dto.ProductFilters{CompanyID: "c1", Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, paged.Total)
	assert.Len(t, paged.Products, 2)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.uc.CreateProduct(ctx, &dto.CreateProductInput{CompanyID: "c1", ID: "A", Nombre: "Tornillo"})
	require.NoError(t, err)

	p, err := f.uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: "A", CompanyID: "c1", Nombre: "Tornillo 3/8", CantidadDisponible: 40, CodigoBarras: "7702"})
	require.NoError(t, err)
	assert.Equal(t, 40, p.Stock())
	assert.Equal(t, "7702", *p.CodigoBarras)

	got, err := f.uc.GetProduct(ctx, "c1", "A")
	require.NoError(t, err)
	assert.Equal(t, "Tornillo 3/8", got.Nombre)

	_, err = f.uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: "nope", CompanyID: "c1", Nombre: "x"})
	assert.ErrorIs(t, err, product.ErrProductNotFound)

	require.NoError(t, f.uc.DeleteProduct(ctx, "c1", "A"))
	_, err = f.uc.GetProduct(ctx, "c1", "A")
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestImportCSV(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.uc.ListProducts(ctx, &dto.ProductFilters{CompanyID: "c1"})
	require.NoError(t, err)
	require.Len(t, f.redis.Keys(), 1)

	res := f.uc.ImportCSV(ctx, &dto.ImportInput{
		CompanyID: "c1",
		UserID:    "u1",
		Content:   []byte("Código,Nombre,Stock,Vencimiento\nI1,Harina,12,31/12/2024\nI2,Azúcar,3,\n"),
	})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 2, res.Data.Imported)
	assert.Empty(t, f.redis.Keys(), "import invalidates cached lists")

	list, err := f.uc.ListProducts(ctx, &dto.ProductFilters{CompanyID: "c1", Spec: filter.Spec{SortBy: "id"}})
	require.NoError(t, err)
	require.Len(t, list.Products, 2)
	assert.Equal(t, "2024-12-31", list.Products[0].FechaExpiracion)
	assert.Equal(t, 12, list.Products[0].Stock())

	again := f.uc.ImportCSV(ctx, &dto.ImportInput{CompanyID: "c1", Content: []byte("id,nombre\nI1,Harina\n")})
	require.True(t, again.Success)
	assert.Equal(t, 0, again.Data.Imported)
	assert.Len(t, again.Data.Duplicates, 1)
}

func TestImportTemplate(t *testing.T) {
	f := setup(t)

	csv, err := f.uc.ImportTemplate("")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", csv.ContentType)
	assert.Equal(t, csvimport.TemplateCSV(), csv.Content)

	xlsx, err := f.uc.ImportTemplate("XLSX")
	require.NoError(t, err)
	assert.Equal(t, "plantilla_productos.xlsx", xlsx.Filename)
	assert.NotEmpty(t, xlsx.Content)

	_, err = f.uc.ImportTemplate("pdf")
	assert.ErrorIs(t, err, product.ErrUnknownFormat)
}

func TestDashboard(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, in := range []dto.CreateProductInput{
		{CompanyID: "c1", ID: "A", Nombre: "A", CantidadDisponible: 10, UmbralMinimo: 2, PrecioCompra: dec("1.50"), FechaExpiracion: "2024-06-20"},
		{CompanyID: "c1", ID: "B", Nombre: "B", CantidadDisponible: 2, UmbralMinimo: 5, PrecioCompra: dec("10"), FechaExpiracion: "2024-12-01"},
		{CompanyID: "c1", ID: "C", Nombre: "C", CantidadDisponible: 0, FechaExpiracion: "2024-05-01"},
	} {
		_, err := f.uc.CreateProduct(ctx, &in)
		require.NoError(t, err)
	}

	d, err := f.uc.Dashboard(ctx, "c1", false)
	require.NoError(t, err)
	assert.Equal(t, 3, d.TotalProducts)
	assert.Equal(t, 12, d.TotalUnits)
	assert.Equal(t, 2, d.LowStock)
	assert.Len(t, d.LowStockItems, 2)
	assert.Equal(t, 1, d.ExpiringSoon)
	assert.Equal(t, "35", d.InventoryValue.String())
	assert.Nil(t, d.Staff)

	d, err = f.uc.Dashboard(ctx, "c1", true)
	require.NoError(t, err)
	require.NotNil(t, d.Staff)
	assert.Equal(t, 0, *d.Staff)
	assert.Equal(t, 0, *d.Warehouses)
}

func TestDashboard_ExpiringWindowMovesWithClock(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, in := range []dto.CreateProductInput{
		{CompanyID: "c1", ID: "A", Nombre: "A", CantidadDisponible: 1, FechaExpiracion: "2024-06-20"},
		{CompanyID: "c1", ID: "B", Nombre: "B", CantidadDisponible: 1, FechaExpiracion: "2024-12-01"},
	} {
		_, err := f.uc.CreateProduct(ctx, &in)
		require.NoError(t, err)
	}

	d, err := f.uc.Dashboard(ctx, "c1", false)
	require.NoError(t, err)
	assert.Equal(t, 1, d.ExpiringSoon)

	// A has already expired and B is still months away
	f.clock.Advance(24 * 24 * time.Hour)
	d, err = f.uc.Dashboard(ctx, "c1", false)
	require.NoError(t, err)
	assert.Equal(t, 0, d.ExpiringSoon)

	f.clock.Set(time.Date(2024, 11, 15, 9, 0, 0, 0, time.UTC))
	d, err = f.uc.Dashboard(ctx, "c1", false)
	require.NoError(t, err)
	assert.Equal(t, 1, d.ExpiringSoon)
}
