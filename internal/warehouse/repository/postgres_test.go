package repository

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/protrack-service/internal/database"
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/warehouse"
	"github.com/fekuna/protrack-service/internal/warehouse/dto"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func setupDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

func newWarehouse(id, company, nombre string) *model.Warehouse {
	return &model.Warehouse{
		BaseModel: model.BaseModel{ID: id, CreatedAt: t0, UpdatedAt: t0},
		CompanyID: company,
		Nombre:    nombre,
	}
}

func TestFindAll_ScopedSearchAndPaged(t *testing.T) {
	repo := NewPGRepository(setupDB(t))
	ctx := context.Background()

	for _, w := range []*model.Warehouse{
		newWarehouse("w1", "c1", "Bodega Norte"),
		newWarehouse("w2", "c1", "Bodega Sur"),
		newWarehouse("w3", "c1", "Sede Centro"),
		newWarehouse("w4", "c2", "Bodega Ajena"),
	} {
		require.NoError(t, repo.Create(ctx, w))
	}

	items, total, err := repo.FindAll(ctx, &dto.WarehouseFilters{CompanyID: "c1", Search: "BODEGA"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, "Bodega Norte", items[0].Nombre)

	items, total, err = repo.FindAll(ctx, &dto.WarehouseFilters{CompanyID: "c1", Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 1)
	assert.Equal(t, "w3", items[0].ID)
}

func TestUpdateAndDelete(t *testing.T) {
	db := setupDB(t)
	repo := NewPGRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newWarehouse("w1", "c1", "Norte")))
	_, err := db.Exec(`INSERT INTO products (id, company_id, nombre, warehouse_id) VALUES ('P1', 'c1', 'Harina', 'w1')`)
	require.NoError(t, err)

	w := newWarehouse("w1", "c1", "Norte 2")
	dir := "Calle 1"
	w.Direccion = &dir
	require.NoError(t, repo.Update(ctx, w))

	got, err := repo.FindByID(ctx, "c1", "w1")
	require.NoError(t, err)
	assert.Equal(t, "Norte 2", got.Nombre)
	assert.Equal(t, "Calle 1", *got.Direccion)

	assert.ErrorIs(t, repo.Update(ctx, newWarehouse("w1", "c2", "x")), warehouse.ErrWarehouseNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "c2", "w1"), warehouse.ErrWarehouseNotFound)

	require.NoError(t, repo.Delete(ctx, "c1", "w1"))
	got, err = repo.FindByID(ctx, "c1", "w1")
	require.NoError(t, err)
	assert.Nil(t, got)

	var wid *string
	require.NoError(t, db.Get(&wid, `SELECT warehouse_id FROM products WHERE id = 'P1'`))
	assert.Nil(t, wid, "products are detached from the deleted warehouse")
}
