package handler

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/protrack-service/internal/auth"
	"github.com/fekuna/protrack-service/internal/database"
	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/fekuna/protrack-service/internal/pkg/clock"
	"github.com/fekuna/protrack-service/internal/rpc/rpctest"
	"github.com/fekuna/protrack-service/internal/warehouse/dto"
	"github.com/fekuna/protrack-service/internal/warehouse/repository"
	"github.com/fekuna/protrack-service/internal/warehouse/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newClient(t *testing.T) *WarehouseServiceClient {
	t.Helper()
	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))

	clk := clock.NewFake(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	uc := usecase.NewWarehouseUseCase(repository.NewPGRepository(db), nil, clk, logger.NewNop())
	conn := rpctest.Dial(t, func(s *grpc.Server) {
		RegisterWarehouseServiceServer(s, NewWarehouseHandler(uc, logger.NewNop()))
	})
	return NewWarehouseServiceClient(conn)
}

func as(company, role string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(),
		auth.HeaderCompanyID, company,
		auth.HeaderUserRole, role,
	)
}

func TestWarehouseService_DirectorWrites(t *testing.T) {
	client := newClient(t)
	director := as("c1", auth.RoleDirector)

	_, err := client.CreateWarehouse(as("c1", auth.RoleEmployee), &dto.CreateWarehouseInput{Nombre: "Norte"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = client.CreateWarehouse(director, &dto.CreateWarehouseInput{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	created, err := client.CreateWarehouse(director, &dto.CreateWarehouseInput{Nombre: " Norte ", Direccion: "Av. 5"})
	require.NoError(t, err)
	assert.Equal(t, "Norte", created.Warehouse.Nombre)
	assert.Equal(t, "c1", created.Warehouse.CompanyID)
	id := created.Warehouse.ID

	got, err := client.GetWarehouse(as("c1", auth.RoleEmployee), &WarehouseIDRequest{ID: id})
	require.NoError(t, err)
	assert.Equal(t, "Av. 5", *got.Warehouse.Direccion)

	updated, err := client.UpdateWarehouse(director, &dto.UpdateWarehouseInput{ID: id, Nombre: "Norte Grande"})
	require.NoError(t, err)
	assert.Nil(t, updated.Warehouse.Direccion)

	list, err := client.ListWarehouses(as("c1", auth.RoleEmployee), &ListWarehousesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	_, err = client.DeleteWarehouse(director, &WarehouseIDRequest{ID: id})
	require.NoError(t, err)

	_, err = client.GetWarehouse(director, &WarehouseIDRequest{ID: id})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestWarehouseService_TenantIsolation(t *testing.T) {
	client := newClient(t)

	created, err := client.CreateWarehouse(as("c1", auth.RoleDirector), &dto.CreateWarehouseInput{Nombre: "Norte"})
	require.NoError(t, err)

	_, err = client.GetWarehouse(as("c2", auth.RoleDirector), &WarehouseIDRequest{ID: created.Warehouse.ID})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.DeleteWarehouse(as("c2", auth.RoleDirector), &WarehouseIDRequest{ID: created.Warehouse.ID})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.ListWarehouses(context.Background(), &ListWarehousesRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
