package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/protrack-service/internal/cache"
	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/pkg/clock"
	"github.com/fekuna/protrack-service/internal/pkg/validate"
	"github.com/fekuna/protrack-service/internal/product"
	"github.com/fekuna/protrack-service/internal/warehouse"
	"github.com/fekuna/protrack-service/internal/warehouse/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type warehouseUseCase struct {
	repo   warehouse.Repository
	cache  *cache.RedisClient
	clock  clock.Clock
	logger logger.ZapLogger
}

func NewWarehouseUseCase(repo warehouse.Repository, cache *cache.RedisClient, clk clock.Clock, log logger.ZapLogger) warehouse.UseCase {
	return &warehouseUseCase{
		repo:   repo,
		cache:  cache,
		clock:  clk,
		logger: log,
	}
}

func (uc *warehouseUseCase) CreateWarehouse(ctx context.Context, input *dto.CreateWarehouseInput) (*model.Warehouse, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	w := &model.Warehouse{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CompanyID: input.CompanyID,
		Nombre:    strings.TrimSpace(input.Nombre),
		Direccion: optional(input.Direccion),
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (uc *warehouseUseCase) GetWarehouse(ctx context.Context, companyID, id string) (*model.Warehouse, error) {
	w, err := uc.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, warehouse.ErrWarehouseNotFound
	}
	return w, nil
}

func (uc *warehouseUseCase) ListWarehouses(ctx context.Context, filters *dto.WarehouseFilters) ([]model.Warehouse, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *warehouseUseCase) UpdateWarehouse(ctx context.Context, input *dto.UpdateWarehouseInput) (*model.Warehouse, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	w, err := uc.GetWarehouse(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}

	w.Nombre = strings.TrimSpace(input.Nombre)
	w.Direccion = optional(input.Direccion)
	w.UpdatedAt = uc.clock.Now()

	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (uc *warehouseUseCase) DeleteWarehouse(ctx context.Context, companyID, id string) error {
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	// products that pointed at the warehouse were detached
	if uc.cache != nil {
		if err := uc.cache.DeletePattern(ctx, product.ListCachePattern(companyID)); err != nil {
			uc.logger.Warn("failed to invalidate product list cache", zap.String("company_id", companyID), zap.Error(err))
		}
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
