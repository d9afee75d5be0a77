package warehouse

import (
	"context"

	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/warehouse/dto"
)

type Repository interface {
	Create(ctx context.Context, w *model.Warehouse) error
	FindByID(ctx context.Context, companyID, id string) (*model.Warehouse, error)
	FindAll(ctx context.Context, filters *dto.WarehouseFilters) ([]model.Warehouse, int, error)
	Update(ctx context.Context, w *model.Warehouse) error
	// Delete also detaches the company's products from the warehouse.
	Delete(ctx context.Context, companyID, id string) error
}
