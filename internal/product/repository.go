package product

import (
	"context"

	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, companyID, id string) (*model.Product, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, companyID, id string) error

	// Import support
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)
	BulkInsert(ctx context.Context, products []model.Product) error

	// Director dashboard
	CompanyCounts(ctx context.Context, companyID string) (*dto.CompanyCounts, error)
}
