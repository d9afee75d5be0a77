package product

import (
	"context"

	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/product/csvimport"
	"github.com/fekuna/protrack-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, companyID, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) (*dto.ProductList, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, companyID, id string) error

	ImportCSV(ctx context.Context, input *dto.ImportInput) *csvimport.Response
	ImportTemplate(format string) (*dto.Template, error)

	Dashboard(ctx context.Context, companyID string, director bool) (*dto.Dashboard, error)
}
