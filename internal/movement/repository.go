package movement

import (
	"context"

	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/movement/dto"
)

type Repository interface {
	// FindProduct returns nil when the product does not belong to the company.
	FindProduct(ctx context.Context, companyID, productID string) (*model.Product, error)

	// ApplyMovement settles m against the product's current stock, stores it
	// and writes the new stock in one transaction. It returns the product as
	// it was before the movement.
	ApplyMovement(ctx context.Context, m *model.Movement) (*model.Product, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.Movement, int, error)

	CreateTransfer(ctx context.Context, t *model.Transfer) error
	ListTransfers(ctx context.Context, filters *dto.TransferFilters) ([]model.Transfer, int, error)
}
