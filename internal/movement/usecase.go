package movement

import (
	"context"

	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/movement/dto"
)

type UseCase interface {
	RegisterMovement(ctx context.Context, input *dto.MovementInput) (*model.Movement, error)
	RegisterTransfer(ctx context.Context, input *dto.TransferInput) (*model.Transfer, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.Movement, int, error)
	ListTransfers(ctx context.Context, filters *dto.TransferFilters) ([]model.Transfer, int, error)
	RequestRestock(ctx context.Context, input *dto.RestockInput) (*dto.RestockRequested, error)
}

// Notifier delivers restock events. broker.KafkaProducer satisfies it.
type Notifier interface {
	Publish(ctx context.Context, key string, value []byte) error
}
