package listener

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/movement/dto"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUseCase struct {
	mu    sync.Mutex
	calls []dto.MovementInput
	fail  string
}

func (s *stubUseCase) RegisterMovement(_ context.Context, in *dto.MovementInput) (*model.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, *in)
	if in.ProductID == s.fail {
		return nil, errors.New("boom")
	}
	return &model.Movement{ProductID: in.ProductID}, nil
}

func (s *stubUseCase) RegisterTransfer(context.Context, *dto.TransferInput) (*model.Transfer, error) {
	return nil, nil
}

func (s *stubUseCase) ListMovements(context.Context, *dto.MovementFilters) ([]model.Movement, int, error) {
	return nil, 0, nil
}

func (s *stubUseCase) ListTransfers(context.Context, *dto.TransferFilters) ([]model.Transfer, int, error) {
	return nil, 0, nil
}

func (s *stubUseCase) RequestRestock(context.Context, *dto.RestockInput) (*dto.RestockRequested, error) {
	return nil, nil
}

// chanReader hands out queued messages, then blocks until ctx is done.
type chanReader struct {
	msgs chan kafka.Message
}

func (r *chanReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case m := <-r.msgs:
		return m, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func sale(t *testing.T, eventType string, items ...SaleItemPayload) kafka.Message {
	t.Helper()
	data, err := json.Marshal(SaleRecordedEvent{
		EventID:   "e1",
		EventType: eventType,
		Payload:   SalePayload{ID: "V-1", CompanyID: "c1", UserID: "u1", Fecha: "2024-06-01", Items: items},
	})
	require.NoError(t, err)
	return kafka.Message{Value: data}
}

func TestProcessMessage_RegistersSalidaPerItem(t *testing.T) {
	uc := &stubUseCase{fail: "P1"}
	l := NewSalesListener(nil, uc, logger.NewNop())

	l.processMessage(context.Background(), sale(t, EventSaleRecorded,
		SaleItemPayload{ProductID: "P1", Unidades: 2},
		SaleItemPayload{ProductID: "P2", Unidades: 1},
	).Value)

	require.Len(t, uc.calls, 2, "a failing item does not stop the rest")
	for _, c := range uc.calls {
		assert.Equal(t, model.MovementSalida, c.TipoMovimiento)
		assert.Equal(t, "c1", c.CompanyID)
		assert.Equal(t, "V-1", c.Referencia)
	}
	assert.Equal(t, 2, uc.calls[0].Unidades)
}

func TestProcessMessage_IgnoresOtherEvents(t *testing.T) {
	uc := &stubUseCase{}
	l := NewSalesListener(nil, uc, logger.NewNop())

	l.processMessage(context.Background(), sale(t, "SaleCancelled", SaleItemPayload{ProductID: "P1", Unidades: 1}).Value)
	l.processMessage(context.Background(), []byte("{not json"))

	assert.Empty(t, uc.calls)
}

func TestStart_StopsOnCancel(t *testing.T) {
	uc := &stubUseCase{}
	reader := &chanReader{msgs: make(chan kafka.Message, 1)}
	reader.msgs <- sale(t, EventSaleRecorded, SaleItemPayload{ProductID: "P3", Unidades: 4})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewSalesListener(reader, uc, logger.NewNop()).Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		uc.mu.Lock()
		defer uc.mu.Unlock()
		return len(uc.calls) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listener did not stop")
	}
}
