package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/movement"
	"github.com/fekuna/protrack-service/internal/movement/dto"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const EventSaleRecorded = "SaleRecorded"

// MessageReader is the consuming side of broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type SalesListener struct {
	consumer MessageReader
	uc       movement.UseCase
	logger   logger.ZapLogger
}

func NewSalesListener(consumer MessageReader, uc movement.UseCase, logger logger.ZapLogger) *SalesListener {
	return &SalesListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

// Start reads until ctx is cancelled. Read errors are retried after a pause.
func (l *SalesListener) Start(ctx context.Context) {
	l.logger.Info("starting sales listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping sales listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type SaleRecordedEvent struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Payload   SalePayload `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type SalePayload struct {
	ID        string            `json:"id"`
	CompanyID string            `json:"company_id"`
	UserID    string            `json:"user_id"`
	Fecha     string            `json:"fecha"`
	Items     []SaleItemPayload `json:"items"`
}

type SaleItemPayload struct {
	ProductID   string           `json:"product_id"`
	Unidades    int              `json:"unidades"`
	PrecioVenta *decimal.Decimal `json:"precio_venta"`
}

func (l *SalesListener) processMessage(ctx context.Context, value []byte) {
	var event SaleRecordedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal event", zap.Error(err))
		return
	}
	if event.EventType != EventSaleRecorded {
		return
	}

	l.logger.Info("processing sale", zap.String("sale_id", event.Payload.ID), zap.Int("items", len(event.Payload.Items)))

	for _, item := range event.Payload.Items {
		_, err := l.uc.RegisterMovement(ctx, &dto.MovementInput{
			CompanyID:       event.Payload.CompanyID,
			UserID:          event.Payload.UserID,
			ProductID:       item.ProductID,
			TipoMovimiento:  model.MovementSalida,
			Unidades:        item.Unidades,
			FechaMovimiento: event.Payload.Fecha,
			PrecioVenta:     item.PrecioVenta,
			Referencia:      event.Payload.ID,
		})
		if err != nil {
			l.logger.Error("failed to register sale item",
				zap.String("sale_id", event.Payload.ID),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
		}
	}
}
