package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/protrack-service/internal/cache"
	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/movement"
	"github.com/fekuna/protrack-service/internal/movement/dto"
	"github.com/fekuna/protrack-service/internal/pkg/clock"
	"github.com/fekuna/protrack-service/internal/pkg/validate"
	"github.com/fekuna/protrack-service/internal/product"
	"github.com/fekuna/protrack-service/internal/product/csvimport"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	lockTTL      = 5 * time.Second
	lockAttempts = 3
	lockBackoff  = 100 * time.Millisecond
)

type movementUseCase struct {
	repo     movement.Repository
	cache    *cache.RedisClient
	notifier movement.Notifier
	clock    clock.Clock
	logger   logger.ZapLogger
}

// NewMovementUseCase wires stock movements. notifier may be nil, in which case
// automatic restock events are skipped and RequestRestock fails.
func NewMovementUseCase(repo movement.Repository, cache *cache.RedisClient, notifier movement.Notifier, clk clock.Clock, log logger.ZapLogger) movement.UseCase {
	return &movementUseCase{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		clock:    clk,
		logger:   log,
	}
}

func (uc *movementUseCase) RegisterMovement(ctx context.Context, input *dto.MovementInput) (*model.Movement, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	fecha, err := movementDate(input.FechaMovimiento, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	release, err := uc.lock(ctx, input.CompanyID, input.ProductID)
	if err != nil {
		return nil, err
	}
	defer release()

	m := &model.Movement{
		ID:              uuid.New().String(),
		CompanyID:       input.CompanyID,
		ProductID:       input.ProductID,
		TipoMovimiento:  input.TipoMovimiento,
		Unidades:        input.Unidades,
		FechaMovimiento: fecha,
		PrecioVenta:     input.PrecioVenta,
		Referencia:      optional(input.Referencia),
		UserID:          optional(input.UserID),
		CreatedAt:       uc.clock.Now(),
	}
	p, err := uc.repo.ApplyMovement(ctx, m)
	if err != nil {
		return nil, err
	}
	before, after := m.CantidadAnterior, m.CantidadPosterior
	uc.invalidateProductCache(ctx, input.CompanyID)

	uc.logger.Info("movement registered",
		zap.String("company_id", m.CompanyID),
		zap.String("product_id", m.ProductID),
		zap.String("tipo", m.TipoMovimiento),
		zap.Int("before", before),
		zap.Int("after", after),
	)

	if m.TipoMovimiento == model.MovementSalida && after <= p.UmbralMinimo {
		uc.autoRestock(ctx, p, before, after)
	}
	return m, nil
}

func (uc *movementUseCase) RegisterTransfer(ctx context.Context, input *dto.TransferInput) (*model.Transfer, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	fecha, err := movementDate(input.Fecha, now)
	if err != nil {
		return nil, err
	}

	p, err := uc.repo.FindProduct(ctx, input.CompanyID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, movement.ErrProductNotFound
	}

	t := &model.Transfer{
		ID:         uuid.New().String(),
		CompanyID:  input.CompanyID,
		ProductID:  input.ProductID,
		SedeOrigen: input.SedeOrigen,
		Destino:    input.Destino,
		Fecha:      fecha,
		Motivo:     input.Motivo,
		Encargado:  input.Encargado,
		Unidades:   input.Unidades,
		UserID:     optional(input.UserID),
		CreatedAt:  now,
	}
	if err := uc.repo.CreateTransfer(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *movementUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.Movement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}

func (uc *movementUseCase) ListTransfers(ctx context.Context, filters *dto.TransferFilters) ([]model.Transfer, int, error) {
	return uc.repo.ListTransfers(ctx, filters)
}

func (uc *movementUseCase) RequestRestock(ctx context.Context, input *dto.RestockInput) (*dto.RestockRequested, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if uc.notifier == nil {
		return nil, movement.ErrRestockDisabled
	}

	p, err := uc.repo.FindProduct(ctx, input.CompanyID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, movement.ErrProductNotFound
	}

	event := uc.restockEvent(p, input.Cantidad, p.Stock(), p.Stock()+input.Cantidad)
	event.RequestedBy = input.UserID
	event.Nota = input.Nota
	if err := uc.publish(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// autoRestock asks for enough units to get back to umbral_maximo, or to the
// minimum when no maximum is configured.
func (uc *movementUseCase) autoRestock(ctx context.Context, p *model.Product, before, after int) {
	if uc.notifier == nil {
		return
	}
	target := p.UmbralMaximo
	if target <= p.UmbralMinimo {
		target = p.UmbralMinimo
	}
	cantidad := max(target-after, 1)

	event := uc.restockEvent(p, cantidad, before, after)
	event.Automatic = true
	if err := uc.publish(ctx, event); err != nil {
		uc.logger.Error("failed to publish automatic restock",
			zap.String("company_id", p.CompanyID),
			zap.String("product_id", p.ID),
			zap.Error(err),
		)
	}
}

func (uc *movementUseCase) restockEvent(p *model.Product, cantidad, before, after int) *dto.RestockRequested {
	return &dto.RestockRequested{
		EventType:     dto.EventRestockRequested,
		CompanyID:     p.CompanyID,
		ProductID:     p.ID,
		ProductName:   p.Nombre,
		Cantidad:      cantidad,
		StockAnterior: before,
		StockActual:   after,
		UmbralMinimo:  p.UmbralMinimo,
		RequestedAt:   uc.clock.Now().Format(time.RFC3339),
	}
}

func (uc *movementUseCase) publish(ctx context.Context, event *dto.RestockRequested) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return uc.notifier.Publish(ctx, event.CompanyID+":"+event.ProductID, data)
}

// lock takes the per-product stock lock so concurrent writers on a hot
// product wait here instead of on the database. Correctness does not depend
// on it: when the cache is missing or the lock stays busy the movement goes
// ahead and the store transaction serializes it.
func (uc *movementUseCase) lock(ctx context.Context, companyID, productID string) (func(), error) {
	noop := func() {}
	if uc.cache == nil {
		return noop, nil
	}

	key := fmt.Sprintf("lock:stock:%s:%s", companyID, productID)
	value := uuid.New().String()
	for i := 0; i < lockAttempts; i++ {
		if i > 0 {
			timer := time.NewTimer(lockBackoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
		ok, err := uc.cache.AcquireLock(ctx, key, value, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire stock lock", zap.String("key", key), zap.Error(err))
			continue
		}
		if ok {
			return func() {
				if err := uc.cache.ReleaseLock(context.WithoutCancel(ctx), key, value); err != nil {
					uc.logger.Warn("failed to release stock lock", zap.String("key", key), zap.Error(err))
				}
			}, nil
		}
	}
	uc.logger.Debug("stock lock busy, continuing unlocked", zap.String("key", key))
	return noop, nil
}

func (uc *movementUseCase) invalidateProductCache(ctx context.Context, companyID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeletePattern(ctx, product.ListCachePattern(companyID)); err != nil {
		uc.logger.Warn("failed to invalidate product list cache", zap.String("company_id", companyID), zap.Error(err))
	}
}

// movementDate accepts the same formats as the import and defaults to today.
func movementDate(raw string, now time.Time) (string, error) {
	date, err := csvimport.NormalizeDate(raw)
	switch {
	case err == nil:
		return date, nil
	case errors.Is(err, csvimport.ErrNoDateValue):
		return now.Format("2006-01-02"), nil
	default:
		return "", fmt.Errorf("%w: fecha %q", validate.ErrInvalidInput, raw)
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
