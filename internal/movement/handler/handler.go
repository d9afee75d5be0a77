package handler

import (
	"context"
	"errors"

	"github.com/fekuna/protrack-service/internal/auth"
	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/movement"
	"github.com/fekuna/protrack-service/internal/movement/dto"
	"github.com/fekuna/protrack-service/internal/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type MovementResponse struct {
	Movement *model.Movement `json:"movement"`
}

type TransferResponse struct {
	Transfer *model.Transfer `json:"transfer"`
}

type ListRequest struct {
	ProductID string `json:"product_id"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
}

type ListMovementsResponse struct {
	Movements []model.Movement `json:"movements"`
	Total     int              `json:"total"`
}

type ListTransfersResponse struct {
	Transfers []model.Transfer `json:"transfers"`
	Total     int              `json:"total"`
}

type MovementHandler struct {
	uc     movement.UseCase
	logger logger.ZapLogger
}

func NewMovementHandler(uc movement.UseCase, log logger.ZapLogger) *MovementHandler {
	return &MovementHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *MovementHandler) RegisterMovement(ctx context.Context, req *dto.MovementInput) (*MovementResponse, error) {
	user, err := auth.RequireCompany(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	input := *req
	input.CompanyID = user.CompanyID
	input.UserID = user.UserID

	m, err := h.uc.RegisterMovement(ctx, &input)
	if err != nil {
		h.logger.Error("failed to register movement",
			zap.String("company_id", user.CompanyID),
			zap.String("product_id", req.ProductID),
			zap.Error(err),
		)
		return nil, mapError(err)
	}
	return &MovementResponse{Movement: m}, nil
}

func (h *MovementHandler) RegisterTransfer(ctx context.Context, req *dto.TransferInput) (*TransferResponse, error) {
	user, err := auth.RequireCompany(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	input := *req
	input.CompanyID = user.CompanyID
	input.UserID = user.UserID

	t, err := h.uc.RegisterTransfer(ctx, &input)
	if err != nil {
		return nil, mapError(err)
	}
	return &TransferResponse{Transfer: t}, nil
}

func (h *MovementHandler) ListMovements(ctx context.Context, req *ListRequest) (*ListMovementsResponse, error) {
	user, err := auth.RequireCompany(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	items, total, err := h.uc.ListMovements(ctx, &dto.MovementFilters{
		CompanyID: user.CompanyID,
		ProductID: req.ProductID,
		Page:      req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		h.logger.Error("failed to list movements", zap.String("company_id", user.CompanyID), zap.Error(err))
		return nil, mapError(err)
	}
	return &ListMovementsResponse{Movements: items, Total: total}, nil
}

func (h *MovementHandler) ListTransfers(ctx context.Context, req *ListRequest) (*ListTransfersResponse, error) {
	user, err := auth.RequireCompany(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	items, total, err := h.uc.ListTransfers(ctx, &dto.TransferFilters{
		CompanyID: user.CompanyID,
		ProductID: req.ProductID,
		Page:      req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		h.logger.Error("failed to list transfers", zap.String("company_id", user.CompanyID), zap.Error(err))
		return nil, mapError(err)
	}
	return &ListTransfersResponse{Transfers: items, Total: total}, nil
}

func (h *MovementHandler) RequestRestock(ctx context.Context, req *dto.RestockInput) (*dto.RestockRequested, error) {
	user, err := auth.RequireCompany(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	input := *req
	input.CompanyID = user.CompanyID
	input.UserID = user.UserID

	event, err := h.uc.RequestRestock(ctx, &input)
	if err != nil {
		h.logger.Error("failed to request restock", zap.String("company_id", user.CompanyID), zap.Error(err))
		return nil, mapError(err)
	}
	return event, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, movement.ErrProductNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, movement.ErrRestockDisabled):
		return status.Error(codes.Unavailable, err.Error())
	}
	return rpc.Error(err)
}
