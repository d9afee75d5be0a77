package handler

import (
	"context"
	"errors"

	"github.com/fekuna/protrack-service/internal/auth"
	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/rpc"
	"github.com/fekuna/protrack-service/internal/warehouse"
	"github.com/fekuna/protrack-service/internal/warehouse/dto"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type WarehouseIDRequest struct {
	ID string `json:"id"`
}

type WarehouseResponse struct {
	Warehouse *model.Warehouse `json:"warehouse"`
}

type ListWarehousesRequest struct {
	Search   string `json:"search"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type ListWarehousesResponse struct {
	Warehouses []model.Warehouse `json:"warehouses"`
	Total      int               `json:"total"`
}

type WarehouseHandler struct {
	uc     warehouse.UseCase
	logger logger.ZapLogger
}

func NewWarehouseHandler(uc warehouse.UseCase, log logger.ZapLogger) *WarehouseHandler {
	return &WarehouseHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *WarehouseHandler) CreateWarehouse(ctx context.Context, req *dto.CreateWarehouseInput) (*WarehouseResponse, error) {
	user, err := auth.RequireDirector(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	input := *req
	input.CompanyID = user.CompanyID

	w, err := h.uc.CreateWarehouse(ctx, &input)
	if err != nil {
		h.logger.Error("failed to create warehouse", zap.String("company_id", user.CompanyID), zap.Error(err))
		return nil, mapError(err)
	}
	return &WarehouseResponse{Warehouse: w}, nil
}

func (h *WarehouseHandler) GetWarehouse(ctx context.Context, req *WarehouseIDRequest) (*WarehouseResponse, error) {
	user, err := auth.RequireCompany(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	w, err := h.uc.GetWarehouse(ctx, user.CompanyID, req.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return &WarehouseResponse{Warehouse: w}, nil
}

func (h *WarehouseHandler) ListWarehouses(ctx context.Context, req *ListWarehousesRequest) (*ListWarehousesResponse, error) {
	user, err := auth.RequireCompany(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	items, total, err := h.uc.ListWarehouses(ctx, &dto.WarehouseFilters{
		CompanyID: user.CompanyID,
		Search:    req.Search,
		Page:      req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		h.logger.Error("failed to list warehouses", zap.String("company_id", user.CompanyID), zap.Error(err))
		return nil, mapError(err)
	}
	return &ListWarehousesResponse{Warehouses: items, Total: total}, nil
}

func (h *WarehouseHandler) UpdateWarehouse(ctx context.Context, req *dto.UpdateWarehouseInput) (*WarehouseResponse, error) {
	user, err := auth.RequireDirector(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	input := *req
	input.CompanyID = user.CompanyID

	w, err := h.uc.UpdateWarehouse(ctx, &input)
	if err != nil {
		return nil, mapError(err)
	}
	return &WarehouseResponse{Warehouse: w}, nil
}

func (h *WarehouseHandler) DeleteWarehouse(ctx context.Context, req *WarehouseIDRequest) (*rpc.Empty, error) {
	user, err := auth.RequireDirector(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	if err := h.uc.DeleteWarehouse(ctx, user.CompanyID, req.ID); err != nil {
		return nil, mapError(err)
	}
	return &rpc.Empty{}, nil
}

func mapError(err error) error {
	if errors.Is(err, warehouse.ErrWarehouseNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	return rpc.Error(err)
}
