package handler

import (
	"context"
	"errors"

	"github.com/fekuna/protrack-service/internal/auth"
	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/rpc"
	"github.com/fekuna/protrack-service/internal/staff"
	"github.com/fekuna/protrack-service/internal/staff/dto"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type StaffResponse struct {
	Profile *model.Profile `json:"profile"`
}

type DeleteStaffRequest struct {
	ID string `json:"id"`
}

type ListStaffRequest struct {
	Rol      string `json:"rol"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type ListStaffResponse struct {
	Staff []model.Profile `json:"staff"`
	Total int             `json:"total"`
}

// StaffHandler serves staff management. Every method is Director General only.
type StaffHandler struct {
	uc     staff.UseCase
	logger logger.ZapLogger
}

func NewStaffHandler(uc staff.UseCase, log logger.ZapLogger) *StaffHandler {
	return &StaffHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *StaffHandler) CreateStaff(ctx context.Context, req *dto.CreateStaffInput) (*dto.CreatedStaff, error) {
	user, err := auth.RequireDirector(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	input := *req
	input.CompanyID = user.CompanyID

	created, err := h.uc.CreateStaff(ctx, &input)
	if err != nil {
		h.logger.Error("failed to create staff", zap.String("company_id", user.CompanyID), zap.Error(err))
		return nil, mapError(err)
	}
	return created, nil
}

func (h *StaffHandler) UpdateStaff(ctx context.Context, req *dto.UpdateStaffInput) (*StaffResponse, error) {
	user, err := auth.RequireDirector(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	input := *req
	input.CompanyID = user.CompanyID

	p, err := h.uc.UpdateStaff(ctx, &input)
	if err != nil {
		return nil, mapError(err)
	}
	return &StaffResponse{Profile: p}, nil
}

func (h *StaffHandler) DeleteStaff(ctx context.Context, req *DeleteStaffRequest) (*rpc.Empty, error) {
	user, err := auth.RequireDirector(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	if req.ID == user.UserID {
		return nil, status.Error(codes.FailedPrecondition, "cannot delete your own profile")
	}

	if err := h.uc.DeleteStaff(ctx, user.CompanyID, req.ID); err != nil {
		return nil, mapError(err)
	}
	return &rpc.Empty{}, nil
}

func (h *StaffHandler) ListStaff(ctx context.Context, req *ListStaffRequest) (*ListStaffResponse, error) {
	user, err := auth.RequireDirector(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	items, total, err := h.uc.ListStaff(ctx, &dto.StaffFilters{
		CompanyID: user.CompanyID,
		Rol:       req.Rol,
		Page:      req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		h.logger.Error("failed to list staff", zap.String("company_id", user.CompanyID), zap.Error(err))
		return nil, mapError(err)
	}
	return &ListStaffResponse{Staff: items, Total: total}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, staff.ErrStaffNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, staff.ErrEmailTaken):
		return status.Error(codes.AlreadyExists, err.Error())
	}
	return rpc.Error(err)
}
