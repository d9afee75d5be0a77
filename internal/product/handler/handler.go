package handler

import (
	"context"
	"errors"

	"github.com/fekuna/protrack-service/internal/auth"
	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/product"
	"github.com/fekuna/protrack-service/internal/product/csvimport"
	"github.com/fekuna/protrack-service/internal/product/dto"
	"github.com/fekuna/protrack-service/internal/product/filter"
	"github.com/fekuna/protrack-service/internal/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type GetProductRequest struct {
	ID string `json:"id"`
}

type DeleteProductRequest struct {
	ID string `json:"id"`
}

type ProductResponse struct {
	Product *model.Product `json:"product"`
}

type ListProductsRequest struct {
	filter.Spec
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type ListProductsResponse struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type ImportProductsRequest struct {
	// Content is the raw file; JSON carries it base64 encoded.
	Content []byte `json:"content"`
}

type TemplateRequest struct {
	Format string `json:"format"`
}

type TemplateResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"content"`
}

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) CreateProduct(ctx context.Context, req *dto.CreateProductInput) (*ProductResponse, error) {
	user, err := auth.RequireCompany(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	input := *req
	input.CompanyID = user.CompanyID
	input.UserID = user.UserID

	p, err := h.uc.CreateProduct(ctx, &input)
	if err != nil {
		h.logger.Error("failed to create product", zap.String("company_id", user.CompanyID), zap.Error(err))
		return nil, mapError(err)
	}
	return &ProductResponse{Product: p}, nil
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *GetProductRequest) (*ProductResponse, error) {
	user, err := auth.RequireCompany(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	p, err := h.uc.GetProduct(ctx, user.CompanyID, req.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return &ProductResponse{Product: p}, nil
}

func (h *ProductHandler) ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {
	user, err := auth.RequireCompany(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	list, err := h.uc.ListProducts(ctx, &dto.ProductFilters{
		CompanyID: user.CompanyID,
		Spec:      req.Spec,
		Page:      req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		h.logger.Error("failed to list products", zap.String("company_id", user.CompanyID), zap.Error(err))
		return nil, mapError(err)
	}

	return &ListProductsResponse{
		Products: list.Products,
		Total:    list.Total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (h *ProductHandler) UpdateProduct(ctx context.Context, req *dto.UpdateProductInput) (*ProductResponse, error) {
	user, err := auth.RequireCompany(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	input := *req
	input.CompanyID = user.CompanyID

	p, err := h.uc.UpdateProduct(ctx, &input)
	if err != nil {
		return nil, mapError(err)
	}
	return &ProductResponse{Product: p}, nil
}

func (h *ProductHandler) DeleteProduct(ctx context.Context, req *DeleteProductRequest) (*rpc.Empty, error) {
	user, err := auth.RequireDirector(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	if err := h.uc.DeleteProduct(ctx, user.CompanyID, req.ID); err != nil {
		return nil, mapError(err)
	}
	return &rpc.Empty{}, nil
}

// ImportProducts always answers with the import response; failures inside
// the import are reported in it rather than as a status.
func (h *ProductHandler) ImportProducts(ctx context.Context, req *ImportProductsRequest) (*csvimport.Response, error) {
	user, err := auth.RequireCompany(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return h.uc.ImportCSV(ctx, &dto.ImportInput{
		CompanyID: user.CompanyID,
		UserID:    user.UserID,
		Content:   req.Content,
	}), nil
}

func (h *ProductHandler) GetImportTemplate(ctx context.Context, req *TemplateRequest) (*TemplateResponse, error) {
	tpl, err := h.uc.ImportTemplate(req.Format)
	if err != nil {
		return nil, mapError(err)
	}
	return &TemplateResponse{
		Filename:    tpl.Filename,
		ContentType: tpl.ContentType,
		Content:     tpl.Content,
	}, nil
}

func (h *ProductHandler) GetDashboard(ctx context.Context, _ *rpc.Empty) (*dto.Dashboard, error) {
	user, err := auth.RequireCompany(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	d, err := h.uc.Dashboard(ctx, user.CompanyID, user.IsDirector())
	if err != nil {
		h.logger.Error("failed to build dashboard", zap.String("company_id", user.CompanyID), zap.Error(err))
		return nil, mapError(err)
	}
	return d, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, product.ErrProductExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, product.ErrUnknownFormat):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return rpc.Error(err)
}
