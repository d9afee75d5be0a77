package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/protrack-service/internal/cache"
	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/pkg/clock"
	"github.com/fekuna/protrack-service/internal/pkg/validate"
	"github.com/fekuna/protrack-service/internal/product"
	"github.com/fekuna/protrack-service/internal/product/csvimport"
	"github.com/fekuna/protrack-service/internal/product/dto"
	"github.com/fekuna/protrack-service/internal/product/filter"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	expiringWindow    = 30 * 24 * time.Hour
	lowStockItemLimit = 10
)

type productUseCase struct {
	repo     product.Repository
	importer *csvimport.Importer
	cache    *cache.RedisClient
	listTTL  time.Duration
	clock    clock.Clock
	logger   logger.ZapLogger
}

// NewProductUseCase wires the catalog. cache may be nil, which disables list
// caching (the CLI runs that way).
func NewProductUseCase(repo product.Repository, importer *csvimport.Importer, cache *cache.RedisClient, listTTL time.Duration, clk clock.Clock, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:     repo,
		importer: importer,
		cache:    cache,
		listTTL:  listTTL,
		clock:    clk,
		logger:   log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = fmt.Sprintf("PROD-%d", now.UnixMilli())
	}

	existing, err := uc.repo.ExistingIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, product.ErrProductExists
	}

	fecha, err := expiry(input.FechaExpiracion, now)
	if err != nil {
		return nil, err
	}

	cantidad := input.CantidadDisponible
	p := &model.Product{
		ID:                 id,
		CompanyID:          input.CompanyID,
		Nombre:             input.Nombre,
		Ubicacion:          input.Ubicacion,
		NumeroLotes:        input.NumeroLotes,
		TamanoLote:         input.TamanoLote,
		Unidades:           input.Unidades,
		CantidadDisponible: &cantidad,
		FechaExpiracion:    fecha,
		Proveedores:        input.Proveedores,
		UmbralMinimo:       input.UmbralMinimo,
		UmbralMaximo:       input.UmbralMaximo,
		Entrada:            input.Entrada,
		PrecioCompra:       input.PrecioCompra,
		TotalCompra:        input.TotalCompra,
		ImagenURL:          optional(input.ImagenURL),
		CategoriaABC:       optional(input.CategoriaABC),
		CodigoBarras:       optional(input.CodigoBarras),
		WarehouseID:        optional(input.WarehouseID),
		UserID:             optional(input.UserID),
		CreatedAt:          &now,
		UpdatedAt:          &now,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidateProductCache(ctx, p.CompanyID)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, companyID, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) (*dto.ProductList, error) {
	cacheKey, err := uc.generateCacheKey(filters)
	if err == nil && uc.cache != nil {
		if data, err := uc.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var cached dto.ProductList
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		} else if err != nil {
			uc.logger.Warn("product list cache read failed", zap.Error(err))
		}
	}

	products, err := uc.repo.FindAllByCompany(ctx, filters.CompanyID)
	if err != nil {
		return nil, err
	}

	matched := filter.Apply(products, filters.Spec)
	result := &dto.ProductList{
		Products: filter.Page(matched, filters.Page, filters.PageSize),
		Total:    len(matched),
	}

	if cacheKey != "" && uc.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, data, uc.listTTL); err != nil {
				uc.logger.Warn("product list cache write failed", zap.Error(err))
			}
		}
	}
	return result, nil
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%s:%x", filters.CompanyID, md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context, companyID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeletePattern(ctx, product.ListCachePattern(companyID)); err != nil {
		uc.logger.Warn("failed to invalidate product list cache", zap.String("company_id", companyID), zap.Error(err))
	}
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	p, err := uc.repo.FindByID(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrProductNotFound
	}

	now := uc.clock.Now()
	fecha, err := expiry(input.FechaExpiracion, now)
	if err != nil {
		return nil, err
	}

	cantidad := input.CantidadDisponible
	p.Nombre = input.Nombre
	p.Ubicacion = input.Ubicacion
	p.NumeroLotes = input.NumeroLotes
	p.TamanoLote = input.TamanoLote
	p.Unidades = input.Unidades
	p.CantidadDisponible = &cantidad
	p.FechaExpiracion = fecha
	p.Proveedores = input.Proveedores
	p.UmbralMinimo = input.UmbralMinimo
	p.UmbralMaximo = input.UmbralMaximo
	p.Entrada = input.Entrada
	p.PrecioCompra = input.PrecioCompra
	p.TotalCompra = input.TotalCompra
	p.ImagenURL = optional(input.ImagenURL)
	p.CategoriaABC = optional(input.CategoriaABC)
	p.CodigoBarras = optional(input.CodigoBarras)
	p.WarehouseID = optional(input.WarehouseID)
	p.UpdatedAt = &now

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidateProductCache(ctx, p.CompanyID)
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, companyID, id string) error {
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.invalidateProductCache(ctx, companyID)
	return nil
}

func (uc *productUseCase) ImportCSV(ctx context.Context, input *dto.ImportInput) *csvimport.Response {
	res := uc.importer.Import(ctx, csvimport.DecodeText(input.Content), csvimport.Owner{
		CompanyID: input.CompanyID,
		UserID:    input.UserID,
	})
	if res.Success && res.Data.Imported > 0 {
		uc.invalidateProductCache(ctx, input.CompanyID)
	}
	return res
}

func (uc *productUseCase) ImportTemplate(format string) (*dto.Template, error) {
	switch strings.ToLower(format) {
	case "", "csv":
		return &dto.Template{
			Filename:    "plantilla_productos.csv",
			ContentType: "text/csv",
			Content:     csvimport.TemplateCSV(),
		}, nil
	case "xlsx":
		content, err := csvimport.TemplateXLSX()
		if err != nil {
			return nil, err
		}
		return &dto.Template{
			Filename:    "plantilla_productos.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", product.ErrUnknownFormat, format)
}

func (uc *productUseCase) Dashboard(ctx context.Context, companyID string, director bool) (*dto.Dashboard, error) {
	products, err := uc.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	today := now.Format("2006-01-02")
	horizon := now.Add(expiringWindow).Format("2006-01-02")

	d := &dto.Dashboard{
		TotalProducts:  len(products),
		InventoryValue: decimal.Zero,
		LowStockItems:  []model.Product{},
	}
	for i := range products {
		p := &products[i]
		d.TotalUnits += p.Stock()
		if p.IsLowStock() {
			d.LowStock++
			if len(d.LowStockItems) < lowStockItemLimit {
				d.LowStockItems = append(d.LowStockItems, *p)
			}
		}
		// ISO dates compare correctly as strings
		if p.FechaExpiracion != "" && p.FechaExpiracion >= today && p.FechaExpiracion <= horizon {
			d.ExpiringSoon++
		}
		if p.PrecioCompra != nil {
			d.InventoryValue = d.InventoryValue.Add(p.PrecioCompra.Mul(decimal.NewFromInt(int64(p.Stock()))))
		}
	}

	if director {
		counts, err := uc.repo.CompanyCounts(ctx, companyID)
		if err != nil {
			return nil, err
		}
		d.Staff = &counts.Staff
		d.Movements = &counts.Movements
		d.Warehouses = &counts.Warehouses
	}
	return d, nil
}

// expiry normalizes a user-entered date, defaulting blanks to one year out.
func expiry(raw string, now time.Time) (string, error) {
	date, err := csvimport.NormalizeDate(raw)
	switch {
	case err == nil:
		return date, nil
	case errors.Is(err, csvimport.ErrNoDateValue):
		return csvimport.DefaultExpiry(now), nil
	default:
		return "", fmt.Errorf("%w: fecha_expiracion %q", validate.ErrInvalidInput, raw)
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
