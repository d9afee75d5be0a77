package usecase

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/pkg/clock"
	"github.com/fekuna/protrack-service/internal/pkg/validate"
	"github.com/fekuna/protrack-service/internal/staff"
	"github.com/fekuna/protrack-service/internal/staff/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tempPasswordAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	tempPasswordLen      = 8
	// appended so generated passwords pass common complexity rules
	tempPasswordSuffix = "A1!"
)

type Option func(*staffUseCase)

// WithBcryptCost lowers the hashing cost, for tests.
func WithBcryptCost(cost int) Option {
	return func(uc *staffUseCase) { uc.cost = cost }
}

type staffUseCase struct {
	repo   staff.Repository
	clock  clock.Clock
	logger logger.ZapLogger
	cost   int
}

func NewStaffUseCase(repo staff.Repository, clk clock.Clock, log logger.ZapLogger, opts ...Option) staff.UseCase {
	uc := &staffUseCase{
		repo:   repo,
		clock:  clk,
		logger: log,
		cost:   bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CreateStaff registers a profile with a fresh temporary password. When the
// e-mail already belongs to the company the existing profile is overwritten
// and its password reset instead.
func (uc *staffUseCase) CreateStaff(ctx context.Context, req *dto.CreateStaffInput) (*dto.CreatedStaff, error) {
	input := *req
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validate.Struct(&input); err != nil {
		return nil, err
	}

	password, err := tempPassword()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return nil, err
	}
	hashed := string(hash)

	existing, err := uc.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if existing != nil {
		if existing.CompanyID != input.CompanyID {
			return nil, staff.ErrEmailTaken
		}
		existing.Nombre = strings.TrimSpace(input.Nombre)
		existing.Telefono = optional(input.Telefono)
		existing.Rol = input.Rol
		existing.Posicion = optional(input.Posicion)
		existing.SalarioBase = input.SalarioBase
		existing.PasswordHash = &hashed
		existing.UpdatedAt = now
		if err := uc.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		uc.logger.Info("staff password reset", zap.String("company_id", input.CompanyID), zap.String("profile_id", existing.ID))
		return &dto.CreatedStaff{Profile: existing, TempPassword: password, Reset: true}, nil
	}

	p := &model.Profile{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CompanyID:    input.CompanyID,
		Nombre:       strings.TrimSpace(input.Nombre),
		Email:        input.Email,
		Telefono:     optional(input.Telefono),
		Rol:          input.Rol,
		Posicion:     optional(input.Posicion),
		SalarioBase:  input.SalarioBase,
		PasswordHash: &hashed,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.logger.Info("staff created", zap.String("company_id", p.CompanyID), zap.String("profile_id", p.ID), zap.String("rol", p.Rol))
	return &dto.CreatedStaff{Profile: p, TempPassword: password}, nil
}

func (uc *staffUseCase) UpdateStaff(ctx context.Context, input *dto.UpdateStaffInput) (*model.Profile, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	p, err := uc.repo.FindByID(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, staff.ErrStaffNotFound
	}

	p.Nombre = strings.TrimSpace(input.Nombre)
	p.Telefono = optional(input.Telefono)
	p.Rol = input.Rol
	p.Posicion = optional(input.Posicion)
	p.SalarioBase = input.SalarioBase
	p.UpdatedAt = uc.clock.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *staffUseCase) DeleteStaff(ctx context.Context, companyID, id string) error {
	return uc.repo.Delete(ctx, companyID, id)
}

func (uc *staffUseCase) ListStaff(ctx context.Context, filters *dto.StaffFilters) ([]model.Profile, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func tempPassword() (string, error) {
	var b strings.Builder
	limit := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := 0; i < tempPasswordLen; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(tempPasswordAlphabet[n.Int64()])
	}
	b.WriteString(tempPasswordSuffix)
	return b.String(), nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
