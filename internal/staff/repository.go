package staff

import (
	"context"

	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/staff/dto"
)

type Repository interface {
	Create(ctx context.Context, p *model.Profile) error
	// FindByEmail looks across companies; e-mails are globally unique.
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)
	FindByID(ctx context.Context, companyID, id string) (*model.Profile, error)
	FindAll(ctx context.Context, filters *dto.StaffFilters) ([]model.Profile, int, error)
	Update(ctx context.Context, p *model.Profile) error
	Delete(ctx context.Context, companyID, id string) error
}
