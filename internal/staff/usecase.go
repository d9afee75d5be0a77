package staff

import (
	"context"

	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/staff/dto"
)

type UseCase interface {
	CreateStaff(ctx context.Context, input *dto.CreateStaffInput) (*dto.CreatedStaff, error)
	UpdateStaff(ctx context.Context, input *dto.UpdateStaffInput) (*model.Profile, error)
	DeleteStaff(ctx context.Context, companyID, id string) error
	ListStaff(ctx context.Context, filters *dto.StaffFilters) ([]model.Profile, int, error)
}
