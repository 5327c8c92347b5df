package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/audit"
	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/appointment"
)

// ======================================================
// GET
// ======================================================

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	nutritionistID uuid.UUID,
) (domain.Availability, error) {

	if _, err := uc.repo.GetNutritionistByID(ctx, nutritionistID); err != nil {
		return domain.Availability{}, err
	}

	rows, err := uc.repo.GetAvailability(ctx, nutritionistID)
	if err != nil {
		return domain.Availability{}, err
	}

	return domain.AvailabilityFromModels(rows)
}

// ======================================================
// PUT
// ======================================================

type UpdateAvailability struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAvailability(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAvailability {
	return &UpdateAvailability{
		repo:  repo,
		audit: audit,
	}
}

// Execute replaces the whole weekly template after validating every day.
func (uc *UpdateAvailability) Execute(
	ctx context.Context,
	nutritionistID uuid.UUID,
	av domain.Availability,
) (domain.Availability, error) {

	if err := av.Validate(); err != nil {
		return domain.Availability{}, err
	}

	if _, err := uc.repo.GetNutritionistByID(ctx, nutritionistID); err != nil {
		return domain.Availability{}, err
	}

	rows := domain.AvailabilityToModels(nutritionistID, av)
	if err := uc.repo.ReplaceAvailability(ctx, nutritionistID, rows); err != nil {
		return domain.Availability{}, err
	}

	uc.audit.Dispatch(audit.Event{
		NutritionistID: nutritionistID,
		UserID:         &nutritionistID,
		Action:         "availability_updated",
		Entity:         "availability",
	})

	return av, nil
}
