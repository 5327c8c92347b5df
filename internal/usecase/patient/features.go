package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/audit"
	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/patient"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
)

type UpdateFeatures struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateFeatures(repo domain.Repository, audit *audit.Dispatcher) *UpdateFeatures {
	return &UpdateFeatures{repo: repo, audit: audit}
}

// Execute overlays the given flags on the patient's current ones.
func (uc *UpdateFeatures) Execute(
	ctx context.Context,
	nutritionistID uuid.UUID,
	patientID uuid.UUID,
	changes map[string]bool,
) (*models.Patient, error) {

	p, err := uc.repo.GetPatientForNutritionist(ctx, patientID, nutritionistID)
	if err != nil {
		return nil, err
	}

	features, err := domain.ApplyFeatures(p.Features, changes)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateFeatures(ctx, p.ID, features); err != nil {
		return nil, err
	}
	p.Features = features

	uc.audit.Dispatch(audit.Event{
		NutritionistID: nutritionistID,
		UserID:         &nutritionistID,
		Action:         "patient_features_updated",
		Entity:         "patient",
		EntityID:       &p.ID,
		Metadata:       changes,
	})

	return p, nil
}
