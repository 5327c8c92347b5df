package patient

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/patient"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
)

type ListPatients struct {
	repo domain.Repository
}

func NewListPatients(repo domain.Repository) *ListPatients {
	return &ListPatients{repo: repo}
}

func (uc *ListPatients) Execute(ctx context.Context, nutritionistID uuid.UUID) ([]models.Patient, error) {
	return uc.repo.ListPatients(ctx, nutritionistID)
}

type GetPatient struct {
	repo domain.Repository
}

func NewGetPatient(repo domain.Repository) *GetPatient {
	return &GetPatient{repo: repo}
}

func (uc *GetPatient) Execute(ctx context.Context, nutritionistID, patientID uuid.UUID) (*models.Patient, error) {
	return uc.repo.GetPatientForNutritionist(ctx, patientID, nutritionistID)
}
