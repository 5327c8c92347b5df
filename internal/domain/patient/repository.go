package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
)

type Repository interface {
	// LatestProtocol returns the highest protocol number starting with
	// monthPrefix, or "" when none exists.
	LatestProtocol(
		ctx context.Context,
		monthPrefix string,
	) (string, error)

	CreatePatient(
		ctx context.Context,
		p *models.Patient,
	) error

	// AssignProtocol sets the protocol of a patient that has none yet.
	// It reports false when the patient already had one.
	AssignProtocol(
		ctx context.Context,
		patientID uuid.UUID,
		protocol string,
	) (bool, error)

	ListWithoutProtocol(
		ctx context.Context,
		limit int,
	) ([]models.Patient, error)

	GetPatientForNutritionist(
		ctx context.Context,
		patientID uuid.UUID,
		nutritionistID uuid.UUID,
	) (*models.Patient, error)

	ListPatients(
		ctx context.Context,
		nutritionistID uuid.UUID,
	) ([]models.Patient, error)

	UpdateFeatures(
		ctx context.Context,
		patientID uuid.UUID,
		features models.FeatureFlags,
	) error
}
