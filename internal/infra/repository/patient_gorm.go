package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/patient"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
)

type PatientGormRepository struct {
	db *gorm.DB
}

func NewPatientGormRepository(db *gorm.DB) *PatientGormRepository {
	return &PatientGormRepository{db: db}
}

// --------------------------------------------------
// Protocol
// --------------------------------------------------

func (r *PatientGormRepository) LatestProtocol(
	ctx context.Context,
	monthPrefix string,
) (string, error) {

	// Fixed-width numbers: string order equals numeric order.
	var found []string
	if err := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Where("protocol_number LIKE ?", monthPrefix+"-%").
		Order("protocol_number DESC").
		Limit(1).
		Pluck("protocol_number", &found).Error; err != nil {
		return "", httperr.Lookup("latest protocol", err)
	}

	if len(found) == 0 {
		return "", nil
	}
	return found[0], nil
}

func (r *PatientGormRepository) AssignProtocol(
	ctx context.Context,
	patientID uuid.UUID,
	protocol string,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Where("id = ? AND protocol_number IS NULL", patientID).
		Update("protocol_number", protocol)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *PatientGormRepository) ListWithoutProtocol(
	ctx context.Context,
	limit int,
) ([]models.Patient, error) {

	var patients []models.Patient
	if err := r.db.WithContext(ctx).
		Where("protocol_number IS NULL").
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&patients).Error; err != nil {
		return nil, translate("patients without protocol", err, "")
	}
	return patients, nil
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

// CreatePatient returns the raw driver error so callers can tell a
// protocol collision (unique violation) apart.
func (r *PatientGormRepository) CreatePatient(
	ctx context.Context,
	p *models.Patient,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *PatientGormRepository) GetPatientForNutritionist(
	ctx context.Context,
	patientID uuid.UUID,
	nutritionistID uuid.UUID,
) (*models.Patient, error) {

	var p models.Patient
	if err := r.db.WithContext(ctx).
		Where("id = ? AND nutritionist_id = ?", patientID, nutritionistID).
		First(&p).Error; err != nil {
		return nil, translate("patient", err, httperr.CodePatientNotFound)
	}
	return &p, nil
}

func (r *PatientGormRepository) ListPatients(
	ctx context.Context,
	nutritionistID uuid.UUID,
) ([]models.Patient, error) {

	var patients []models.Patient
	if err := r.db.WithContext(ctx).
		Where("nutritionist_id = ?", nutritionistID).
		Order("name ASC").
		Find(&patients).Error; err != nil {
		return nil, translate("patients", err, "")
	}
	return patients, nil
}

func (r *PatientGormRepository) UpdateFeatures(
	ctx context.Context,
	patientID uuid.UUID,
	features models.FeatureFlags,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Patient{ID: patientID}).
		Select("features", "updated_at").
		Updates(models.Patient{Features: features, UpdatedAt: time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodePatientNotFound)
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*PatientGormRepository)(nil)
