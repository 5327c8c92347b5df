package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/appointment"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func inactiveStatuses() []string {
	out := make([]string, 0, len(domain.InactiveStatuses))
	for _, s := range domain.InactiveStatuses {
		out = append(out, string(s))
	}
	return out
}

// overlapClause selects appointments whose [date_time, date_time+duration)
// intersects the given [start, end).
const overlapClause = "date_time < ? AND date_time + duration * interval '1 minute' > ?"

// --------------------------------------------------
// Nutritionist
// --------------------------------------------------

func (r *AppointmentGormRepository) GetNutritionistByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Nutritionist, error) {

	var n models.Nutritionist
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&n).Error; err != nil {
		return nil, translate("nutritionist", err, httperr.CodeNutritionistNotFound)
	}
	return &n, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAvailability(
	ctx context.Context,
	nutritionistID uuid.UUID,
) ([]models.DayAvailability, error) {

	var days []models.DayAvailability
	if err := r.db.WithContext(ctx).
		Preload("Windows", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		}).
		Where("nutritionist_id = ?", nutritionistID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {
		return nil, translate("availability", err, "")
	}
	return days, nil
}

func (r *AppointmentGormRepository) ReplaceAvailability(
	ctx context.Context,
	nutritionistID uuid.UUID,
	days []models.DayAvailability,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dayIDs := tx.Model(&models.DayAvailability{}).
			Select("id").
			Where("nutritionist_id = ?", nutritionistID)

		if err := tx.
			Where("day_id IN (?)", dayIDs).
			Delete(&models.AvailabilityWindow{}).Error; err != nil {
			return err
		}

		if err := tx.
			Where("nutritionist_id = ?", nutritionistID).
			Delete(&models.DayAvailability{}).Error; err != nil {
			return err
		}

		if len(days) == 0 {
			return nil
		}

		for i := range days {
			days[i].NutritionistID = nutritionistID
		}
		return tx.Create(&days).Error
	})
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPatientForNutritionist(
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

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	start := ap.DateTime
	end := ap.EndTime()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the nutritionist row so concurrent creates queue up here.
		var owner models.Nutritionist
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", ap.NutritionistID).
			First(&owner).Error; err != nil {
			return translate("nutritionist", err, httperr.CodeNutritionistNotFound)
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where("nutritionist_id = ? AND status NOT IN ?", ap.NutritionistID, inactiveStatuses()).
			Where(overlapClause, end, start).
			Count(&count).Error; err != nil {
			return translate("appointment conflict", err, "")
		}

		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}

		if err := tx.Omit(clause.Associations).Create(ap).Error; err != nil {
			if httperr.IsExclusionConflict(err) {
				return httperr.ErrBusiness(httperr.CodeTimeConflict)
			}
			return err
		}
		return nil
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForNutritionist(
	ctx context.Context,
	appointmentID uuid.UUID,
	nutritionistID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND nutritionist_id = ?", appointmentID, nutritionistID).
		First(&ap).Error; err != nil {
		return nil, translate("appointment", err, httperr.CodeAppointmentNotFound)
	}

	return &ap, nil
}

// UpdateStatus is a compare-and-set on status: a request that read a stale
// row (e.g. cancelled meanwhile) changes nothing and gets invalid_state.
func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	now := time.Now().UTC()

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"id = ? AND nutritionist_id = ? AND status = ?",
			ap.ID,
			ap.NutritionistID,
			string(from),
		).
		Updates(map[string]any{
			"status":       ap.Status,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
			"updated_at":   now,
		})
	if res.Error != nil {
		return translate("appointment status", res.Error, "")
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	ap.UpdatedAt = now
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveOverlapping(
	ctx context.Context,
	nutritionistID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("date_time", "duration", "status").
		Where("nutritionist_id = ? AND status NOT IN ?", nutritionistID, inactiveStatuses()).
		Where(overlapClause, end, start).
		Order("date_time ASC").
		Find(&apps).Error; err != nil {
		return nil, translate("appointments", err, "")
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	nutritionistID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where(
			"nutritionist_id = ? AND date_time >= ? AND date_time < ?",
			nutritionistID,
			start.UTC(),
			end.UTC(),
		).
		Order("date_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, translate("appointments", err, "")
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
