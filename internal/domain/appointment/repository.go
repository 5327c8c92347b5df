package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
)

// Repository is the storage port of the scheduling use cases. Missing rows
// come back as business not-found errors, store failures as lookup errors.
type Repository interface {
	// -------- Nutritionist --------
	GetNutritionistByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Nutritionist, error)

	// -------- Availability --------
	GetAvailability(
		ctx context.Context,
		nutritionistID uuid.UUID,
	) ([]models.DayAvailability, error)

	ReplaceAvailability(
		ctx context.Context,
		nutritionistID uuid.UUID,
		days []models.DayAvailability,
	) error

	// -------- Patient --------
	GetPatientForNutritionist(
		ctx context.Context,
		patientID uuid.UUID,
		nutritionistID uuid.UUID,
	) (*models.Patient, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment inserts ap unless an active appointment of the same
	// nutritionist overlaps it, checked and written in one transaction.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForNutritionist(
		ctx context.Context,
		appointmentID uuid.UUID,
		nutritionistID uuid.UUID,
	) (*models.Appointment, error)

	// UpdateStatus writes ap's status and timestamps only if the stored
	// status is still from. Otherwise it returns invalid_state.
	UpdateStatus(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) error

	// -------- Listing --------

	// ListActiveOverlapping returns active appointments intersecting [start, end).
	ListActiveOverlapping(
		ctx context.Context,
		nutritionistID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// ListAppointmentsForPeriod returns every appointment starting in [start, end).
	ListAppointmentsForPeriod(
		ctx context.Context,
		nutritionistID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
