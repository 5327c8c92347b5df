package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/audit"
	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/appointment"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/observability/metrics"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	NutritionistID uuid.UUID
	PatientID      uuid.UUID

	// DateTime wins when set; otherwise Date + Time are read as wall-clock
	// in the nutritionist's timezone.
	DateTime time.Time
	Date     string
	Time     string

	Duration int // minutes, 0 = slot size
	Type     string
	Notes    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	metrics  *metrics.SchedulingMetrics
	settings Settings
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.SchedulingMetrics,
	settings Settings,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		audit:    audit,
		metrics:  m,
		settings: settings,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Nutricionista
	// --------------------------------------------------
	n, err := uc.repo.GetNutritionistByID(ctx, in.NutritionistID)
	if err != nil {
		return nil, err
	}
	loc := location(n)

	// --------------------------------------------------
	// 2. Data / hora no timezone do nutricionista
	// --------------------------------------------------
	start := in.DateTime
	if start.IsZero() {
		start, err = time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
		if err != nil {
			return nil, httperr.Input("date_time", "expected date YYYY-MM-DD and time HH:mm")
		}
	}
	start = start.In(loc)

	if start.Before(uc.settings.now()) {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentInPast)
	}

	// --------------------------------------------------
	// 3. Duração e tipo
	// --------------------------------------------------
	duration := time.Duration(in.Duration) * time.Minute
	if in.Duration == 0 {
		duration = uc.settings.increment(n)
	}
	if duration <= 0 {
		return nil, httperr.Input("duration", "must be positive")
	}
	end := start.Add(duration)

	typ, err := domain.ParseType(in.Type)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Disponibilidade + pausa
	// --------------------------------------------------
	rows, err := uc.repo.GetAvailability(ctx, n.ID)
	if err != nil {
		return nil, err
	}
	av, err := domain.AvailabilityFromModels(rows)
	if err != nil {
		return nil, err
	}
	if err := domain.FitsAvailability(av, start, end); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Paciente do nutricionista
	// --------------------------------------------------
	patient, err := uc.repo.GetPatientForNutritionist(ctx, in.PatientID, n.ID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Criação (conflito checado na mesma transação)
	// --------------------------------------------------
	ap := &models.Appointment{
		ID:             uuid.New(),
		NutritionistID: n.ID,
		PatientID:      patient.ID,
		DateTime:       start.UTC(),
		Duration:       int(duration / time.Minute),
		Status:         string(domain.InitialStatus()),
		Type:           string(typ),
		Notes:          in.Notes,
	}
	if typ == domain.TypeOnline {
		ap.VideoRoomURL = domain.VideoRoomURL(uc.settings.VideoCallBaseURL, ap.ID)
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, httperr.CodeTimeConflict) {
			uc.audit.Dispatch(audit.Event{
				NutritionistID: n.ID,
				UserID:         &n.ID,
				Action:         "appointment_conflict",
				Entity:         "appointment",
				Metadata:       map[string]any{"date_time": ap.DateTime, "duration": ap.Duration},
			})
		}
		return nil, err
	}
	ap.Patient = *patient

	// --------------------------------------------------
	// 7. Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		NutritionistID: n.ID,
		UserID:         &n.ID,
		Action:         "appointment_created",
		Entity:         "appointment",
		EntityID:       &ap.ID,
	})
	uc.metrics.ObserveAppointmentCreated(ap.Type)

	return ap, nil
}
