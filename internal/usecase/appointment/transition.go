package appointment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/audit"
	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/appointment"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/observability/metrics"
)

// ChangeAppointmentStatus drives confirm / start / complete / cancel / no-show.
type ChangeAppointmentStatus struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	metrics  *metrics.SchedulingMetrics
	settings Settings
}

func NewChangeAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.SchedulingMetrics,
	settings Settings,
) *ChangeAppointmentStatus {
	return &ChangeAppointmentStatus{
		repo:     repo,
		audit:    audit,
		metrics:  m,
		settings: settings,
	}
}

func (uc *ChangeAppointmentStatus) Execute(
	ctx context.Context,
	nutritionistID uuid.UUID,
	appointmentID uuid.UUID,
	next domain.Status,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForNutritionist(ctx, appointmentID, nutritionistID)
	if err != nil {
		return nil, err
	}

	previous := domain.Status(ap.Status)
	if err := domain.Transition(ap, next, uc.settings.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, ap, previous); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		NutritionistID: nutritionistID,
		UserID:         &nutritionistID,
		Action:         "appointment_" + strings.ToLower(string(next)),
		Entity:         "appointment",
		EntityID:       &ap.ID,
		Metadata:       map[string]string{"from": string(previous), "to": ap.Status},
	})
	uc.metrics.ObserveTransition(ap.Status)

	return ap, nil
}
