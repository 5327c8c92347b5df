package patient

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/audit"
	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/patient"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/observability/metrics"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/validators"
)

type CreatePatientInput struct {
	NutritionistID uuid.UUID
	Name           string
	Phone          string
	Email          string
	PlanType       string
	Features       map[string]bool
}

type CreatePatient struct {
	repo     domain.Repository
	assigner *ProtocolAssigner
	audit    *audit.Dispatcher
	metrics  *metrics.SchedulingMetrics
	now      func() time.Time
}

func NewCreatePatient(
	repo domain.Repository,
	assigner *ProtocolAssigner,
	audit *audit.Dispatcher,
	m *metrics.SchedulingMetrics,
	now func() time.Time,
) *CreatePatient {
	if now == nil {
		now = time.Now
	}
	return &CreatePatient{
		repo:     repo,
		assigner: assigner,
		audit:    audit,
		metrics:  m,
		now:      now,
	}
}

func (uc *CreatePatient) Execute(
	ctx context.Context,
	in CreatePatientInput,
) (*models.Patient, error) {

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.Input("name", "required")
	}

	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email != "" && !validators.IsEmailFormatValid(email) {
		return nil, httperr.Input("email", "invalid format")
	}

	plan, err := domain.ParsePlan(in.PlanType)
	if err != nil {
		return nil, err
	}

	features, err := domain.ApplyFeatures(domain.DefaultFeatures(plan), in.Features)
	if err != nil {
		return nil, err
	}

	p := &models.Patient{
		ID:             uuid.New(),
		NutritionistID: in.NutritionistID,
		Name:           name,
		Phone:          strings.TrimSpace(in.Phone),
		Email:          email,
		PlanType:       string(plan),
		Features:       features,
	}

	protocol, err := uc.assigner.Assign(ctx, uc.now(), func(ctx context.Context, protocol string) error {
		p.ProtocolNumber = &protocol
		return uc.repo.CreatePatient(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		NutritionistID: in.NutritionistID,
		UserID:         &in.NutritionistID,
		Action:         "patient_created",
		Entity:         "patient",
		EntityID:       &p.ID,
		Metadata:       map[string]string{"protocol_number": protocol},
	})
	uc.metrics.ObserveProtocolAssigned("create")

	return p, nil
}
