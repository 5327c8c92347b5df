package patient

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/patient"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
)

// fakeRepo enforces the unique protocol index like Postgres does.
type fakeRepo struct {
	mu       sync.Mutex
	patients map[uuid.UUID]*models.Patient

	// staleLatest makes LatestProtocol lag behind for this many calls,
	// simulating a writer that skipped the lock.
	staleLatest int
	latestErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{patients: map[uuid.UUID]*models.Patient{}}
}

var _ domain.Repository = (*fakeRepo)(nil)

func (r *fakeRepo) protocolTaken(protocol string) bool {
	for _, p := range r.patients {
		if p.ProtocolNumber != nil && *p.ProtocolNumber == protocol {
			return true
		}
	}
	return false
}

func (r *fakeRepo) LatestProtocol(_ context.Context, monthPrefix string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.latestErr != nil {
		return "", r.latestErr
	}
	if r.staleLatest > 0 {
		r.staleLatest--
		return "", nil
	}

	latest := ""
	for _, p := range r.patients {
		if p.ProtocolNumber != nil && strings.HasPrefix(*p.ProtocolNumber, monthPrefix+"-") && *p.ProtocolNumber > latest {
			latest = *p.ProtocolNumber
		}
	}
	return latest, nil
}

func (r *fakeRepo) CreatePatient(_ context.Context, p *models.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ProtocolNumber != nil && r.protocolTaken(*p.ProtocolNumber) {
		return &pgconn.PgError{Code: "23505", ConstraintName: "idx_patients_protocol_number"}
	}
	cp := *p
	r.patients[p.ID] = &cp
	return nil
}

func (r *fakeRepo) AssignProtocol(_ context.Context, id uuid.UUID, protocol string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.patients[id]
	if !ok || p.ProtocolNumber != nil {
		return false, nil
	}
	if r.protocolTaken(protocol) {
		return false, &pgconn.PgError{Code: "23505"}
	}
	p.ProtocolNumber = &protocol
	return true, nil
}

func (r *fakeRepo) ListWithoutProtocol(_ context.Context, limit int) ([]models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Patient
	for _, p := range r.patients {
		if p.ProtocolNumber == nil {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) GetPatientForNutritionist(_ context.Context, patientID, nutritionistID uuid.UUID) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.patients[patientID]
	if !ok || p.NutritionistID != nutritionistID {
		return nil, httperr.ErrBusiness(httperr.CodePatientNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) ListPatients(_ context.Context, nutritionistID uuid.UUID) ([]models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Patient
	for _, p := range r.patients {
		if p.NutritionistID == nutritionistID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateFeatures(_ context.Context, id uuid.UUID, f models.FeatureFlags) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.patients[id]
	if !ok {
		return httperr.ErrBusiness(httperr.CodePatientNotFound)
	}
	p.Features = f
	return nil
}

func (r *fakeRepo) addLegacy(nutritionistID uuid.UUID, createdAt time.Time) *models.Patient {
	p := &models.Patient{ID: uuid.New(), NutritionistID: nutritionistID, Name: "legacy", CreatedAt: createdAt}
	r.patients[p.ID] = p
	return p
}
