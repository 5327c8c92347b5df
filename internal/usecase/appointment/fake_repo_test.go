package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/appointment"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
)

type fakeRepo struct {
	mu           sync.Mutex
	nutritionist map[uuid.UUID]*models.Nutritionist
	availability map[uuid.UUID][]models.DayAvailability
	patients     map[uuid.UUID]*models.Patient
	appointments map[uuid.UUID]*models.Appointment

	lastPeriod [2]time.Time

	// beforeUpdate runs between the read and the status write.
	beforeUpdate func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		nutritionist: map[uuid.UUID]*models.Nutritionist{},
		availability: map[uuid.UUID][]models.DayAvailability{},
		patients:     map[uuid.UUID]*models.Patient{},
		appointments: map[uuid.UUID]*models.Appointment{},
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

func (r *fakeRepo) addNutritionist(tz string, windows ...[2]string) *models.Nutritionist {
	n := &models.Nutritionist{ID: uuid.New(), Name: "Ana", Timezone: tz, SlotDurationMin: 60}
	r.nutritionist[n.ID] = n

	// Monday to Friday share the same windows.
	var days []models.DayAvailability
	for wd := 1; wd <= 5; wd++ {
		d := models.DayAvailability{NutritionistID: n.ID, Weekday: wd, IsAvailable: true}
		for _, w := range windows {
			d.Windows = append(d.Windows, models.AvailabilityWindow{Start: w[0], End: w[1]})
		}
		days = append(days, d)
	}
	r.availability[n.ID] = days
	return n
}

func (r *fakeRepo) addPatient(nutritionistID uuid.UUID) *models.Patient {
	protocol := "NUTRI-202503-0001"
	p := &models.Patient{ID: uuid.New(), NutritionistID: nutritionistID, Name: "Bruno", ProtocolNumber: &protocol}
	r.patients[p.ID] = p
	return p
}

func (r *fakeRepo) addAppointment(n *models.Nutritionist, p *models.Patient, at time.Time, minutes int, status domain.Status) *models.Appointment {
	ap := &models.Appointment{
		ID:             uuid.New(),
		NutritionistID: n.ID,
		PatientID:      p.ID,
		Patient:        *p,
		DateTime:       at,
		Duration:       minutes,
		Status:         string(status),
		Type:           string(domain.TypeOnline),
	}
	r.appointments[ap.ID] = ap
	return ap
}

func (r *fakeRepo) GetNutritionistByID(_ context.Context, id uuid.UUID) (*models.Nutritionist, error) {
	n, ok := r.nutritionist[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNutritionistNotFound)
	}
	cp := *n
	return &cp, nil
}

func (r *fakeRepo) GetAvailability(_ context.Context, id uuid.UUID) ([]models.DayAvailability, error) {
	return r.availability[id], nil
}

func (r *fakeRepo) ReplaceAvailability(_ context.Context, id uuid.UUID, days []models.DayAvailability) error {
	r.availability[id] = days
	return nil
}

func (r *fakeRepo) GetPatientForNutritionist(_ context.Context, patientID, nutritionistID uuid.UUID) (*models.Patient, error) {
	p, ok := r.patients[patientID]
	if !ok || p.NutritionistID != nutritionistID {
		return nil, httperr.ErrBusiness(httperr.CodePatientNotFound)
	}
	return p, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.appointments {
		if other.NutritionistID != ap.NutritionistID || !domain.Status(other.Status).Active() {
			continue
		}
		if other.DateTime.Before(ap.EndTime()) && ap.DateTime.Before(other.EndTime()) {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}
	}
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) GetAppointmentForNutritionist(_ context.Context, id, nutritionistID uuid.UUID) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok || ap.NutritionistID != nutritionistID {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	cp := *ap
	return &cp, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, ap *models.Appointment, from domain.Status) error {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}

	stored, ok := r.appointments[ap.ID]
	if !ok || stored.NutritionistID != ap.NutritionistID || stored.Status != string(from) {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) ListActiveOverlapping(_ context.Context, nutritionistID uuid.UUID, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.NutritionistID == nutritionistID && domain.Status(ap.Status).Active() &&
			ap.DateTime.Before(end) && start.Before(ap.EndTime()) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, nutritionistID uuid.UUID, start, end time.Time) ([]models.Appointment, error) {
	r.lastPeriod = [2]time.Time{start, end}

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.NutritionistID == nutritionistID && !ap.DateTime.Before(start) && ap.DateTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}
