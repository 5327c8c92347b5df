package patient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/infra/lock"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/observability/metrics"
	"github.com/IsacFSC/nutri-mobile-sub001/pkg/logging"
)

var quiet = logging.NewWithWriter("error", &bytes.Buffer{})

func clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newAssigner(repo *fakeRepo, locker lock.Locker) *ProtocolAssigner {
	return NewProtocolAssigner(repo, locker, metrics.NewSchedulingMetrics(prometheus.NewRegistry()), quiet, "NUTRI", 3)
}

func TestCreatePatient_SequenceAcrossMonths(t *testing.T) {
	repo := newFakeRepo()
	nid := uuid.New()
	assigner := newAssigner(repo, nil)

	jan := NewCreatePatient(repo, assigner, nil, nil, clock(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)))
	for i := 0; i < 42; i++ {
		_, err := jan.Execute(context.Background(), CreatePatientInput{NutritionistID: nid, Name: fmt.Sprintf("p%d", i)})
		require.NoError(t, err)
	}

	p, err := jan.Execute(context.Background(), CreatePatientInput{NutritionistID: nid, Name: "Carla"})
	require.NoError(t, err)
	assert.Equal(t, "NUTRI-202501-0043", *p.ProtocolNumber)

	feb := NewCreatePatient(repo, assigner, nil, nil, clock(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
	p, err = feb.Execute(context.Background(), CreatePatientInput{NutritionistID: nid, Name: "Davi"})
	require.NoError(t, err)
	assert.Equal(t, "NUTRI-202502-0001", *p.ProtocolNumber)
}

func TestCreatePatient_DefaultsAndValidation(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreatePatient(repo, newAssigner(repo, nil), nil, nil, nil)
	nid := uuid.New()

	p, err := uc.Execute(context.Background(), CreatePatientInput{
		NutritionistID: nid,
		Name:           "  Elisa ",
		Email:          "Elisa@Mail.com",
		PlanType:       "basic",
		Features:       map[string]bool{"chat": true},
	})
	require.NoError(t, err)
	assert.Equal(t, "Elisa", p.Name)
	assert.Equal(t, "elisa@mail.com", p.Email)
	assert.Equal(t, "BASIC", p.PlanType)
	assert.True(t, p.Features.Chat)
	assert.True(t, p.Features.MealPlan)
	assert.False(t, p.Features.VideoCall)

	var ie *httperr.InputError
	_, err = uc.Execute(context.Background(), CreatePatientInput{NutritionistID: nid})
	assert.True(t, errors.As(err, &ie))

	_, err = uc.Execute(context.Background(), CreatePatientInput{NutritionistID: nid, Name: "x", Email: "nope"})
	assert.True(t, errors.As(err, &ie))

	_, err = uc.Execute(context.Background(), CreatePatientInput{NutritionistID: nid, Name: "x", Features: map[string]bool{"teleport": true}})
	assert.True(t, errors.As(err, &ie))

	assert.Len(t, repo.patients, 1)
}

func TestCreatePatient_RetriesOnUniqueViolation(t *testing.T) {
	repo := newFakeRepo()
	now := clock(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC))
	reg := prometheus.NewRegistry()
	m := metrics.NewSchedulingMetrics(reg)
	assigner := NewProtocolAssigner(repo, nil, m, quiet, "NUTRI", 3)
	uc := NewCreatePatient(repo, assigner, nil, m, now)

	_, err := uc.Execute(context.Background(), CreatePatientInput{NutritionistID: uuid.New(), Name: "first"})
	require.NoError(t, err)

	// Next lookup misses the first patient, so 0001 collides once.
	repo.staleLatest = 1
	p, err := uc.Execute(context.Background(), CreatePatientInput{NutritionistID: uuid.New(), Name: "second"})

	require.NoError(t, err)
	assert.Equal(t, "NUTRI-202501-0002", *p.ProtocolNumber)
}

func TestCreatePatient_GivesUpAfterRetries(t *testing.T) {
	repo := newFakeRepo()
	now := clock(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC))
	uc := NewCreatePatient(repo, newAssigner(repo, nil), nil, nil, now)

	_, err := uc.Execute(context.Background(), CreatePatientInput{NutritionistID: uuid.New(), Name: "first"})
	require.NoError(t, err)

	repo.staleLatest = 10
	_, err = uc.Execute(context.Background(), CreatePatientInput{NutritionistID: uuid.New(), Name: "second"})

	assert.True(t, httperr.IsBusiness(err, httperr.CodeProtocolBusy))
}

func TestCreatePatient_LookupFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.latestErr = httperr.Lookup("latest protocol", errors.New("dial tcp: refused"))
	uc := NewCreatePatient(repo, newAssigner(repo, nil), nil, nil, nil)

	_, err := uc.Execute(context.Background(), CreatePatientInput{NutritionistID: uuid.New(), Name: "x"})

	var le *httperr.LookupError
	assert.True(t, errors.As(err, &le))
	assert.Empty(t, repo.patients)
}

func TestCreatePatient_ConcurrentWithRedisLock(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newFakeRepo()
	locker := lock.NewRedisLocker(client, 2*time.Second, 5*time.Second)
	uc := NewCreatePatient(repo, newAssigner(repo, locker), nil, nil, clock(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))

	const n = 12
	var wg sync.WaitGroup
	protocols := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := uc.Execute(context.Background(), CreatePatientInput{NutritionistID: uuid.New(), Name: fmt.Sprintf("p%d", i)})
			if assert.NoError(t, err) {
				protocols[i] = *p.ProtocolNumber
			}
		}(i)
	}
	wg.Wait()

	sort.Strings(protocols)
	for i, got := range protocols {
		assert.Equal(t, fmt.Sprintf("NUTRI-202503-%04d", i+1), got)
	}
}

func TestCreatePatient_LockBusy(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, mr.Set("lock:protocol:NUTRI-202503", "held"))

	repo := newFakeRepo()
	locker := lock.NewRedisLocker(client, time.Second, 50*time.Millisecond)
	uc := NewCreatePatient(repo, newAssigner(repo, locker), nil, nil, clock(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))

	_, err := uc.Execute(context.Background(), CreatePatientInput{NutritionistID: uuid.New(), Name: "x"})

	assert.True(t, httperr.IsBusiness(err, httperr.CodeProtocolBusy))
}

func TestBackfillProtocols(t *testing.T) {
	repo := newFakeRepo()
	nid := uuid.New()
	a := repo.addLegacy(nid, time.Date(2024, 11, 3, 10, 0, 0, 0, time.UTC))
	b := repo.addLegacy(nid, time.Date(2024, 11, 20, 10, 0, 0, 0, time.UTC))
	c := repo.addLegacy(nid, time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC))
	numbered := "NUTRI-202411-0005"
	repo.patients[uuid.New()] = &models.Patient{ID: uuid.New(), ProtocolNumber: &numbered}

	uc := NewBackfillProtocols(repo, newAssigner(repo, nil), nil, quiet)
	n, err := uc.Execute(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "NUTRI-202411-0006", *repo.patients[a.ID].ProtocolNumber)
	assert.Equal(t, "NUTRI-202411-0007", *repo.patients[b.ID].ProtocolNumber)
	assert.Equal(t, "NUTRI-202412-0001", *repo.patients[c.ID].ProtocolNumber)

	again, err := uc.Execute(context.Background(), 2)
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestUpdateFeatures(t *testing.T) {
	repo := newFakeRepo()
	nid := uuid.New()
	uc := NewCreatePatient(repo, newAssigner(repo, nil), nil, nil, nil)
	p, err := uc.Execute(context.Background(), CreatePatientInput{NutritionistID: nid, Name: "Fábio"})
	require.NoError(t, err)
	require.False(t, p.Features.VideoCall)

	updated, err := NewUpdateFeatures(repo, nil).Execute(context.Background(), nid, p.ID, map[string]bool{"videoCall": true})
	require.NoError(t, err)
	assert.True(t, updated.Features.VideoCall)
	assert.True(t, repo.patients[p.ID].Features.VideoCall)
	assert.Equal(t, *p.ProtocolNumber, *repo.patients[p.ID].ProtocolNumber)

	_, err = NewUpdateFeatures(repo, nil).Execute(context.Background(), uuid.New(), p.ID, map[string]bool{"chat": true})
	assert.True(t, httperr.IsBusiness(err, httperr.CodePatientNotFound))
}

func TestQueries(t *testing.T) {
	repo := newFakeRepo()
	nid := uuid.New()
	uc := NewCreatePatient(repo, newAssigner(repo, nil), nil, nil, nil)
	p, err := uc.Execute(context.Background(), CreatePatientInput{NutritionistID: nid, Name: "Gabi"})
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), CreatePatientInput{NutritionistID: uuid.New(), Name: "other"})
	require.NoError(t, err)

	list, err := NewListPatients(repo).Execute(context.Background(), nid)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := NewGetPatient(repo).Execute(context.Background(), nid, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gabi", got.Name)
}
