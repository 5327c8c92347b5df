package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/appointment"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/observability/metrics"
)

type GetSlots struct {
	repo     domain.Repository
	metrics  *metrics.SchedulingMetrics
	settings Settings
}

func NewGetSlots(
	repo domain.Repository,
	m *metrics.SchedulingMetrics,
	settings Settings,
) *GetSlots {
	return &GetSlots{
		repo:     repo,
		metrics:  m,
		settings: settings,
	}
}

// Execute lists the free slots of date ("YYYY-MM-DD", a calendar day in the
// nutritionist's timezone).
func (uc *GetSlots) Execute(
	ctx context.Context,
	nutritionistID uuid.UUID,
	date string,
) ([]domain.TimeSlot, error) {

	n, err := uc.repo.GetNutritionistByID(ctx, nutritionistID)
	if err != nil {
		return nil, err
	}

	loc := location(n)

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, httperr.Input("date", "expected YYYY-MM-DD")
	}

	rows, err := uc.repo.GetAvailability(ctx, nutritionistID)
	if err != nil {
		return nil, err
	}

	av, err := domain.AvailabilityFromModels(rows)
	if err != nil {
		return nil, err
	}

	// Anything overlapping the local calendar day, including a late
	// appointment of the previous day running past midnight.
	apps, err := uc.repo.ListActiveOverlapping(
		ctx,
		nutritionistID,
		day,
		day.AddDate(0, 0, 1),
	)
	if err != nil {
		return nil, err
	}

	slots, err := domain.CalculateSlots(
		av,
		day,
		uc.settings.increment(n),
		domain.BookedFromModels(apps),
	)
	if err != nil {
		return nil, err
	}

	uc.metrics.ObserveSlots(len(slots))
	return slots, nil
}
