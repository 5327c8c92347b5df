package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/appointment"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/dto"
)

// GetDashboard summarises today's agenda. "Today" is the UTC day of the clock.
type GetDashboard struct {
	repo     domain.Repository
	settings Settings
}

func NewGetDashboard(repo domain.Repository, settings Settings) *GetDashboard {
	return &GetDashboard{repo: repo, settings: settings}
}

func (uc *GetDashboard) Execute(
	ctx context.Context,
	nutritionistID uuid.UUID,
) (*dto.DashboardDTO, error) {

	today, err := domain.DayBounds(uc.settings.now())
	if err != nil {
		return nil, err
	}

	apps, err := uc.repo.ListAppointmentsForPeriod(ctx, nutritionistID, today.Start, today.End)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int)
	for _, ap := range apps {
		byStatus[ap.Status]++
	}

	return &dto.DashboardDTO{
		DayStart:     today.Start,
		DayEnd:       today.End,
		ActiveToday:  domain.CountActive(today, domain.BookedFromModels(apps)),
		TotalToday:   len(apps),
		ByStatus:     byStatus,
		Appointments: dto.AppointmentList(apps),
	}, nil
}
