package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/appointment"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/dto"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lists the appointments starting on the UTC day of date ("YYYY-MM-DD").
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	nutritionistID uuid.UUID,
	date string,
) ([]dto.AppointmentListDTO, error) {

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, httperr.Input("date", "expected YYYY-MM-DD")
	}

	bounds, err := domain.DayBounds(day)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		nutritionistID,
		bounds.Start,
		bounds.End,
	)
	if err != nil {
		return nil, err
	}

	return dto.AppointmentList(appointments), nil
}
