package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/appointment"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/dto"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	nutritionistID uuid.UUID,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 {
		return nil, httperr.Input("month", "expected 1-12")
	}

	bounds, err := domain.MonthBounds(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
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
