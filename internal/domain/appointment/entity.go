package appointment

import (
	"time"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to next, stamping CancelledAt / CompletedAt when relevant.
func Transition(ap *models.Appointment, next Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), next); err != nil {
		return err
	}

	ap.Status = string(next)

	switch next {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return nil
}
