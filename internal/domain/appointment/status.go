package appointment

import (
	"strings"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusNoShow     Status = "NO_SHOW"
)

// InactiveStatuses never occupy the agenda.
var InactiveStatuses = []Status{StatusCancelled, StatusNoShow}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusScheduled, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return st, nil
	}
	return "", httperr.Input("status", "unknown appointment status "+s)
}

// Active reports whether an appointment in this status still holds its time.
func (s Status) Active() bool {
	return s != StatusCancelled && s != StatusNoShow
}

func InitialStatus() Status {
	return StatusScheduled
}

// ===============================
// Appointment Type
// ===============================

type Type string

const (
	TypeOnline     Type = "ONLINE"
	TypePresencial Type = "PRESENCIAL"
	TypeRetorno    Type = "RETORNO"
)

// ParseType defaults an empty value to ONLINE.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case "":
		return TypeOnline, nil
	case TypeOnline, TypePresencial, TypeRetorno:
		return t, nil
	}
	return "", httperr.Input("type", "unknown appointment type "+s)
}

// ===============================
// Transitions
// ===============================

var allowedFrom = map[Status][]Status{
	StatusConfirmed:  {StatusScheduled},
	StatusInProgress: {StatusScheduled, StatusConfirmed},
	StatusCompleted:  {StatusScheduled, StatusConfirmed, StatusInProgress},
	StatusCancelled:  {StatusScheduled, StatusConfirmed},
	StatusNoShow:     {StatusScheduled, StatusConfirmed},
}

// CanTransition reports whether an appointment may move from current to next.
func CanTransition(current, next Status) error {
	for _, from := range allowedFrom[next] {
		if from == current {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeInvalidState)
}
