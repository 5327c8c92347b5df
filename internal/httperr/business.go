package httperr

import "errors"

// Business codes shared between use cases and handlers.
const (
	CodeTimeConflict         = "time_conflict"
	CodeInvalidState         = "invalid_state"
	CodeOutsideAvailability  = "outside_availability"
	CodeAppointmentNotFound  = "appointment_not_found"
	CodePatientNotFound      = "patient_not_found"
	CodeNutritionistNotFound = "nutritionist_not_found"
	CodeSequenceExhausted    = "protocol_sequence_exhausted"
	CodeProtocolBusy         = "protocol_assignment_busy"
	CodeAppointmentInPast    = "appointment_in_past"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
