package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

var businessStatus = map[string]int{
	CodeAppointmentNotFound:  http.StatusNotFound,
	CodePatientNotFound:      http.StatusNotFound,
	CodeNutritionistNotFound: http.StatusNotFound,
	CodeTimeConflict:         http.StatusConflict,
	CodeInvalidState:         http.StatusConflict,
	CodeProtocolBusy:         http.StatusConflict,
	CodeSequenceExhausted:    http.StatusUnprocessableEntity,
}

// StatusFor maps an error from the domain or use case layers to an HTTP status and code.
func StatusFor(err error) (int, string) {
	var (
		be  BusinessError
		ve  *ValidationError
		ie  *InputError
		lke *LookupError
	)

	switch {
	case errors.As(err, &ie):
		return http.StatusBadRequest, "invalid_input"
	case errors.As(err, &ve):
		return http.StatusBadRequest, "validation_failed"
	case errors.As(err, &be):
		if status, ok := businessStatus[be.Code]; ok {
			return status, be.Code
		}
		return http.StatusBadRequest, be.Code
	case errors.As(err, &lke):
		return http.StatusServiceUnavailable, "lookup_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// FromError writes the JSON error for err. Internal details are not echoed for 5xx.
func FromError(c *gin.Context, err error) {
	status, code := StatusFor(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	Write(c, status, code, message)
}
