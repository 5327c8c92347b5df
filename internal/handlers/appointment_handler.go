package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/appointment"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/dto"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httpresp"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/middleware"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
	ucAppointment "github.com/IsacFSC/nutri-mobile-sub001/internal/usecase/appointment"
)

// ======================================================
// PORTS
// ======================================================

type appointmentCreator interface {
	Execute(ctx context.Context, in ucAppointment.CreateAppointmentInput) (*models.Appointment, error)
}

type appointmentStatusChanger interface {
	Execute(ctx context.Context, nutritionistID, appointmentID uuid.UUID, next domain.Status) (*models.Appointment, error)
}

type appointmentsByDate interface {
	Execute(ctx context.Context, nutritionistID uuid.UUID, date string) ([]dto.AppointmentListDTO, error)
}

type appointmentsByMonth interface {
	Execute(ctx context.Context, nutritionistID uuid.UUID, year, month int) ([]dto.AppointmentListDTO, error)
}

type dashboardQuery interface {
	Execute(ctx context.Context, nutritionistID uuid.UUID) (*dto.DashboardDTO, error)
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create    appointmentCreator
	status    appointmentStatusChanger
	byDate    appointmentsByDate
	byMonth   appointmentsByMonth
	dashboard dashboardQuery
}

func NewAppointmentHandler(
	create appointmentCreator,
	status appointmentStatusChanger,
	byDate appointmentsByDate,
	byMonth appointmentsByMonth,
	dashboard dashboardQuery,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:    create,
		status:    status,
		byDate:    byDate,
		byMonth:   byMonth,
		dashboard: dashboard,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientID string `json:"patient_id" binding:"required"`

	// date_time (RFC 3339) or date + time in the nutritionist's timezone.
	DateTime *time.Time `json:"date_time"`
	Date     string     `json:"date"`
	Time     string     `json:"time"`

	Duration int    `json:"duration" binding:"omitempty,min=5,max=480"`
	Type     string `json:"type"`
	Notes    string `json:"notes" binding:"max=255"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	nutritionistID := middleware.NutritionistID(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		httperr.BadRequest(c, "invalid_patient_id", "Paciente inválido.")
		return
	}

	in := ucAppointment.CreateAppointmentInput{
		NutritionistID: nutritionistID,
		PatientID:      patientID,
		Date:           req.Date,
		Time:           req.Time,
		Duration:       req.Duration,
		Type:           req.Type,
		Notes:          req.Notes,
	}
	if req.DateTime != nil {
		in.DateTime = *req.DateTime
	}

	ap, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// STATUS
// ======================================================

// Transition returns a handler moving the appointment in :id to next.
func (h *AppointmentHandler) Transition(next domain.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.changeStatus(c, next)
	}
}

// ChangeStatus reads the target status from the body, e.g. {"status": "no_show"}.
func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	next, err := domain.ParseStatus(req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.changeStatus(c, next)
}

func (h *AppointmentHandler) changeStatus(c *gin.Context, next domain.Status) {
	nutritionistID := middleware.NutritionistID(c)

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), nutritionistID, id, next)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	nutritionistID := middleware.NutritionistID(c)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	out, err := h.byDate.Execute(c.Request.Context(), nutritionistID, dateStr)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	nutritionistID := middleware.NutritionistID(c)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_month", "Informe year e month.")
		return
	}

	out, err := h.byMonth.Execute(c.Request.Context(), nutritionistID, year, month)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *AppointmentHandler) Dashboard(c *gin.Context) {
	nutritionistID := middleware.NutritionistID(c)

	out, err := h.dashboard.Execute(c.Request.Context(), nutritionistID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, out)
}
