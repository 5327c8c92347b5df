package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/appointment"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httpresp"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/middleware"
)

type availabilityReader interface {
	Execute(ctx context.Context, nutritionistID uuid.UUID) (domain.Availability, error)
}

type availabilityWriter interface {
	Execute(ctx context.Context, nutritionistID uuid.UUID, av domain.Availability) (domain.Availability, error)
}

type slotsQuery interface {
	Execute(ctx context.Context, nutritionistID uuid.UUID, date string) ([]domain.TimeSlot, error)
}

type AvailabilityHandler struct {
	get    availabilityReader
	update availabilityWriter
	slots  slotsQuery
}

func NewAvailabilityHandler(
	get availabilityReader,
	update availabilityWriter,
	slots slotsQuery,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		get:    get,
		update: update,
		slots:  slots,
	}
}

// DayConfig is one weekday of the template on the wire.
type DayConfig struct {
	Weekday     *int               `json:"weekday" binding:"required,min=0,max=6"`
	IsAvailable bool               `json:"is_available"`
	Slots       []domain.TimeRange `json:"slots"`
	Break       *domain.TimeRange  `json:"break"`
}

type AvailabilityUpdateRequest struct {
	Days []DayConfig `json:"days" binding:"required,dive"`
}

func toDayConfigs(av domain.Availability) []DayConfig {
	out := make([]DayConfig, 0, len(av))
	for i, d := range av {
		wd := i
		slots := d.Slots
		if slots == nil {
			slots = []domain.TimeRange{}
		}
		out = append(out, DayConfig{
			Weekday:     &wd,
			IsAvailable: d.IsAvailable,
			Slots:       slots,
			Break:       d.Break,
		})
	}
	return out
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	av, err := h.get.Execute(c.Request.Context(), middleware.NutritionistID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"days": toDayConfigs(av)})
}

// Update replaces the template. Weekdays missing from the body become unavailable.
func (h *AvailabilityHandler) Update(c *gin.Context) {
	var req AvailabilityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	av := domain.NewAvailability()
	seen := make(map[int]bool)
	for _, d := range req.Days {
		wd := *d.Weekday
		if seen[wd] {
			httperr.FromError(c, httperr.Input("days", fmt.Sprintf("weekday %d repeated", wd)))
			return
		}
		seen[wd] = true

		av[wd] = domain.DayAvailability{
			Weekday:     time.Weekday(wd),
			IsAvailable: d.IsAvailable,
			Slots:       d.Slots,
			Break:       d.Break,
		}
	}

	saved, err := h.update.Execute(c.Request.Context(), middleware.NutritionistID(c), av)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"days": toDayConfigs(saved)})
}

// ======================================================
// SLOTS
// ======================================================

func (h *AvailabilityHandler) MySlots(c *gin.Context) {
	h.writeSlots(c, middleware.NutritionistID(c))
}

// PublicSlots serves the patient app, which only knows the nutritionist id.
func (h *AvailabilityHandler) PublicSlots(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	h.writeSlots(c, id)
}

func (h *AvailabilityHandler) writeSlots(c *gin.Context, nutritionistID uuid.UUID) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), nutritionistID, dateStr)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}
