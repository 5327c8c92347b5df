package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httpresp"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/middleware"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/timezone"
)

type nutritionistStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Nutritionist, error)
	UpdateProfile(ctx context.Context, n *models.Nutritionist) error
}

type MeHandler struct {
	store nutritionistStore
}

func NewMeHandler(store nutritionistStore) *MeHandler {
	return &MeHandler{store: store}
}

type UpdateMeRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone           *string `json:"phone" binding:"omitempty,max=20"`
	Timezone        *string `json:"timezone"`
	SlotDurationMin *int    `json:"slot_duration_min" binding:"omitempty,min=0,max=480"`
}

// ======================================================
// GET /api/me
// ======================================================

func (h *MeHandler) GetMe(c *gin.Context) {
	n, err := h.store.GetByID(c.Request.Context(), middleware.NutritionistID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, n)
}

// ======================================================
// PUT /api/me
// ======================================================

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	n, err := h.store.GetByID(c.Request.Context(), middleware.NutritionistID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if req.Name != nil {
		n.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		n.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Timezone != nil {
		tz := strings.TrimSpace(*req.Timezone)
		if !timezone.IsValid(tz) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		n.Timezone = tz
	}
	if req.SlotDurationMin != nil {
		n.SlotDurationMin = *req.SlotDurationMin
	}

	if err := h.store.UpdateProfile(c.Request.Context(), n); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, n)
}
