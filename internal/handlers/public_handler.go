package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httpresp"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
)

type nutritionistReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Nutritionist, error)
}

// PublicHandler answers the patient app without a nutritionist token.
type PublicHandler struct {
	nutritionists nutritionistReader
}

func NewPublicHandler(nutritionists nutritionistReader) *PublicHandler {
	return &PublicHandler{nutritionists: nutritionists}
}

type PublicNutritionistDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Timezone string    `json:"timezone"`
}

// GET /api/public/nutritionists/:id
func (h *PublicHandler) GetNutritionist(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	n, err := h.nutritionists.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, PublicNutritionistDTO{
		ID:       n.ID,
		Name:     n.Name,
		Timezone: n.Timezone,
	})
}
