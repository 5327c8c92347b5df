package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	patientDomain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/patient"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httpresp"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/middleware"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
	ucPatient "github.com/IsacFSC/nutri-mobile-sub001/internal/usecase/patient"
)

type patientCreator interface {
	Execute(ctx context.Context, in ucPatient.CreatePatientInput) (*models.Patient, error)
}

type patientLister interface {
	Execute(ctx context.Context, nutritionistID uuid.UUID) ([]models.Patient, error)
}

type patientGetter interface {
	Execute(ctx context.Context, nutritionistID, patientID uuid.UUID) (*models.Patient, error)
}

type featuresUpdater interface {
	Execute(ctx context.Context, nutritionistID, patientID uuid.UUID, changes map[string]bool) (*models.Patient, error)
}

type PatientHandler struct {
	create   patientCreator
	list     patientLister
	get      patientGetter
	features featuresUpdater
}

func NewPatientHandler(
	create patientCreator,
	list patientLister,
	get patientGetter,
	features featuresUpdater,
) *PatientHandler {
	return &PatientHandler{
		create:   create,
		list:     list,
		get:      get,
		features: features,
	}
}

type CreatePatientRequest struct {
	Name     string          `json:"name" binding:"required,max=100"`
	Phone    string          `json:"phone" binding:"max=20"`
	Email    string          `json:"email" binding:"max=100"`
	PlanType string          `json:"plan_type"`
	Features map[string]bool `json:"features"`
}

type UpdateFeaturesRequest struct {
	Features map[string]bool `json:"features" binding:"required"`
}

// FeaturesResponse carries every flag, set or not, keyed like the request.
type FeaturesResponse struct {
	PatientID uuid.UUID       `json:"patient_id"`
	PlanType  string          `json:"plan_type"`
	Features  map[string]bool `json:"features"`
}

// ======================================================
// CREATE
// ======================================================

func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	p, err := h.create.Execute(c.Request.Context(), ucPatient.CreatePatientInput{
		NutritionistID: middleware.NutritionistID(c),
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		PlanType:       req.PlanType,
		Features:       req.Features,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, p)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.list.Execute(c.Request.Context(), middleware.NutritionistID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	if query != "" {
		filtered := patients[:0]
		for _, p := range patients {
			protocol := ""
			if p.ProtocolNumber != nil {
				protocol = strings.ToLower(*p.ProtocolNumber)
			}
			if strings.Contains(strings.ToLower(p.Name), query) ||
				strings.Contains(strings.ToLower(p.Email), query) ||
				strings.Contains(protocol, query) {
				filtered = append(filtered, p)
			}
		}
		patients = filtered
	}

	httpresp.List(c, patients)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	p, err := h.get.Execute(c.Request.Context(), middleware.NutritionistID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, p)
}

// ======================================================
// FEATURES
// ======================================================

func (h *PatientHandler) UpdateFeatures(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateFeaturesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	p, err := h.features.Execute(c.Request.Context(), middleware.NutritionistID(c), id, req.Features)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, FeaturesResponse{
		PatientID: p.ID,
		PlanType:  p.PlanType,
		Features:  patientDomain.FeaturesToMap(p.Features),
	})
}
