package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/audit"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httpresp"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/middleware"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
)

type auditReader interface {
	List(ctx context.Context, nutritionistID uuid.UUID, f audit.Filter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs auditReader
}

func NewAuditLogsHandler(logs auditReader) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// GET /api/me/audit-logs?action=&entity=&from=YYYY-MM-DD&to=YYYY-MM-DD&page=&limit=
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Data inicial inválida.")
			return
		}
		f.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Data final inválida.")
			return
		}
		// inclusivo: até o fim do dia informado
		t = t.AddDate(0, 0, 1)
		f.To = &t
	}

	logs, total, err := h.logs.List(c.Request.Context(), middleware.NutritionistID(c), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
