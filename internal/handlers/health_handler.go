package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PingFunc checks one dependency.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	database PingFunc
	redis    PingFunc // nil when the protocol lock is process-local
	env      string
}

func NewHealthHandler(database, redis PingFunc, env string) *HealthHandler {
	return &HealthHandler{
		database: database,
		redis:    redis,
		env:      env,
	}
}

type ReadinessResponse struct {
	Status       string            `json:"status"`
	Env          string            `json:"env,omitempty"`
	Dependencies map[string]string `json:"dependencies"`
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "env": h.env})
}

// Readiness fails when Postgres is down. A Redis outage only degrades
// protocol assignment, so it is reported without failing the check.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	deps := map[string]string{"postgres": "ok"}
	status := "ok"

	if err := ping(ctx, h.database); err != nil {
		deps["postgres"] = "down"
		status = "error"
	}

	if h.redis != nil {
		deps["redis"] = "ok"
		if err := ping(ctx, h.redis); err != nil {
			deps["redis"] = "down"
			if status == "ok" {
				status = "degraded"
			}
		}
	}

	code := http.StatusOK
	if status == "error" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, ReadinessResponse{
		Status:       status,
		Env:          h.env,
		Dependencies: deps,
	})
}

func ping(ctx context.Context, fn PingFunc) error {
	pctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return fn(pctx)
}
