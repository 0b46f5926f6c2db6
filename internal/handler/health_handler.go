package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festapass/pricing-service/pkg/database"
	"github.com/festapass/pricing-service/pkg/redis"
	"github.com/festapass/pricing-service/pkg/response"
)

// HealthHandler handles health and readiness probes
type HealthHandler struct {
	db      *database.PostgresDB
	cache   *redis.Client
	version string
}

// NewHealthHandler creates a new HealthHandler. cache may be nil when the
// service runs without Redis.
func NewHealthHandler(db *database.PostgresDB, cache *redis.Client, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		cache:   cache,
		version: version,
	}
}

// Health handles GET /health - liveness probe
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(map[string]string{
		"status":  "ok",
		"version": h.version,
	}))
}

// Ready handles GET /ready - readiness probe checking downstream dependencies
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := map[string]string{}
	healthy := true

	if err := h.db.HealthCheck(c.Request.Context()); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	} else {
		checks["postgres"] = "ok"
	}

	if h.cache != nil {
		if err := h.cache.HealthCheck(c.Request.Context()); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Error("SERVICE_UNAVAILABLE", "Dependency check failed", ""))
		return
	}
	c.JSON(http.StatusOK, response.Success(checks))
}
