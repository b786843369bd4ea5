package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/propline/prop-engine/internal/services"
)

// HealthStatus is the health/readiness response shape.
type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	cache     *services.CacheService
	refresher *services.CacheRefresher
	logger    *logrus.Logger
}

// NewHealthHandler creates a health handler. cache and refresher may be
// nil when the stub data source is configured.
func NewHealthHandler(cache *services.CacheService, refresher *services.CacheRefresher, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		cache:     cache,
		refresher: refresher,
		logger:    logger,
	}
}

// GetHealth returns the basic health status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	response := HealthStatus{
		Status:    "ok",
		Service:   "prop-engine",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	if h.cache != nil {
		if h.cache.IsHealthy(c.Request.Context()) {
			response.Checks["redis"] = "ok"
		} else {
			response.Status = "unhealthy"
			response.Checks["redis"] = "failed"
		}
	} else {
		response.Checks["redis"] = "not_configured"
	}

	statusCode := http.StatusOK
	if response.Status != "ok" {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, response)
}

// GetReady returns the readiness status including background jobs.
func (h *HealthHandler) GetReady(c *gin.Context) {
	response := HealthStatus{
		Status:    "ready",
		Service:   "prop-engine",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	if h.cache != nil && !h.cache.IsHealthy(c.Request.Context()) {
		response.Status = "not_ready"
		response.Checks["redis"] = "failed"
	}

	if h.refresher != nil {
		lastRun, runs, errs := h.refresher.Stats()
		response.Checks["refresher_runs"] = strconv.Itoa(runs)
		response.Checks["refresher_errors"] = strconv.Itoa(errs)
		if !lastRun.IsZero() {
			response.Checks["refresher_last_run"] = lastRun.Format(time.RFC3339)
		}
	}

	statusCode := http.StatusOK
	if response.Status != "ready" {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, response)
}
