package handlers

import (
	"context"
	"net/http"
	"time"

	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/store"
	"ENW_BACK-END/internal/utils"
)

// HealthHandler handles health check related requests
type HealthHandler struct {
	store       store.Store
	environment string
	started     time.Time
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(s store.Store, environment string) *HealthHandler {
	return &HealthHandler{store: s, environment: environment, started: time.Now()}
}

// HealthCheck reports process health without touching storage
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} dto.ServiceHealthResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.ServiceHealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC().Format(time.RFC3339Nano),
		Uptime:      time.Since(h.started).Seconds(),
		Environment: h.environment,
	})
}

// LivenessCheck handles process liveness check
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /livez [get]
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "alive"})
}

// ReadinessCheck handles readiness check (includes storage connectivity)
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		utils.WriteJSONResponse(w, http.StatusServiceUnavailable, dto.HealthResponse{
			Status:  "degraded",
			Details: map[string]any{"db": err.Error()},
		})
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status:  "ready",
		Details: map[string]any{"db": "ok"},
	})
}
