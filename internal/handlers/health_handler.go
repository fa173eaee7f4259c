package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Pinger is the interface that wraps the database liveness check
type Pinger interface {
	// PingContext verifies the database connection is alive
	PingContext(ctx context.Context) error
}

const healthPingTimeout = 2 * time.Second

// HealthHandler handles the welcome and health check endpoints
type HealthHandler struct {
	BaseHandler
	db Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:          db,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers the welcome and health routes
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Welcome)
	r.Get("/health", h.Health)
}

// Welcome handles GET /
// @Summary Welcome message
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *HealthHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the DinoLearn API"})
}

// Health handles GET /health
// @Summary Health check
// @Description Report whether the service can reach its database
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.Logger.Warn("database ping failed", zap.Error(err))
		h.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "unreachable"})
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": "connected"})
}
