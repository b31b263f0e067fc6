package handlers

import (
	"net/http"

	"github.com/eshaffer321/giftpool/internal/api/dto"
)

// HealthHandler answers load balancer probes. It never touches the engine.
type HealthHandler struct {
	*Base
	service string
}

// NewHealthHandler creates a health handler reporting the given service name.
func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{Base: NewBase(nil), service: service}
}

// ServeHTTP handles GET /health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, dto.NewHealthResponse(h.service))
}
