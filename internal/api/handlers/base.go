package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/eshaffer321/giftpool/internal/api/dto"
	"github.com/eshaffer321/giftpool/internal/api/middleware"
	"github.com/eshaffer321/giftpool/internal/domain/allocator"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Base provides shared functionality for all handlers.
type Base struct {
	logger *slog.Logger
}

// NewBase creates a new base handler. A nil logger uses slog.Default.
func NewBase(logger *slog.Logger) *Base {
	if logger == nil {
		logger = slog.Default()
	}
	return &Base{logger: logger}
}

// WriteJSON writes a JSON response with the given status code.
func (b *Base) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(w http.ResponseWriter, r *http.Request, status int, err dto.APIError) {
	err.RequestID = middleware.RequestIDFromContext(r.Context())
	b.WriteJSON(w, status, err)
}

// DecodeJSON reads the request body into dst. On failure it writes a 400
// and returns false.
func (b *Base) DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		b.WriteError(w, r, http.StatusBadRequest, dto.BadRequestError(fmt.Sprintf("invalid request body: %v", err)))
		return false
	}
	return true
}

// WriteServiceError maps an engine error onto a status code and error body.
func (b *Base) WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, allocator.ErrUnsupportedPolicy):
		b.WriteError(w, r, http.StatusBadRequest, dto.UnsupportedPolicyError(err.Error()))
	case errors.Is(err, allocator.ErrInvalidInput):
		b.WriteError(w, r, http.StatusBadRequest, dto.ValidationError(err.Error()))
	case errors.Is(err, allocator.ErrPreconditionViolation):
		b.WriteError(w, r, http.StatusConflict, dto.PreconditionFailedError(err.Error()))
	default:
		b.logger.Error("request failed", "path", r.URL.Path, "error", err)
		b.WriteError(w, r, http.StatusInternalServerError, dto.InternalError())
	}
}
