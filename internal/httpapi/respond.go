package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/authsvc/internal/auth"
	"github.com/dmitrymomot/authsvc/internal/session"
	"github.com/dmitrymomot/authsvc/pkg/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps domain errors to HTTP statuses. Authentication failures
// share one uniform body regardless of cause; infrastructure failures are
// reported as such, never disguised as bad credentials.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: "email already exists"})
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrUnauthorized):
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, session.ErrStoreUnavailable):
		h.log.ErrorContext(r.Context(), "session store unavailable",
			logger.Error(err),
			logger.Component("httpapi"),
		)
		h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"})
	default:
		h.log.ErrorContext(r.Context(), "request failed",
			logger.Error(err),
			logger.Component("httpapi"),
		)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
