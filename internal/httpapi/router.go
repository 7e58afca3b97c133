package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authsvc/internal/auth"
)

// AuthService is the inbound contract the HTTP layer consumes.
type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*auth.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, token string) (*auth.Profile, string, error)
	SessionTTL() time.Duration
}

// Healthcheck probes a dependency; non-nil error means unhealthy.
type Healthcheck func(context.Context) error

// Router mounts the authentication endpoints and an optional health probe.
func Router(h *Handler, checks ...Healthcheck) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Get("/me", h.profile)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		for _, check := range checks {
			if err := check(req.Context()); err != nil {
				h.log.ErrorContext(req.Context(), "healthcheck failed", "error", err)
				h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "unhealthy"})
				return
			}
		}
		h.writeJSON(w, http.StatusOK, messageResponse{Message: "ok"})
	})

	return r
}
