// Package httpapi exposes the auth service over HTTP. It owns cookie
// extraction/injection, request decoding, and status-code mapping; all
// protocol decisions live in internal/auth.
package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Handler serves the authentication endpoints.
type Handler struct {
	svc AuthService
	cfg Config
	log *slog.Logger
}

// NewHandler creates the HTTP handler for the auth service.
func NewHandler(svc AuthService, cfg Config, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{svc: svc, cfg: cfg, log: log}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if msg := validateRegister(req); msg != "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	user, err := h.svc.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email and password are required"})
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.setSessionCookie(w, token)
	h.writeJSON(w, http.StatusOK, messageResponse{Message: "login successful"})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	// An absent cookie means there is nothing to invalidate; logout still
	// succeeds so the response leaks nothing about session validity.
	token := h.sessionToken(r)

	if err := h.svc.Logout(r.Context(), token); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.clearSessionCookie(w)
	h.writeJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(r)
	if token == "" {
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		return
	}

	profile, newToken, err := h.svc.Profile(r.Context(), token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	// The token was rotated; hand the replacement to the caller.
	h.setSessionCookie(w, newToken)
	h.writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(h.cfg.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.svc.SessionTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func validateRegister(req registerRequest) string {
	switch {
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		return "a valid email is required"
	case req.Password == "":
		return "password is required"
	case req.FirstName == "":
		return "first name is required"
	case req.LastName == "":
		return "last name is required"
	default:
		return ""
	}
}
