// Package origin is the demo origin server the client talks to: it serves
// tenant configuration documents and the auth endpoints, backed by the
// mock credential backend. Error responses carry a JSON message body in
// the shape the request pipeline's taxonomy expects.
package origin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"gatehouse/internal/auth/backend"
	"gatehouse/internal/auth/models"
	"gatehouse/internal/tenant/config"
)

// Handler serves the tenant and auth endpoints.
type Handler struct {
	backend *backend.Mock
	tenants map[string]*config.Tenant
	logger  *slog.Logger
}

// New creates a handler over the given credential backend and tenant
// directory. A nil tenants map serves the samples.
func New(b *backend.Mock, tenants map[string]*config.Tenant, logger *slog.Logger) *Handler {
	if tenants == nil {
		tenants = SampleTenants()
	}
	return &Handler{backend: b, tenants: tenants, logger: logger}
}

// Register mounts the routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/tenants/{tenantID}.json", h.HandleGetTenant)
	r.Post("/auth/login", h.HandleLogin)
	r.Get("/auth/validate", h.HandleValidate)
}

// HandleGetTenant serves one tenant configuration document.
func (h *Handler) HandleGetTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	tenant, ok := h.tenants[tenantID]
	if !ok {
		writeMessage(w, http.StatusNotFound, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}

// HandleLogin authenticates posted credentials.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.backend.Login(r.Context(), creds)
	if err != nil {
		h.logger.InfoContext(r.Context(), "login rejected",
			"tenant", creds.TenantID,
			"error", err,
		)
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleValidate revalidates a bearer token.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	res, err := h.backend.Validate(r.Context(), token)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, backend.ErrTenantRequired):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, backend.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, backend.ErrInvalidToken):
		writeMessage(w, http.StatusUnauthorized, "Session expired")
	default:
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
