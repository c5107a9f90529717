package handlers

import (
	"net/http"
	"strings"

	"github.com/lifetrack-health/lifetrack-backend/internal/config"
	"github.com/lifetrack-health/lifetrack-backend/internal/services"
	"github.com/lifetrack-health/lifetrack-backend/internal/store"
)

// Handler carries the wired dependencies for all HTTP handlers. Everything is
// injected at startup; no package-level state.
type Handler struct {
	cfg      *config.Config
	users    *store.UserStore
	records  *store.RecordStore
	invoices *store.InvoiceStore
	sessions *services.SessionStore
	reports  *services.ReportService
	mailer   *services.Mailer
}

func New(cfg *config.Config, users *store.UserStore, records *store.RecordStore,
	invoices *store.InvoiceStore, sessions *services.SessionStore,
	reports *services.ReportService, mailer *services.Mailer) *Handler {
	return &Handler{
		cfg:      cfg,
		users:    users,
		records:  records,
		invoices: invoices,
		sessions: sessions,
		reports:  reports,
		mailer:   mailer,
	}
}

// bearerToken extracts the session token from the Authorization header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(auth, prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}

// requireAuth validates the session and returns its payload. On failure it
// writes a generic 401 and returns ok=false.
func (h *Handler) requireAuth(w http.ResponseWriter, r *http.Request) (*services.SessionData, bool) {
	sess, ok, err := h.sessions.Validate(r.Context(), bearerToken(r))
	if err != nil || !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return sess, true
}
