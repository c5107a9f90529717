package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/lifetrack-health/lifetrack-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux, h *handlers.Handler) {
	// Auth routes
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)
	r.Post("/api/auth/logout", h.Logout)
	r.Get("/api/auth/me", h.Me)

	// Measurement routes (all require an authenticated session)
	r.Post("/api/bmi", h.SubmitBMI)
	r.Get("/api/dashboard", h.Dashboard)
	r.Get("/api/records/{recordID}", h.GetRecord)
	r.Post("/api/records/{recordID}/email", h.EmailRecord)

	// Invoice routes
	r.Post("/api/records/{recordID}/invoice", h.CreateInvoice)
	r.Post("/api/invoices/{invoiceID}/email", h.EmailInvoice)
	r.Get("/api/invoices/{invoiceID}/download", h.DownloadInvoice)
}
