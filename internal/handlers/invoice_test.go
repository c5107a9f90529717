package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// A record belonging to another user must come back 404, never billed: the
// ownership check runs before any invoice insert.
func TestCreateInvoiceForeignRecord(t *testing.T) {
	h, mock := newTestHandler(t)
	token := loginSession(t, h)

	mock.ExpectQuery("FROM bmi_records").
		WithArgs(int64(3), int64(7)).
		WillReturnError(sql.ErrNoRows)

	r := chi.NewRouter()
	r.Post("/api/records/{recordID}/invoice", h.CreateInvoice)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/records/3/invoice", "", token))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Record not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInvoiceRequiresAuth(t *testing.T) {
	h, _ := newTestHandler(t)

	r := chi.NewRouter()
	r.Post("/api/records/{recordID}/invoice", h.CreateInvoice)

	req := httptest.NewRequest(http.MethodPost, "/api/records/3/invoice", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDownloadInvoiceForeignOwned(t *testing.T) {
	h, mock := newTestHandler(t)
	token := loginSession(t, h)

	mock.ExpectQuery("JOIN bmi_records").
		WithArgs(int64(11), int64(7)).
		WillReturnError(sql.ErrNoRows)

	r := chi.NewRouter()
	r.Get("/api/invoices/{invoiceID}/download", h.DownloadInvoice)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/invoices/11/download", "", token))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invoice not found")
}
