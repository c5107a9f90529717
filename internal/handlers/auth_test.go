package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifetrack-health/lifetrack-backend/internal/config"
	"github.com/lifetrack-health/lifetrack-backend/internal/services"
	"github.com/lifetrack-health/lifetrack-backend/internal/store"
	"github.com/lifetrack-health/lifetrack-backend/pkg/utils"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := config.Load()
	h := New(cfg,
		store.NewUserStore(db),
		store.NewRecordStore(db),
		store.NewInvoiceStore(db),
		services.NewSessionStore(rdb),
		services.NewReportService(t.TempDir()),
		services.NewMailer("smtp.gmail.com", 465, "", ""))
	return h, mock
}

// loginSession issues a real session token for the fixed test identity.
func loginSession(t *testing.T, h *Handler) string {
	t.Helper()
	token, err := h.sessions.Create(context.Background(), services.SessionData{
		UserID: 7, Name: "Alice", Email: "alice@example.com",
	})
	require.NoError(t, err)
	return token
}

func authedRequest(method, target, body, token string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func postJSON(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeValidation(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var resp struct {
		Success bool     `json:"success"`
		Errors  []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	return resp.Errors
}

func TestRegisterRejectsInvalidBody(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postJSON(h.Register, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterCollectsValidationErrors(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postJSON(h.Register, `{"name":"","email":"","password":"abc","confirm_password":"xyz"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	errs := decodeValidation(t, rec)
	assert.Contains(t, errs, "Name is required")
	assert.Contains(t, errs, "Email is required")
	assert.Contains(t, errs, "Passwords do not match")
	assert.Contains(t, errs, "Password must be at least 6 characters")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Alice", "alice@example.com", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505"})

	rec := postJSON(h.Register, `{"name":"Alice","email":"alice@example.com","password":"secret123","confirm_password":"secret123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeValidation(t, rec), "Email already registered")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterSuccess(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Alice", "alice@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	rec := postJSON(h.Register, `{"name":"Alice","email":"alice@example.com","password":"secret123","confirm_password":"secret123"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownEmail(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery("SELECT id, name, email, password, created_at FROM users").
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	rec := postJSON(h.Login, `{"email":"nobody@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

// Wrong password must produce the same generic message as an unknown email.
func TestLoginWrongPassword(t *testing.T) {
	h, mock := newTestHandler(t)

	hashed, err := utils.HashPassword("the-real-password")
	require.NoError(t, err)
	mock.ExpectQuery("SELECT id, name, email, password, created_at FROM users").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "created_at"}).
			AddRow(int64(1), "Alice", "alice@example.com", hashed, time.Now()))

	rec := postJSON(h.Login, `{"email":"alice@example.com","password":"a-wrong-guess"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestLoginMissingFields(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postJSON(h.Login, `{"email":"","password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeValidation(t, rec), "Email and password required")
}

func TestMeReturnsSessionPayload(t *testing.T) {
	h, _ := newTestHandler(t)
	token := loginSession(t, h)

	rec := httptest.NewRecorder()
	h.Me(rec, authedRequest(http.MethodGet, "/api/auth/me", "", token))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
}

func TestMeRejectsWithoutToken(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication required")
}

// Logging out ends the session: the same token must stop authenticating.
func TestLogoutInvalidatesSession(t *testing.T) {
	h, _ := newTestHandler(t)
	token := loginSession(t, h)

	rec := httptest.NewRecorder()
	h.Logout(rec, authedRequest(http.MethodPost, "/api/auth/logout", "", token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Me(rec, authedRequest(http.MethodGet, "/api/auth/me", "", token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
