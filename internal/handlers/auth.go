package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lifetrack-health/lifetrack-backend/internal/services"
	"github.com/lifetrack-health/lifetrack-backend/internal/store"
	"github.com/lifetrack-health/lifetrack-backend/pkg/utils"
)

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token,omitempty"`
	User    interface{} `json:"user,omitempty"`
}

// Register creates a new user account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)
	req.ConfirmPassword = strings.TrimSpace(req.ConfirmPassword)

	var errs []string
	if req.Name == "" {
		errs = append(errs, "Name is required")
	}
	if req.Email == "" {
		errs = append(errs, "Email is required")
	}
	if req.Password == "" {
		errs = append(errs, "Password is required")
	}
	if req.Password != req.ConfirmPassword {
		errs = append(errs, "Passwords do not match")
	}
	if len(req.Password) < 6 {
		errs = append(errs, "Password must be at least 6 characters")
	}
	if len(errs) > 0 {
		respondValidation(w, errs...)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	if _, err := h.users.Create(r.Context(), req.Name, req.Email, hashed); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			respondValidation(w, "Email already registered")
			return
		}
		respondInternal(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Success: true,
		Message: "Registration successful. Please login.",
	})
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password are reported identically to avoid account enumeration.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)
	if req.Email == "" || req.Password == "" {
		respondValidation(w, "Email and password required")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondInternal(w, r, err)
		return
	}

	valid, err := utils.VerifyPassword(req.Password, user.Password)
	if err != nil || !valid {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.sessions.Create(r.Context(), services.SessionData{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	})
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// Logout invalidates the caller's session. Always succeeds; an absent or
// expired token has nothing left to clear.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Invalidate(r.Context(), bearerToken(r)); err != nil {
		respondInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Success: true, Message: "Logged out"})
}

// Me returns the authenticated session payload.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAuth(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user": map[string]interface{}{
			"id":    sess.UserID,
			"name":  sess.Name,
			"email": sess.Email,
		},
	})
}
