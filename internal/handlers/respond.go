package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type validationResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondValidation reports expected input failures as a structured message
// list with 400.
func respondValidation(w http.ResponseWriter, errs ...string) {
	writeJSON(w, http.StatusBadRequest, validationResponse{Success: false, Errors: errs})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

// respondInternal logs the underlying error and surfaces a generic 500
// without internal detail.
func respondInternal(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("ERROR: %s %s: %v", r.Method, r.URL.Path, err)
	respondError(w, http.StatusInternalServerError, "Internal server error")
}
