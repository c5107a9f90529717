package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lifetrack-health/lifetrack-backend/internal/bmi"
	"github.com/lifetrack-health/lifetrack-backend/internal/models"
	"github.com/lifetrack-health/lifetrack-backend/internal/services"
	"github.com/lifetrack-health/lifetrack-backend/internal/store"
)

type submitBMIRequest struct {
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
	// Age is decoded as raw JSON so that a non-numeric value reaches the age
	// validator and gets the age-specific message, not a generic decode error.
	Age    json.RawMessage `json:"age"`
	Gender string          `json:"gender"`
}

// rawFieldString renders an optional JSON field as plain text: absent and
// null become "", quoted strings lose their quotes, numbers pass through as
// written.
func rawFieldString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var quoted string
	if json.Unmarshal(raw, &quoted) == nil {
		return quoted
	}
	return s
}

type submitBMIResponse struct {
	Success bool                `json:"success"`
	Record  *models.Measurement `json:"record"`
	PDFPath string              `json:"pdf_path,omitempty"`
}

// SubmitBMI validates a measurement, computes BMI and category, persists the
// row and renders a report PDF. The row is committed before the PDF is
// attempted; a rendering failure does not fail the submission.
func (h *Handler) SubmitBMI(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	var req submitBMIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "Invalid request body")
		return
	}

	bmiValue, err := bmi.Compute(req.Height, req.Weight)
	if err != nil {
		respondValidation(w, "Height and weight must be positive values")
		return
	}

	age, err := bmi.ParseAge(rawFieldString(req.Age))
	if err != nil {
		respondValidation(w, "Age must be between 1 and 150")
		return
	}

	category := bmi.Classify(bmiValue)

	record, err := h.records.Insert(r.Context(), sess.UserID, age, strings.TrimSpace(req.Gender), req.Height, req.Weight, bmiValue, category)
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	pdfPath, err := h.reports.HealthReport(reportData(sess, record))
	if err != nil {
		log.Printf("WARNING: report generation failed for record %d: %v", record.ID, err)
	}

	writeJSON(w, http.StatusCreated, submitBMIResponse{
		Success: true,
		Record:  record,
		PDFPath: pdfPath,
	})
}

// Dashboard lists the caller's latest measurements, newest first.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	records, err := h.records.ListByUser(r.Context(), sess.UserID)
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"records": records,
		"total":   len(records),
	})
}

// GetRecord returns one measurement with its health advice.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	recordID, err := pathID(r, "recordID")
	if err != nil {
		respondValidation(w, "Invalid record id")
		return
	}

	record, err := h.records.Get(r.Context(), sess.UserID, recordID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Record not found")
			return
		}
		respondInternal(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"record":  record,
		"advice":  bmi.AdviceFor(record.Category),
	})
}

// EmailRecord regenerates the report PDF from the stored row and emails it to
// the account's address. The PDF is removed after a successful send.
func (h *Handler) EmailRecord(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	recordID, err := pathID(r, "recordID")
	if err != nil {
		respondValidation(w, "Invalid record id")
		return
	}

	record, err := h.records.Get(r.Context(), sess.UserID, recordID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Record not found")
			return
		}
		respondInternal(w, r, err)
		return
	}

	pdfPath, err := h.reports.HealthReport(reportData(sess, record))
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	if err := h.mailer.SendReport(sess.Email, sess.Name, pdfPath); err != nil {
		log.Printf("ERROR: sending report for record %d: %v", record.ID, err)
		respondError(w, http.StatusInternalServerError, "Failed to send email")
		return
	}

	os.Remove(pdfPath)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Email sent successfully",
	})
}

func reportData(sess *services.SessionData, m *models.Measurement) services.ReportData {
	return services.ReportData{
		PatientName: sess.Name,
		PatientID:   sess.UserID,
		Age:         m.Age,
		Gender:      m.Gender,
		HeightCm:    m.HeightCm,
		WeightKg:    m.WeightKg,
		BMI:         m.BMI,
		Category:    m.Category,
		Date:        m.Date,
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
