package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/lifetrack-health/lifetrack-backend/internal/models"
	"github.com/lifetrack-health/lifetrack-backend/internal/services"
	"github.com/lifetrack-health/lifetrack-backend/internal/store"
)

type createInvoiceResponse struct {
	Success     bool            `json:"success"`
	Invoice     *models.Invoice `json:"invoice"`
	PatientName string          `json:"patient_name"`
	InvoicePath string          `json:"invoice_path,omitempty"`
}

// CreateInvoice bills an existing measurement. The record's ownership is
// verified before any insert; the invoice row is committed before the PDF is
// attempted, so a rendering failure never loses the invoice.
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
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

	invoice, err := h.invoices.Create(r.Context(), record, h.cfg.Fees, time.Now())
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	invoicePath, err := h.reports.InvoicePDF(invoicePDFData(sess, invoice, record))
	if err != nil {
		log.Printf("WARNING: invoice PDF generation failed for invoice %d: %v", invoice.ID, err)
	}

	writeJSON(w, http.StatusCreated, createInvoiceResponse{
		Success:     true,
		Invoice:     invoice,
		PatientName: sess.Name,
		InvoicePath: invoicePath,
	})
}

// EmailInvoice regenerates the invoice PDF from the stored rows and emails it
// to the account's address.
func (h *Handler) EmailInvoice(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	detail, ok := h.loadInvoice(w, r, sess)
	if !ok {
		return
	}

	pdfPath, err := h.reports.InvoicePDF(invoiceDetailPDFData(sess, detail))
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	if err := h.mailer.SendReport(sess.Email, sess.Name, pdfPath); err != nil {
		log.Printf("ERROR: sending invoice %d: %v", detail.ID, err)
		respondError(w, http.StatusInternalServerError, "Failed to send invoice")
		return
	}

	os.Remove(pdfPath)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Invoice sent successfully",
	})
}

// DownloadInvoice streams the invoice PDF as an attachment.
func (h *Handler) DownloadInvoice(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	detail, ok := h.loadInvoice(w, r, sess)
	if !ok {
		return
	}

	pdfPath, err := h.reports.InvoicePDF(invoiceDetailPDFData(sess, detail))
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="Invoice_%s.pdf"`, detail.InvoiceNumber))
	http.ServeFile(w, r, pdfPath)
}

func (h *Handler) loadInvoice(w http.ResponseWriter, r *http.Request, sess *services.SessionData) (*models.InvoiceDetail, bool) {
	invoiceID, err := pathID(r, "invoiceID")
	if err != nil {
		respondValidation(w, "Invalid invoice id")
		return nil, false
	}

	detail, err := h.invoices.Get(r.Context(), sess.UserID, invoiceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Invoice not found")
			return nil, false
		}
		respondInternal(w, r, err)
		return nil, false
	}
	return detail, true
}

func invoicePDFData(sess *services.SessionData, inv *models.Invoice, record *models.Measurement) services.InvoiceData {
	return services.InvoiceData{
		ReportData:    reportData(sess, record),
		InvoiceNumber: inv.InvoiceNumber,
		Fees:          inv.Fees,
		TotalAmount:   inv.TotalAmount,
		PaymentTerms:  inv.PaymentTerms,
		InvoiceDate:   inv.InvoiceDate,
	}
}

func invoiceDetailPDFData(sess *services.SessionData, d *models.InvoiceDetail) services.InvoiceData {
	return services.InvoiceData{
		ReportData: services.ReportData{
			PatientName: sess.Name,
			PatientID:   sess.UserID,
			Age:         d.Age,
			Gender:      d.Gender,
			HeightCm:    d.HeightCm,
			WeightKg:    d.WeightKg,
			BMI:         d.BMI,
			Category:    d.Category,
			Date:        d.InvoiceDate,
		},
		InvoiceNumber: d.InvoiceNumber,
		Fees:          d.Fees,
		TotalAmount:   d.TotalAmount,
		PaymentTerms:  d.PaymentTerms,
		InvoiceDate:   d.InvoiceDate,
	}
}
