package models

import (
	"time"

	"github.com/lifetrack-health/lifetrack-backend/internal/bmi"
)

// FeeSchedule holds the three fixed assessment fee line items.
type FeeSchedule struct {
	Consultation  float64 `json:"consultation_fee"`
	BMIAssessment float64 `json:"bmi_assessment_fee"`
	HealthReport  float64 `json:"health_report_fee"`
}

// Total is the sum of the three line items.
func (f FeeSchedule) Total() float64 {
	return f.Consultation + f.BMIAssessment + f.HealthReport
}

// Invoice is a billing document derived from one measurement. Created on
// demand; payment_status stays "Pending" (no transition routes exist).
type Invoice struct {
	ID            int64       `json:"id"`
	InvoiceNumber string      `json:"invoice_number"`
	PatientID     int64       `json:"-"`
	RecordID      int64       `json:"record_id"`
	Fees          FeeSchedule `json:"fees"`
	TotalAmount   float64     `json:"total_amount"`
	PaymentStatus string      `json:"payment_status"`
	PaymentTerms  string      `json:"payment_terms"`
	InvoiceDate   time.Time   `json:"invoice_date"`
	DueDate       *time.Time  `json:"due_date,omitempty"`
}

// InvoiceDetail is an invoice joined with the measurement it bills.
type InvoiceDetail struct {
	Invoice
	Age      *int         `json:"age,omitempty"`
	Gender   string       `json:"gender,omitempty"`
	HeightCm float64      `json:"height"`
	WeightKg float64      `json:"weight"`
	BMI      float64      `json:"bmi"`
	Category bmi.Category `json:"category"`
}
