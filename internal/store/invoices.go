package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lifetrack-health/lifetrack-backend/internal/bmi"
	"github.com/lifetrack-health/lifetrack-backend/internal/models"
)

// DefaultPaymentTerms is the fixed terms string carried on every invoice.
const DefaultPaymentTerms = "Due within 30 days"

// InvoiceStore persists invoices derived from measurements.
type InvoiceStore struct {
	db *sql.DB
}

func NewInvoiceStore(db *sql.DB) *InvoiceStore {
	return &InvoiceStore{db: db}
}

// Create bills an existing measurement. Callers verify ownership of the
// record first (via RecordStore.Get), so a foreign or missing record never
// reaches this insert. There is no idempotency guard: repeated calls for the
// same measurement create distinct invoices with distinct numbers.
func (s *InvoiceStore) Create(ctx context.Context, record *models.Measurement, fees models.FeeSchedule, now time.Time) (*models.Invoice, error) {
	inv := models.Invoice{
		InvoiceNumber: fmt.Sprintf("INV-%d-%d-%s", record.PatientID, record.ID, now.Format("20060102150405")),
		PatientID:     record.PatientID,
		RecordID:      record.ID,
		Fees:          fees,
		TotalAmount:   fees.Total(),
		PaymentStatus: "Pending",
		PaymentTerms:  DefaultPaymentTerms,
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO invoices (invoice_number, patient_id, record_id, consultation_fee,
			bmi_assessment_fee, health_report_fee, total_amount, payment_terms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, invoice_date
	`, inv.InvoiceNumber, inv.PatientID, inv.RecordID, fees.Consultation,
		fees.BMIAssessment, fees.HealthReport, inv.TotalAmount, inv.PaymentTerms).Scan(&inv.ID, &inv.InvoiceDate)
	if err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}
	return &inv, nil
}

// Get returns one invoice joined with its measurement, filtered by both
// invoice id and owning user. Foreign-owned invoices are ErrNotFound.
func (s *InvoiceStore) Get(ctx context.Context, userID, invoiceID int64) (*models.InvoiceDetail, error) {
	var d models.InvoiceDetail
	var age sql.NullInt64
	var gender sql.NullString
	var dueDate sql.NullTime
	var category string
	err := s.db.QueryRowContext(ctx, `
		SELECT i.id, i.invoice_number, i.patient_id, i.record_id,
			i.consultation_fee, i.bmi_assessment_fee, i.health_report_fee,
			i.total_amount, i.payment_status, i.payment_terms, i.invoice_date, i.due_date,
			b.age, b.gender, b.height, b.weight, b.bmi, b.category
		FROM invoices i
		JOIN bmi_records b ON i.record_id = b.id
		WHERE i.id = $1 AND i.patient_id = $2
	`, invoiceID, userID).Scan(&d.ID, &d.InvoiceNumber, &d.PatientID, &d.RecordID,
		&d.Fees.Consultation, &d.Fees.BMIAssessment, &d.Fees.HealthReport,
		&d.TotalAmount, &d.PaymentStatus, &d.PaymentTerms, &d.InvoiceDate, &dueDate,
		&age, &gender, &d.HeightCm, &d.WeightKg, &d.BMI, &category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select invoice: %w", err)
	}
	if age.Valid {
		v := int(age.Int64)
		d.Age = &v
	}
	d.Gender = gender.String
	if dueDate.Valid {
		d.DueDate = &dueDate.Time
	}
	d.Category = bmi.Category(category)
	return &d, nil
}
