package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lifetrack-health/lifetrack-backend/internal/bmi"
	"github.com/lifetrack-health/lifetrack-backend/internal/models"
)

// DashboardLimit caps the dashboard listing at a bounded row count for a
// predictable page size.
const DashboardLimit = 10

// RecordStore persists BMI measurements.
type RecordStore struct {
	db *sql.DB
}

func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

// Insert stores one measurement with a server-assigned timestamp and returns
// the persisted row.
func (s *RecordStore) Insert(ctx context.Context, userID int64, age *int, gender string, heightCm, weightKg, bmiValue float64, category bmi.Category) (*models.Measurement, error) {
	m := models.Measurement{
		PatientID: userID,
		Age:       age,
		Gender:    gender,
		HeightCm:  heightCm,
		WeightKg:  weightKg,
		BMI:       bmiValue,
		Category:  category,
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO bmi_records (patient_id, age, gender, height, weight, bmi, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, date
	`, userID, nullInt(age), nullString(gender), heightCm, weightKg, bmiValue, string(category)).Scan(&m.ID, &m.Date)
	if err != nil {
		return nil, fmt.Errorf("insert bmi record: %w", err)
	}
	return &m, nil
}

// ListByUser returns the user's measurements newest first, capped at
// DashboardLimit rows.
func (s *RecordStore) ListByUser(ctx context.Context, userID int64) ([]models.Measurement, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, patient_id, age, gender, height, weight, bmi, category, date
		FROM bmi_records
		WHERE patient_id = $1
		ORDER BY date DESC, id DESC
		LIMIT %d
	`, DashboardLimit), userID)
	if err != nil {
		return nil, fmt.Errorf("list bmi records: %w", err)
	}
	defer rows.Close()

	records := make([]models.Measurement, 0, DashboardLimit)
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bmi records: %w", err)
	}
	return records, nil
}

// Get returns one measurement filtered by both record id and owning user.
// Foreign-owned rows are reported as ErrNotFound, never returned.
func (s *RecordStore) Get(ctx context.Context, userID, recordID int64) (*models.Measurement, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, patient_id, age, gender, height, weight, bmi, category, date
		FROM bmi_records
		WHERE id = $1 AND patient_id = $2
	`, recordID, userID)
	m, err := scanMeasurement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMeasurement(row rowScanner) (*models.Measurement, error) {
	var m models.Measurement
	var age sql.NullInt64
	var gender sql.NullString
	var category string
	err := row.Scan(&m.ID, &m.PatientID, &age, &gender, &m.HeightCm, &m.WeightKg, &m.BMI, &category, &m.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan bmi record: %w", err)
	}
	if age.Valid {
		v := int(age.Int64)
		m.Age = &v
	}
	m.Gender = gender.String
	m.Category = bmi.Category(category)
	return &m, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
