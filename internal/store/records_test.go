package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifetrack-health/lifetrack-backend/internal/bmi"
)

var recordColumns = []string{"id", "patient_id", "age", "gender", "height", "weight", "bmi", "category", "date"}

func TestRecordStoreInsert(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewRecordStore(db)

	now := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	age := 60
	mock.ExpectQuery("INSERT INTO bmi_records").
		WithArgs(int64(7), int64(60), "Male", 170.0, 70.0, 24.22, "Normal").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date"}).AddRow(int64(3), now))

	m, err := s.Insert(context.Background(), 7, &age, "Male", 170, 70, 24.22, bmi.Normal)
	require.NoError(t, err)
	assert.Equal(t, int64(3), m.ID)
	assert.Equal(t, int64(7), m.PatientID)
	assert.Equal(t, now, m.Date)
	assert.Equal(t, bmi.Normal, m.Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStoreInsertWithoutOptionalFields(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewRecordStore(db)

	mock.ExpectQuery("INSERT INTO bmi_records").
		WithArgs(int64(7), nil, nil, 182.5, 95.0, 28.52, "Overweight").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date"}).AddRow(int64(4), time.Now()))

	m, err := s.Insert(context.Background(), 7, nil, "", 182.5, 95, 28.52, bmi.Overweight)
	require.NoError(t, err)
	assert.Nil(t, m.Age)
	assert.Empty(t, m.Gender)
}

func TestRecordStoreListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewRecordStore(db)

	newer := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	older := newer.Add(-48 * time.Hour)
	mock.ExpectQuery("SELECT id, patient_id, age, gender, height, weight, bmi, category, date").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow(int64(9), int64(7), int64(34), "Female", 165.0, 58.0, 21.3, "Normal", newer).
			AddRow(int64(5), int64(7), nil, nil, 165.0, 62.0, 22.77, "Normal", older))

	records, err := s.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(9), records[0].ID)
	require.NotNil(t, records[0].Age)
	assert.Equal(t, 34, *records[0].Age)
	assert.Equal(t, int64(5), records[1].ID)
	assert.Nil(t, records[1].Age)
	assert.Empty(t, records[1].Gender)
}

// A record owned by another user must come back as ErrNotFound: the query
// filters by both record id and owner id.
func TestRecordStoreGetForeignOwned(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewRecordStore(db)

	mock.ExpectQuery("FROM bmi_records").
		WithArgs(int64(3), int64(999)).
		WillReturnError(sql.ErrNoRows)

	_, err := s.Get(context.Background(), 999, 3)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStoreGet(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewRecordStore(db)

	when := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery("FROM bmi_records").
		WithArgs(int64(3), int64(7)).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow(int64(3), int64(7), int64(60), "Male", 170.0, 70.0, 24.22, "Normal", when))

	m, err := s.Get(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 170.0, m.HeightCm)
	assert.Equal(t, 24.22, m.BMI)
	assert.Equal(t, bmi.Normal, m.Category)
}
