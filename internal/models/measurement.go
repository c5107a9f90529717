package models

import (
	"time"

	"github.com/lifetrack-health/lifetrack-backend/internal/bmi"
)

// Measurement is a single persisted height/weight observation with its
// derived BMI value and category. Rows are created once and never mutated.
type Measurement struct {
	ID        int64        `json:"id"`
	PatientID int64        `json:"-"`
	Age       *int         `json:"age,omitempty"`
	Gender    string       `json:"gender,omitempty"`
	HeightCm  float64      `json:"height"`
	WeightKg  float64      `json:"weight"`
	BMI       float64      `json:"bmi"`
	Category  bmi.Category `json:"category"`
	Date      time.Time    `json:"date"`
}
