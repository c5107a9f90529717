package bmi

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Category is the WHO banding of a BMI value.
type Category string

const (
	Underweight Category = "Underweight"
	Normal      Category = "Normal"
	Overweight  Category = "Overweight"
	Obese       Category = "Obese"
)

var (
	// ErrInvalidMeasurement is returned when height or weight is not positive.
	ErrInvalidMeasurement = errors.New("height and weight must be positive values")
	// ErrInvalidAge is returned when age is present but not an integer in [1,150].
	ErrInvalidAge = errors.New("age must be between 1 and 150")
)

// Compute calculates BMI from height in centimeters and weight in kilograms,
// rounded to 2 decimal places. Both inputs must be positive.
func Compute(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, ErrInvalidMeasurement
	}
	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)
	return math.Round(bmi*100) / 100, nil
}

// Classify maps a BMI value to its category. Boundary values (18.5, 25, 30)
// belong to the higher band.
func Classify(bmi float64) Category {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

var advice = map[Category]string{
	Underweight: "Consider consulting a healthcare professional. A balanced diet with adequate calories and nutrients is important.",
	Normal:      "Great! Maintain your healthy weight with regular exercise and a balanced diet.",
	Overweight:  "Consider a healthier lifestyle with regular physical activity and a balanced diet. Consult a healthcare provider if needed.",
	Obese:       "It is highly recommended to consult a healthcare professional for personalized advice on weight management.",
}

// AdviceFor returns the health advice sentence for a category, or "" for
// unrecognized input.
func AdviceFor(c Category) string {
	return advice[c]
}

// RiskProfile returns the WHO risk level and classification shown on invoice
// documents.
func RiskProfile(c Category) (level, classification string) {
	switch c {
	case Underweight:
		return "High Risk", "Nutritional Deficit"
	case Normal:
		return "Low Risk", "Optimal Health Range"
	case Overweight:
		return "Moderate Risk", "Increased Health Risk"
	case Obese:
		return "High Risk", "Significant Health Risk"
	default:
		return "N/A", "N/A"
	}
}

// ParseAge validates an optional age field. Empty input means "no age given"
// and yields a nil pointer. Numeric input must be an integer in [1,150];
// fractional strings like "60.0" are truncated as the web form sends them.
func ParseAge(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	age, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return nil, ErrInvalidAge
		}
		age = int(f)
	}
	if age < 1 || age > 150 {
		return nil, ErrInvalidAge
	}
	return &age, nil
}
