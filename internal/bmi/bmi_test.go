package bmi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	t.Parallel()

	got, err := Compute(170, 70)
	require.NoError(t, err)
	assert.Equal(t, 24.22, got)

	got, err = Compute(180, 75)
	require.NoError(t, err)
	assert.Equal(t, 23.15, got)
}

func TestComputeRejectsNonPositiveInputs(t *testing.T) {
	t.Parallel()

	for _, tc := range [][2]float64{{0, 70}, {-170, 70}, {170, 0}, {170, -5}, {0, 0}} {
		_, err := Compute(tc[0], tc[1])
		assert.ErrorIs(t, err, ErrInvalidMeasurement, "height=%v weight=%v", tc[0], tc[1])
	}
}

// Recomputing from a stored height/weight pair must reproduce the stored BMI
// exactly, since reports read persisted values and never recompute.
func TestComputeRoundTrip(t *testing.T) {
	t.Parallel()

	pairs := [][2]float64{
		{150.5, 45}, {160, 52.3}, {170, 70}, {175.2, 88.8}, {190, 120.5}, {201, 63},
	}
	for _, p := range pairs {
		stored, err := Compute(p[0], p[1])
		require.NoError(t, err)
		again, err := Compute(p[0], p[1])
		require.NoError(t, err)
		assert.Equal(t, stored, again)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		bmi  float64
		want Category
	}{
		{17.9, Underweight},
		{18.5, Normal},
		{24.99, Normal},
		{25.0, Overweight},
		{29.99, Overweight},
		{30.0, Obese},
		{45.0, Obese},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.bmi), "bmi=%v", tc.bmi)
	}
}

func TestAdviceFor(t *testing.T) {
	t.Parallel()

	for _, c := range []Category{Underweight, Normal, Overweight, Obese} {
		assert.NotEmpty(t, AdviceFor(c))
	}
	assert.Empty(t, AdviceFor(Category("Unknown")))
}

func TestRiskProfile(t *testing.T) {
	t.Parallel()

	level, class := RiskProfile(Normal)
	assert.Equal(t, "Low Risk", level)
	assert.Equal(t, "Optimal Health Range", class)

	level, class = RiskProfile(Category("Unknown"))
	assert.Equal(t, "N/A", level)
	assert.Equal(t, "N/A", class)
}

func TestParseAge(t *testing.T) {
	t.Parallel()

	age, err := ParseAge("")
	require.NoError(t, err)
	assert.Nil(t, age)

	age, err = ParseAge("null")
	require.NoError(t, err)
	assert.Nil(t, age)

	age, err = ParseAge("60")
	require.NoError(t, err)
	require.NotNil(t, age)
	assert.Equal(t, 60, *age)

	age, err = ParseAge("60.0")
	require.NoError(t, err)
	require.NotNil(t, age)
	assert.Equal(t, 60, *age)

	for _, raw := range []string{"0", "151", "abc", "-3"} {
		_, err := ParseAge(raw)
		assert.ErrorIs(t, err, ErrInvalidAge, "raw=%q", raw)
	}
}
