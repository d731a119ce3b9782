package domain_test

import (
	"math"
	"testing"

	"bodytrack/internal/domain"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestBMI(t *testing.T) {
	tests := []struct {
		name     string
		weightKg float64
		heightCm float64
		want     float64
	}{
		{"80kg at 170cm", 80.0, 170.0, 27.6816},
		{"78kg at 170cm", 78.0, 170.0, 26.9896},
		{"70kg at 175cm", 70.0, 175.0, 22.8571},
		{"zero height", 80.0, 0, 0},
		{"negative height", 80.0, -170.0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.BMI(tc.weightKg, tc.heightCm)
			if !almostEqual(got, tc.want, 0.001) {
				t.Errorf("BMI(%v, %v) = %v; want %v", tc.weightKg, tc.heightCm, got, tc.want)
			}
		})
	}
}

func TestBMIMonotonicity(t *testing.T) {
	// Heavier at the same height means a larger BMI.
	if domain.BMI(81, 170) <= domain.BMI(80, 170) {
		t.Error("expected BMI to increase with weight")
	}
	// Taller at the same weight means a smaller BMI.
	if domain.BMI(80, 171) >= domain.BMI(80, 170) {
		t.Error("expected BMI to decrease with height")
	}
}

func fptr(v float64) *float64 { return &v }

func TestDeltaOf(t *testing.T) {
	tests := []struct {
		name      string
		current   *float64
		previous  *float64
		wantValue *float64
		wantSign  domain.DeltaSign
	}{
		{"both absent", nil, nil, nil, domain.DeltaNone},
		{"current absent", nil, fptr(80), nil, domain.DeltaNone},
		{"previous absent", fptr(80), nil, nil, domain.DeltaNone},
		{"decrease", fptr(78), fptr(80), fptr(-2), domain.DeltaDecrease},
		{"increase", fptr(80.5), fptr(80), fptr(0.5), domain.DeltaIncrease},
		{"no change", fptr(80), fptr(80), fptr(0), domain.DeltaNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.DeltaOf(tc.current, tc.previous)
			if got.Sign != tc.wantSign {
				t.Errorf("sign = %q; want %q", got.Sign, tc.wantSign)
			}
			if (got.Value == nil) != (tc.wantValue == nil) {
				t.Fatalf("value = %v; want %v", got.Value, tc.wantValue)
			}
			if got.Value != nil && !almostEqual(*got.Value, *tc.wantValue, 0.0001) {
				t.Errorf("value = %v; want %v", *got.Value, *tc.wantValue)
			}
		})
	}
}

func TestBMICategory(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{0, "N/A"},
		{-1, "N/A"},
		{17.9, "Underweight"},
		{18.5, "Normal"},
		{24.9, "Normal"},
		{25.0, "Overweight"},
		{29.9, "Overweight"},
		{30.0, "Obese"},
		{42.0, "Obese"},
	}
	for _, tc := range tests {
		if got := domain.BMICategory(tc.bmi); got != tc.want {
			t.Errorf("BMICategory(%v) = %q; want %q", tc.bmi, got, tc.want)
		}
	}
}
