package domain

// BMI returns weight(kg) / height(m)^2.
// Returns 0 if heightCm is not positive, so callers never divide by zero.
func BMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return weightKg / (m * m)
}

// DeltaSign classifies the direction of a week-over-week change.
type DeltaSign string

const (
	DeltaDecrease DeltaSign = "decrease"
	DeltaIncrease DeltaSign = "increase"
	DeltaNone     DeltaSign = "none"
)

// Delta is the signed difference between two metric readings.
// Value is nil when either operand was absent.
type Delta struct {
	Value *float64  `json:"value"`
	Sign  DeltaSign `json:"sign"`
}

// DeltaOf computes current - previous. Either operand being absent yields a
// nil value with sign "none"; a zero difference also reports "none".
func DeltaOf(current, previous *float64) Delta {
	if current == nil || previous == nil {
		return Delta{Sign: DeltaNone}
	}
	v := *current - *previous
	d := Delta{Value: &v}
	switch {
	case v < 0:
		d.Sign = DeltaDecrease
	case v > 0:
		d.Sign = DeltaIncrease
	default:
		d.Sign = DeltaNone
	}
	return d
}

// BMICategory names the standard band a BMI value falls into.
// Non-positive values report "N/A".
func BMICategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return "N/A"
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}
