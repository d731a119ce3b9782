package domain

// ChallengeWeeks is the fixed duration of the challenge. The program is a
// six-week plan; arbitrary lengths are not supported.
const ChallengeWeeks = 6

// Entry is one week's recorded body-metric snapshot. Week and BMI are
// assigned by the entry store at creation time, never by the caller.
type Entry struct {
	ID                int64    `json:"id"`
	Week              int      `json:"week"`
	WeightKg          float64  `json:"weightKg"`
	BMI               float64  `json:"bmi"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage,omitempty"`
	MuscleMassKg      *float64 `json:"muscleMassKg,omitempty"`
	VisceralFatLevel  *int     `json:"visceralFatLevel,omitempty"`
}

// Metrics carries the caller-supplied fields of a new weekly entry.
type Metrics struct {
	WeightKg          float64  `json:"weightKg"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage,omitempty"`
	MuscleMassKg      *float64 `json:"muscleMassKg,omitempty"`
	VisceralFatLevel  *int     `json:"visceralFatLevel,omitempty"`
}
