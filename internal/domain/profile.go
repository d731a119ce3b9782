package domain

// Profile is a participant's identity and height. The name is the unique key;
// height is immutable once the profile exists (enforced by the profile store).
type Profile struct {
	Name     string  `json:"name"`
	HeightCm float64 `json:"heightCm"`
}
