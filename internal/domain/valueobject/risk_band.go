package valueobject

import "fmt"

// RiskBand is an immutable value object classifying a composite risk score.
type RiskBand struct {
	value string
	rank  int
}

var (
	RiskBandLow      = RiskBand{value: "Low Risk", rank: 1}
	RiskBandMedium   = RiskBand{value: "Medium Risk", rank: 2}
	RiskBandHigh     = RiskBand{value: "High Risk", rank: 3}
	RiskBandCritical = RiskBand{value: "Critical Risk", rank: 4}
)

// Band thresholds; each is inclusive on its lower bound.
const (
	MediumRiskThreshold   = 40.0
	HighRiskThreshold     = 70.0
	CriticalRiskThreshold = 90.0
)

// AllRiskBands lists the bands from lowest to highest.
func AllRiskBands() []RiskBand {
	return []RiskBand{RiskBandLow, RiskBandMedium, RiskBandHigh, RiskBandCritical}
}

// RiskBandFromString reconstructs a RiskBand from its label.
func RiskBandFromString(s string) (RiskBand, error) {
	for _, b := range AllRiskBands() {
		if b.value == s {
			return b, nil
		}
	}
	return RiskBand{}, fmt.Errorf("invalid risk band: %q", s)
}

// RiskBandFromScore derives the band for a composite score in [0,100].
// NaN falls through every comparison and lands in the critical band.
func RiskBandFromScore(score float64) RiskBand {
	switch {
	case score < MediumRiskThreshold:
		return RiskBandLow
	case score < HighRiskThreshold:
		return RiskBandMedium
	case score < CriticalRiskThreshold:
		return RiskBandHigh
	default:
		return RiskBandCritical
	}
}

// String returns the band label.
func (b RiskBand) String() string {
	return b.value
}

// AtLeast reports whether b is the same as or more severe than other.
func (b RiskBand) AtLeast(other RiskBand) bool {
	return b.rank >= other.rank
}

// IsZero returns true if the RiskBand has not been set.
func (b RiskBand) IsZero() bool {
	return b.value == ""
}

// Equal checks equality with another RiskBand.
func (b RiskBand) Equal(other RiskBand) bool {
	return b.value == other.value
}

// MarshalText encodes the band as its label.
func (b RiskBand) MarshalText() ([]byte, error) {
	return []byte(b.value), nil
}

// UnmarshalText decodes a band label, as used by the YAML scoring policy.
func (b *RiskBand) UnmarshalText(text []byte) error {
	parsed, err := RiskBandFromString(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
