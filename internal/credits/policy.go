package credits

import (
	"errors"
	"math"
)

// ErrInvalidArea is returned when the input area is not a positive finite number.
var ErrInvalidArea = errors.New("Area must be a positive number")

// Policy converts a verified area into a credit quantity at a fixed rate.
// The rate is set once at startup; quantities computed at creation time are
// stored on the project and never recomputed.
type Policy struct {
	CreditsPerHectare float64
}

// ComputeCredits returns round(areaHectares * CreditsPerHectare, 2dp).
// Pure and deterministic: the same input always yields the same output.
func (p Policy) ComputeCredits(areaHectares float64) (float64, error) {
	if math.IsNaN(areaHectares) || math.IsInf(areaHectares, 0) || areaHectares <= 0 {
		return 0, ErrInvalidArea
	}
	return math.Round(areaHectares*p.CreditsPerHectare*100) / 100, nil
}
