package catalog

import (
	"fmt"
	"math"
)

// Quote computes the per-shipment price for a size and frequency selection:
// the size's base price with the frequency discount applied, rounded half-up
// to 2 decimal places to match currency display. Deterministic, no side
// effects.
func Quote(sizeID, frequencyID string) (float64, error) {
	size, ok := SizeByID(sizeID)
	if !ok {
		return 0, fmt.Errorf("unknown size id %q", sizeID)
	}
	freq, ok := FrequencyByID(frequencyID)
	if !ok {
		return 0, fmt.Errorf("unknown frequency id %q", frequencyID)
	}

	return roundCents(size.Price * (1 - freq.Discount)), nil
}

// roundCents rounds to 2 decimal places with half-up semantics.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
