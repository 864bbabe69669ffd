package split

import "math"

// =============================================================================
// CUSTOM SPLIT STRATEGY
// Each participant owes a caller-specified amount (must sum to the total)
// =============================================================================

// CustomStrategy implements the Strategy interface for custom amount splits
type CustomStrategy struct{}

// Mode returns the split mode identifier
func (s *CustomStrategy) Mode() Mode {
	return ModeCustom
}

// Validate checks that the supplied shares are present, non-negative, and
// sum to the total within sumTolerance. A mismatch is returned as a
// *ValidationError carrying both the supplied sum and the expected total;
// no proration or silent adjustment is ever performed.
func (s *CustomStrategy) Validate(req Request) error {
	if req.Total <= 0 {
		return ErrNonPositiveAmount
	}
	if len(req.Shares) == 0 {
		return ErrMissingCustomShare
	}

	var sum float64
	for _, amount := range req.Shares {
		if amount < 0 {
			return ErrNegativeShare
		}
		sum += amount
	}

	if math.Abs(sum-req.Total) > sumTolerance {
		return &ValidationError{Sum: sum, Total: req.Total}
	}

	return nil
}

// Shares returns the caller-supplied amounts verbatim after validation.
func (s *CustomStrategy) Shares(req Request) (map[int64]float64, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	shares := make(map[int64]float64, len(req.Shares))
	for id, amount := range req.Shares {
		shares[id] = amount
	}

	return shares, nil
}
