package split

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense equally among all active participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Mode returns the split mode identifier
func (s *EqualStrategy) Mode() Mode {
	return ModeEqual
}

// Validate checks if the request is valid for an equal split
func (s *EqualStrategy) Validate(req Request) error {
	if req.Total <= 0 {
		return ErrNonPositiveAmount
	}
	if len(activeParticipants(req.Participants, req.Excluded)) == 0 {
		return ErrEmptyParticipants
	}
	return nil
}

// Shares divides the total equally among the active participants (roster
// minus exclusions). Each of the first n-1 participants, in roster order,
// gets roundTwo(total/n); the last participant gets whatever remains, so
// the shares always sum exactly to the total even when the division is not
// exact (100/3 -> 33.33, 33.33, 33.34). This makes the assignment
// order-dependent, which is deliberate: roster order is deterministic, so
// the same request always yields the same shares.
func (s *EqualStrategy) Shares(req Request) (map[int64]float64, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	active := activeParticipants(req.Participants, req.Excluded)
	n := len(active)

	perPerson := roundTwo(req.Total / float64(n))

	shares := make(map[int64]float64, n)
	assigned := 0.0
	for _, id := range active[:n-1] {
		shares[id] = perPerson
		assigned += perPerson
	}

	// Remainder cent (if any) lands on the last active participant.
	shares[active[n-1]] = roundTwo(req.Total - assigned)

	return shares, nil
}
