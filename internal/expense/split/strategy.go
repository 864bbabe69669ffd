package split

import (
	"errors"
	"fmt"
	"math"
)

// Mode selects how an expense is divided among its participants
type Mode string

const (
	ModeEqual  Mode = "EQUAL"
	ModeCustom Mode = "CUSTOM"
)

// sumTolerance is the absolute tolerance used when checking that shares
// add up to the expense total. It matches the epsilon used by the balance
// engine, so splits that validate here always aggregate cleanly.
const sumTolerance = 0.01

// Request carries everything a strategy needs to divide one expense.
// Participants are user IDs in a deterministic roster order; the order
// matters because the equal strategy assigns the rounding remainder to
// the last active participant. Display names never reach this package,
// so two participants who happen to share a name cannot collapse into
// one share.
type Request struct {
	Total        float64
	PayerID      int64
	Participants []int64
	Excluded     []int64           // user IDs removed before an equal split
	Shares       map[int64]float64 // caller-supplied amounts for CUSTOM
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Shares computes each active participant's owed amount, keyed by
	// user ID. The returned values sum to the request total within
	// sumTolerance.
	Shares(req Request) (map[int64]float64, error)

	// Mode returns the mode identifier for this strategy
	Mode() Mode

	// Validate checks if the request is valid for this strategy
	Validate(req Request) error
}

// Factory creates split strategies based on the requested mode
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy implementation for the given mode
func (f *Factory) Create(mode Mode) (Strategy, error) {
	switch mode {
	case ModeEqual:
		return &EqualStrategy{}, nil
	case ModeCustom:
		return &CustomStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split mode: %s", mode)
	}
}

// CreateFromString creates a strategy from a string mode (useful for API requests)
func (f *Factory) CreateFromString(mode string) (Strategy, error) {
	return f.Create(Mode(mode))
}

var (
	ErrEmptyParticipants  = errors.New("no active participants after exclusions")
	ErrNonPositiveAmount  = errors.New("expense amount must be positive")
	ErrNegativeShare      = errors.New("shares cannot be negative")
	ErrMissingCustomShare = errors.New("custom shares required for CUSTOM mode")
)

// ValidationError reports custom shares that do not add up to the expense
// total. It carries both values so callers can surface them; the engine
// never corrects the shares silently.
type ValidationError struct {
	Sum   float64
	Total float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("custom shares sum to %.2f, expected %.2f", e.Sum, e.Total)
}

// roundTwo rounds half away from zero to 2 decimal places. This is the
// single rounding primitive for money in the engine; the balance package
// applies the same rule.
func roundTwo(value float64) float64 {
	return math.Round(value*100) / 100
}

// activeParticipants returns the roster minus excluded IDs, preserving
// roster order. Duplicate roster entries keep only their first occurrence
// so the shares map always has one key per person and the computed shares
// still sum to the total.
func activeParticipants(roster, excluded []int64) []int64 {
	skip := make(map[int64]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}
	active := make([]int64, 0, len(roster))
	for _, id := range roster {
		if skip[id] {
			continue
		}
		skip[id] = true
		active = append(active, id)
	}
	return active
}
