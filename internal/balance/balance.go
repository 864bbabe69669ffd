// Package balance computes net positions and settlement suggestions from a
// history of shared expenses. Everything in this package is a pure function
// over immutable in-memory inputs: no I/O, no shared mutable state, and the
// same input always produces the same output.
//
// People are identified by user ID throughout. Display names are ambiguous
// (nothing stops two group members from sharing one) and belong to the
// presentation layer, never the ledger.
package balance

import "math"

// Epsilon is the tolerance below which a monetary difference is treated as
// zero. It is part of the engine's observable contract: balances with an
// absolute value at or below Epsilon are considered settled, and no
// settlement smaller than Epsilon is ever suggested.
const Epsilon = 0.01

// Entry is the slice of an expense the engine needs: who paid, how much,
// in what currency, and each participant's owed share. Shares sum to
// Amount within Epsilon; that is enforced at split-calculation time.
type Entry struct {
	PayerID  int64
	Amount   float64
	Currency string
	Shares   map[int64]float64
}

// Payment is a recorded transfer between two people. Payments fold into
// balances the opposite way expenses do: the sender is credited and the
// receiver debited, so recording a suggested settlement clears the debt.
type Payment struct {
	FromUserID int64
	ToUserID   int64
	Amount     float64
	Currency   string
}

// Balance is one person's signed net position in a single currency.
// Positive means others owe them, negative means they owe others.
type Balance struct {
	UserID   int64   `json:"user_id"`
	Net      float64 `json:"net"`
	Currency string  `json:"currency"`
}

// Settlement is a single suggested payment from a debtor to a creditor.
// It is derived data, never a persisted ledger entry.
type Settlement struct {
	FromUserID int64   `json:"from_user_id"`
	ToUserID   int64   `json:"to_user_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
}

// roundTwo rounds half away from zero to 2 decimal places, the engine's
// single rounding rule for money.
func roundTwo(value float64) float64 {
	return math.Round(value*100) / 100
}
