package expense

import (
	"time"

	"github.com/bodhiforge/fintrack-ai-sub000/internal/expense/split"
)

// Expense represents a shared expense. It is immutable once created: the
// only mutation is a logical delete, which keeps the row but excludes it
// from balance computation.
type Expense struct {
	ID          int64      `json:"id"`
	GroupID     int64      `json:"group_id"`
	PayerID     int64      `json:"payer_id"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	SplitMode   split.Mode `json:"split_mode"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// Split is one participant's owed share of an expense. The shares of an
// expense sum to its amount within a cent; that invariant is enforced at
// split-calculation time, before anything is persisted.
type Split struct {
	ID        int64   `json:"id"`
	ExpenseID int64   `json:"expense_id"`
	UserID    int64   `json:"user_id"`
	Share     float64 `json:"share"`

	// Populated via JOIN
	UserName string `json:"user_name,omitempty"`
}

// ExpenseWithSplits combines an expense with its per-participant shares
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}
