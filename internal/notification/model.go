package notification

import "time"

// Notification is one inbox entry for a user. Entries are written by the
// expense and settlement flows and only ever read or marked; nothing
// outside this package updates them.
type Notification struct {
	ID          int64     `json:"id"`
	RecipientID int64     `json:"recipient_id"`
	Kind        Kind      `json:"kind"`
	Message     string    `json:"message"`
	EntityID    *int64    `json:"entity_id,omitempty"` // expense or payment ID, by kind
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Kind classifies what produced a notification
type Kind string

const (
	KindExpenseAdded    Kind = "EXPENSE_ADDED"
	KindPaymentRecorded Kind = "PAYMENT_RECORDED"
)
