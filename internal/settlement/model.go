package settlement

import "time"

// Payment represents money that actually changed hands between two group
// members. Unlike a planned settlement, payments are persisted and fold
// into subsequent balance computations, reducing the debt between the
// two users.
type Payment struct {
	ID         int64     `json:"id"`
	GroupID    int64     `json:"group_id"`
	FromUserID int64     `json:"from_user_id"` // who paid
	ToUserID   int64     `json:"to_user_id"`   // who received
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	// Populated via JOIN
	FromName string `json:"from_name,omitempty"`
	ToName   string `json:"to_name,omitempty"`
}
