package group

import "time"

// Group represents a set of people who share expenses. DefaultCurrency is
// used when an expense is recorded without an explicit currency code; it
// does not restrict which currencies the group's expenses may use.
type Group struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	DefaultCurrency string    `json:"default_currency"`
	CreatedAt       time.Time `json:"created_at"`
}

// Member represents a user's membership in a group. Join order is stable
// and doubles as the roster order for split calculation, which matters
// because the equal split assigns the rounding remainder to the last
// roster member.
type Member struct {
	ID       int64     `json:"id"`
	GroupID  int64     `json:"group_id"`
	UserID   int64     `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`

	// Populated via JOIN
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
