package user

import "time"

// User represents a person who can pay for and share expenses. Name is the
// display name other members use in free-form notes, so it is also what the
// exclusion extractor resolves against.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
