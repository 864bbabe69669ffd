package expense

// ShareInput is one participant's amount in a CUSTOM split request
type ShareInput struct {
	UserID int64   `json:"user_id" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gte=0"`
}

// CreateExpenseRequest represents the request to create an expense.
// For EQUAL mode the group roster is split evenly after removing exclusions;
// exclusions come from ExcludedUserIDs plus any "without <name>" phrasing
// detected in Note. For CUSTOM mode, Shares must sum to Amount.
type CreateExpenseRequest struct {
	GroupID         int64         `json:"group_id" validate:"required"`
	Description     string        `json:"description" validate:"required,min=1,max=255"`
	Amount          float64       `json:"amount" validate:"required,gt=0"`
	Currency        string        `json:"currency,omitempty"` // defaults to the group's currency
	SplitMode       string        `json:"split_mode" validate:"required,oneof=EQUAL CUSTOM"`
	Note            string        `json:"note,omitempty"`
	ExcludedUserIDs []int64       `json:"excluded_user_ids,omitempty"`
	Shares          []*ShareInput `json:"shares,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          int64            `json:"id"`
	GroupID     int64            `json:"group_id"`
	PayerID     int64            `json:"payer_id"`
	PayerName   string           `json:"payer_name,omitempty"`
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	Currency    string           `json:"currency"`
	SplitMode   string           `json:"split_mode"`
	CreatedAt   string           `json:"created_at"`
	Splits      []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents one participant's share in an expense response
type SplitResponse struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"user_id"`
	UserName string  `json:"user_name,omitempty"`
	Share    float64 `json:"share"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PayerID:     e.PayerID,
		PayerName:   e.PayerName,
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    e.Currency,
		SplitMode:   string(e.SplitMode),
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	return &SplitResponse{
		ID:       s.ID,
		UserID:   s.UserID,
		UserName: s.UserName,
		Share:    s.Share,
	}
}
