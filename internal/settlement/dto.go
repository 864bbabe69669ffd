package settlement

// RecordPaymentRequest represents the request to record a payment. The
// paying user is taken from the authenticated caller.
type RecordPaymentRequest struct {
	GroupID  int64   `json:"group_id" validate:"required"`
	ToUserID int64   `json:"to_user_id" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency,omitempty"` // defaults to the group's currency
	Note     string  `json:"note,omitempty"`
}

// PaymentResponse represents the response for a recorded payment
type PaymentResponse struct {
	ID         int64   `json:"id"`
	GroupID    int64   `json:"group_id"`
	FromUserID int64   `json:"from_user_id"`
	FromName   string  `json:"from_name,omitempty"`
	ToUserID   int64   `json:"to_user_id"`
	ToName     string  `json:"to_name,omitempty"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Note       string  `json:"note,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// BalanceView is one member's net position with the display name attached.
// The engine works on user IDs alone; names are resolved here, at the API
// edge, and may repeat when two members share one.
type BalanceView struct {
	UserID   int64   `json:"user_id"`
	Name     string  `json:"name,omitempty"`
	Net      float64 `json:"net"`
	Currency string  `json:"currency"`
}

// SuggestedTransfer is one planned settlement, optionally annotated with a
// display-currency amount. DisplayAmount is presentation only; the transfer
// itself is always denominated in its own currency.
type SuggestedTransfer struct {
	FromUserID      int64   `json:"from_user_id"`
	FromName        string  `json:"from_name,omitempty"`
	ToUserID        int64   `json:"to_user_id"`
	ToName          string  `json:"to_name,omitempty"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	DisplayAmount   float64 `json:"display_amount,omitempty"`
	DisplayCurrency string  `json:"display_currency,omitempty"`
}

// CurrencyPlan holds one currency's balances and suggested transfers.
// Currencies are planned independently; a plan never nets debts across
// currencies.
type CurrencyPlan struct {
	Currency    string              `json:"currency"`
	Balances    []BalanceView       `json:"balances"`
	Settlements []SuggestedTransfer `json:"settlements"`
}

// PlanResponse is a full settlement plan for a group. RunID identifies one
// planning run in logs; the plan itself is ephemeral and recomputed on
// demand, never stored.
type PlanResponse struct {
	RunID      string         `json:"run_id"`
	GroupID    int64          `json:"group_id"`
	Currencies []CurrencyPlan `json:"currencies"`
}

// BalancesResponse wraps a group's per-person net positions
type BalancesResponse struct {
	GroupID  int64         `json:"group_id"`
	Balances []BalanceView `json:"balances"`
}

// ToResponse converts a Payment model to a PaymentResponse DTO
func (p *Payment) ToResponse() *PaymentResponse {
	return &PaymentResponse{
		ID:         p.ID,
		GroupID:    p.GroupID,
		FromUserID: p.FromUserID,
		FromName:   p.FromName,
		ToUserID:   p.ToUserID,
		ToName:     p.ToName,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Note:       p.Note,
		CreatedAt:  p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
