package settlement

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bodhiforge/fintrack-ai-sub000/internal/balance"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/currency"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/expense"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/group"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/notification"
)

// Common errors
var (
	ErrCannotPaySelf     = errors.New("cannot record a payment to yourself")
	ErrNonPositiveAmount = errors.New("payment amount must be positive")
)

// Service handles balance computation, settlement planning, and recorded
// payments for a group. The engine works on user IDs; this service resolves
// display names only when shaping API responses.
type Service struct {
	repo        *Repository
	expenseRepo *expense.Repository
	groupRepo   *group.Repository
	rates       currency.Table
	notifier    *notification.Service
}

// NewService creates a new settlement service with dependencies injected
func NewService(repo *Repository, expenseRepo *expense.Repository, groupRepo *group.Repository, rates currency.Table, notifier *notification.Service) *Service {
	return &Service{
		repo:        repo,
		expenseRepo: expenseRepo,
		groupRepo:   groupRepo,
		rates:       rates,
		notifier:    notifier,
	}
}

// RecordPayment persists an actual transfer between two members. The
// payment folds into future balance computations and reduces the debt
// between the two users; the receiver gets an inbox notification.
func (s *Service) RecordPayment(ctx context.Context, fromUserID int64, req *RecordPaymentRequest) (*Payment, error) {
	if fromUserID == req.ToUserID {
		return nil, ErrCannotPaySelf
	}
	if req.Amount <= 0 {
		return nil, ErrNonPositiveAmount
	}

	grp, err := s.groupRepo.GetByID(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if grp == nil {
		return nil, group.ErrGroupNotFound
	}
	if req.Currency == "" {
		req.Currency = grp.DefaultCurrency
	}

	payment, err := s.repo.Create(ctx, fromUserID, req)
	if err != nil {
		return nil, err
	}

	// Inbox writes are best effort; losing one never fails the payment.
	names, err := s.repo.UserNames(ctx, []int64{fromUserID})
	if err == nil {
		_, err = s.notifier.NotifyPaymentRecorded(ctx, req.ToUserID, names[fromUserID], payment.Amount, payment.Currency, payment.ID)
	}
	if err != nil {
		slog.Warn("payment notification failed", "payment_id", payment.ID, "recipient_id", req.ToUserID, "error", err)
	}

	return payment, nil
}

// ListPayments retrieves a group's recorded payments
func (s *Service) ListPayments(ctx context.Context, groupID int64, page, perPage int) ([]*Payment, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}

// ledger loads a group's non-deleted expenses and recorded payments as
// engine inputs, keyed by user ID throughout.
func (s *Service) ledger(ctx context.Context, groupID int64) ([]balance.Entry, []balance.Payment, error) {
	grp, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	if grp == nil {
		return nil, nil, group.ErrGroupNotFound
	}

	records, err := s.expenseRepo.ListActiveRecords(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	entries := make([]balance.Entry, len(records))
	for i, rec := range records {
		entries[i] = balance.Entry{
			PayerID:  rec.PayerID,
			Amount:   rec.Amount,
			Currency: rec.Currency,
			Shares:   rec.Shares,
		}
	}

	recorded, err := s.repo.ListAllByGroupID(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	payments := make([]balance.Payment, len(recorded))
	for i, p := range recorded {
		payments[i] = balance.Payment{
			FromUserID: p.FromUserID,
			ToUserID:   p.ToUserID,
			Amount:     p.Amount,
			Currency:   p.Currency,
		}
	}

	return entries, payments, nil
}

// balanceViews attaches display names to engine balances
func balanceViews(balances []balance.Balance, names map[int64]string) []BalanceView {
	views := make([]BalanceView, len(balances))
	for i, b := range balances {
		views[i] = BalanceView{
			UserID:   b.UserID,
			Name:     names[b.UserID],
			Net:      b.Net,
			Currency: b.Currency,
		}
	}
	return views
}

// GroupBalances computes a group's per-person net positions, one set per
// currency. Balances are derived data, recomputed on every call.
func (s *Service) GroupBalances(ctx context.Context, groupID int64) ([]BalanceView, error) {
	entries, payments, err := s.ledger(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances := balance.ComputeBalances(entries, payments)

	ids := make([]int64, len(balances))
	for i, b := range balances {
		ids[i] = b.UserID
	}
	names, err := s.repo.UserNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	return balanceViews(balances, names), nil
}

// Plan computes a fresh settlement plan for a group: per currency, the
// greedy matching of largest creditors against largest debtors. When
// displayCurrency is non-empty each suggested transfer is annotated with a
// converted amount for presentation; balance math itself never crosses
// currencies.
func (s *Service) Plan(ctx context.Context, groupID int64, displayCurrency string) (*PlanResponse, error) {
	entries, payments, err := s.ledger(ctx, groupID)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()

	type currencyResult struct {
		currency    string
		balances    []balance.Balance
		settlements []balance.Settlement
	}
	var results []currencyResult
	var ids []int64

	for _, g := range balance.GroupByCurrency(entries, payments) {
		balances := balance.Compute(g.Currency, g.Entries, g.Payments)
		settlements, err := balance.Plan(g.Currency, balances)
		if err != nil {
			// An unbalanced ledger is a programming-error-class failure;
			// surface it rather than return a partial plan.
			slog.Error("settlement planning failed",
				"group_id", groupID,
				"currency", g.Currency,
				"run_id", runID,
				"error", err,
			)
			return nil, err
		}

		for _, b := range balances {
			ids = append(ids, b.UserID)
		}
		results = append(results, currencyResult{
			currency:    g.Currency,
			balances:    balances,
			settlements: settlements,
		})
	}

	names, err := s.repo.UserNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	plan := &PlanResponse{
		RunID:   runID,
		GroupID: groupID,
	}
	for _, res := range results {
		transfers := make([]SuggestedTransfer, len(res.settlements))
		for i, st := range res.settlements {
			transfers[i] = SuggestedTransfer{
				FromUserID: st.FromUserID,
				FromName:   names[st.FromUserID],
				ToUserID:   st.ToUserID,
				ToName:     names[st.ToUserID],
				Amount:     st.Amount,
				Currency:   st.Currency,
			}
			if displayCurrency != "" && displayCurrency != st.Currency {
				transfers[i].DisplayAmount = s.rates.Convert(st.Amount, st.Currency, displayCurrency)
				transfers[i].DisplayCurrency = displayCurrency
			}
		}

		plan.Currencies = append(plan.Currencies, CurrencyPlan{
			Currency:    res.currency,
			Balances:    balanceViews(res.balances, names),
			Settlements: transfers,
		})
	}

	slog.Debug("settlement plan computed",
		"group_id", groupID,
		"run_id", runID,
		"currencies", len(plan.Currencies),
	)

	return plan, nil
}
