package expense

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bodhiforge/fintrack-ai-sub000/internal/exclusion"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/expense/split"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/group"
	"github.com/bodhiforge/fintrack-ai-sub000/internal/notification"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrExpenseDeleted  = errors.New("expense has been deleted")
	ErrNotPayer        = errors.New("only the payer can delete an expense")
	ErrPayerNotMember  = errors.New("payer is not a member of this group")
)

// Service handles expense business logic
type Service struct {
	repo         *Repository
	groupRepo    *group.Repository
	splitFactory *split.Factory
	notifier     *notification.Service
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, groupRepo *group.Repository, splitFactory *split.Factory, notifier *notification.Service) *Service {
	return &Service{
		repo:         repo,
		groupRepo:    groupRepo,
		splitFactory: splitFactory,
		notifier:     notifier,
	}
}

// buildSplitRequest maps an incoming expense onto the split engine's
// ID-keyed request. The group's member roster (in join order) is the
// participant roster; display names are used only to resolve exclusion
// phrasing in the free-form note, and a name shared by several members
// excludes all of them. Share inputs and explicit exclusions referencing
// non-members are dropped.
func buildSplitRequest(members []*group.Member, payerID int64, req *CreateExpenseRequest) (split.Request, error) {
	roster := make([]int64, len(members))
	names := make([]string, len(members))
	idsByName := make(map[string][]int64, len(members))
	isMember := make(map[int64]bool, len(members))
	for i, m := range members {
		roster[i] = m.UserID
		names[i] = m.Name
		idsByName[m.Name] = append(idsByName[m.Name], m.UserID)
		isMember[m.UserID] = true
	}

	if !isMember[payerID] {
		return split.Request{}, ErrPayerNotMember
	}

	excluded := make([]int64, 0, len(req.ExcludedUserIDs))
	for _, id := range req.ExcludedUserIDs {
		if isMember[id] {
			excluded = append(excluded, id)
		}
	}
	for _, name := range exclusion.Extract(req.Note, names) {
		excluded = append(excluded, idsByName[name]...)
	}

	var custom map[int64]float64
	if len(req.Shares) > 0 {
		custom = make(map[int64]float64, len(req.Shares))
		for _, share := range req.Shares {
			if isMember[share.UserID] {
				custom[share.UserID] = share.Amount
			}
		}
	}

	return split.Request{
		Total:        req.Amount,
		PayerID:      payerID,
		Participants: roster,
		Excluded:     excluded,
		Shares:       custom,
	}, nil
}

// Create records a new expense. Split validation must pass before anything
// is persisted; on success every participant who owes a share is notified.
func (s *Service) Create(ctx context.Context, payerID int64, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
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

	members, err := s.groupRepo.ListMembers(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	splitReq, err := buildSplitRequest(members, payerID, req)
	if err != nil {
		return nil, err
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitMode)
	if err != nil {
		return nil, err
	}

	shares, err := strategy.Shares(splitReq)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateWithSplits(ctx, payerID, req, shares)
	if err != nil {
		return nil, err
	}

	// Inbox writes are best effort; losing one never rolls back the expense.
	payerName := ""
	for _, m := range members {
		if m.UserID == payerID {
			payerName = m.Name
		}
	}
	for userID, share := range shares {
		if userID == payerID {
			continue
		}
		if _, err := s.notifier.NotifyExpenseAdded(ctx, userID, payerName, share, req.Currency, created.Expense.ID); err != nil {
			slog.Warn("expense notification failed", "expense_id", created.Expense.ID, "recipient_id", userID, "error", err)
		}
	}

	return created, nil
}

// GetByID retrieves an expense with its splits
func (s *Service) GetByID(ctx context.Context, id int64) (*ExpenseWithSplits, error) {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.repo.GetSplits(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// ListByGroupID retrieves a group's non-deleted expenses
func (s *Service) ListByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}

// Delete logically removes an expense from balance computation. Only the
// payer can delete, and only once.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}
	if expense.PayerID != userID {
		return ErrNotPayer
	}
	if expense.DeletedAt != nil {
		return ErrExpenseDeleted
	}

	return s.repo.SoftDelete(ctx, id)
}
