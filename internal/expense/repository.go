package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bodhiforge/fintrack-ai-sub000/internal/expense/split"
)

// Repository handles expense data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithSplits inserts an expense and its splits in one transaction
func (r *Repository) CreateWithSplits(ctx context.Context, payerID int64, req *CreateExpenseRequest, shares map[int64]float64) (*ExpenseWithSplits, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expenseQuery := `
		INSERT INTO expenses (group_id, payer_id, description, amount, currency, split_mode)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, group_id, payer_id, description, amount, currency, split_mode, created_at
	`

	expense := &Expense{}
	err = tx.QueryRowContext(ctx, expenseQuery,
		req.GroupID, payerID, req.Description, req.Amount, req.Currency, req.SplitMode,
	).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.Currency,
		&expense.SplitMode,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	splitQuery := `
		INSERT INTO expense_splits (expense_id, user_id, share)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var splits []*Split
	for userID, share := range shares {
		s := &Split{ExpenseID: expense.ID, UserID: userID, Share: share}
		if err := tx.QueryRowContext(ctx, splitQuery, expense.ID, userID, share).Scan(&s.ID); err != nil {
			return nil, fmt.Errorf("failed to create split: %w", err)
		}
		splits = append(splits, s)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// GetByID retrieves an expense by its ID, including deleted ones
func (r *Repository) GetByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.currency,
		       e.split_mode, e.created_at, e.deleted_at, u.name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&expense.Amount,
		&expense.Currency,
		&expense.SplitMode,
		&expense.CreatedAt,
		&expense.DeletedAt,
		&expense.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetSplits retrieves the splits for one expense
func (r *Repository) GetSplits(ctx context.Context, expenseID int64) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.user_id, s.share, u.name
		FROM expense_splits s
		JOIN users u ON s.user_id = u.id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		s := &Split{}
		if err := rows.Scan(&s.ID, &s.ExpenseID, &s.UserID, &s.Share, &s.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, s)
	}

	return splits, nil
}

// ListByGroupID retrieves a group's non-deleted expenses, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1 AND deleted_at IS NULL`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.currency,
		       e.split_mode, e.created_at, e.deleted_at, u.name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1 AND e.deleted_at IS NULL
		ORDER BY e.created_at DESC, e.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Description,
			&expense.Amount,
			&expense.Currency,
			&expense.SplitMode,
			&expense.CreatedAt,
			&expense.DeletedAt,
			&expense.PayerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, nil
}

// ActiveRecord is one non-deleted expense flattened for the balance engine,
// keyed by user ID so same-named members stay distinct in the ledger.
type ActiveRecord struct {
	PayerID   int64
	Amount    float64
	Currency  string
	Shares    map[int64]float64
	SplitMode split.Mode
}

// ListActiveRecords returns every non-deleted expense of a group with its
// shares, in creation order, ready to feed the balance aggregator.
func (r *Repository) ListActiveRecords(ctx context.Context, groupID int64) ([]*ActiveRecord, error) {
	query := `
		SELECT e.id, e.payer_id, e.amount, e.currency, e.split_mode, s.user_id, s.share
		FROM expenses e
		JOIN expense_splits s ON s.expense_id = e.id
		WHERE e.group_id = $1 AND e.deleted_at IS NULL
		ORDER BY e.id, s.id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active expenses: %w", err)
	}
	defer rows.Close()

	var records []*ActiveRecord
	byID := make(map[int64]*ActiveRecord)
	for rows.Next() {
		var (
			id, payerID, userID int64
			amount, share       float64
			currency            string
			mode                split.Mode
		)
		if err := rows.Scan(&id, &payerID, &amount, &currency, &mode, &userID, &share); err != nil {
			return nil, fmt.Errorf("failed to scan active expense: %w", err)
		}

		record, ok := byID[id]
		if !ok {
			record = &ActiveRecord{
				PayerID:   payerID,
				Amount:    amount,
				Currency:  currency,
				SplitMode: mode,
				Shares:    make(map[int64]float64),
			}
			byID[id] = record
			records = append(records, record)
		}
		record.Shares[userID] = share
	}

	return records, nil
}

// SoftDelete marks an expense as logically deleted. Deleted expenses stay
// in history but no longer contribute to balances.
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE expenses SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}
