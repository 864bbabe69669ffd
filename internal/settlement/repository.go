package settlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles payment data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a recorded payment
func (r *Repository) Create(ctx context.Context, fromUserID int64, req *RecordPaymentRequest) (*Payment, error) {
	query := `
		INSERT INTO payments (group_id, from_user_id, to_user_id, amount, currency, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, group_id, from_user_id, to_user_id, amount, currency, note, created_at
	`

	payment := &Payment{}
	err := r.db.QueryRowContext(ctx, query,
		req.GroupID, fromUserID, req.ToUserID, req.Amount, req.Currency, req.Note,
	).Scan(
		&payment.ID,
		&payment.GroupID,
		&payment.FromUserID,
		&payment.ToUserID,
		&payment.Amount,
		&payment.Currency,
		&payment.Note,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	return payment, nil
}

// ListByGroupID retrieves a group's recorded payments, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Payment, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM payments WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	query := `
		SELECT p.id, p.group_id, p.from_user_id, p.to_user_id, p.amount, p.currency,
		       p.note, p.created_at, sender.name, receiver.name
		FROM payments p
		JOIN users sender ON p.from_user_id = sender.id
		JOIN users receiver ON p.to_user_id = receiver.id
		WHERE p.group_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		payment := &Payment{}
		if err := rows.Scan(
			&payment.ID,
			&payment.GroupID,
			&payment.FromUserID,
			&payment.ToUserID,
			&payment.Amount,
			&payment.Currency,
			&payment.Note,
			&payment.CreatedAt,
			&payment.FromName,
			&payment.ToName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, total, nil
}

// ListAllByGroupID retrieves every recorded payment of a group in creation
// order, for balance computation. Only IDs and amounts matter here.
func (r *Repository) ListAllByGroupID(ctx context.Context, groupID int64) ([]*Payment, error) {
	query := `
		SELECT id, group_id, from_user_id, to_user_id, amount, currency, note, created_at
		FROM payments
		WHERE group_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		payment := &Payment{}
		if err := rows.Scan(
			&payment.ID,
			&payment.GroupID,
			&payment.FromUserID,
			&payment.ToUserID,
			&payment.Amount,
			&payment.Currency,
			&payment.Note,
			&payment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, nil
}

// UserNames resolves display names for a set of user IDs. Users that no
// longer exist are simply absent from the result.
func (r *Repository) UserNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	query := `SELECT id, name FROM users WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan user name: %w", err)
		}
		names[id] = name
	}

	return names, nil
}
