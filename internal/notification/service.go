package notification

import (
	"context"
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("not the recipient of this notification")
)

// Service handles notification business logic. Notifications are an in-DB
// inbox: the expense and settlement flows write entries, users read and
// acknowledge them over the API. There is no push delivery.
type Service struct {
	repo *Repository
}

// NewService creates a new notification service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// ListByRecipientID retrieves a user's notifications with pagination
func (s *Service) ListByRecipientID(ctx context.Context, recipientID int64, page, perPage int, unreadOnly bool) ([]*Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByRecipientID(ctx, recipientID, perPage, offset, unreadOnly)
}

// MarkAsRead marks a notification as read. Only the recipient may do it.
func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotificationNotFound
	}
	if n.RecipientID != userID {
		return ErrNotRecipient
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all of a user's notifications as read
func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// CountUnread returns the number of unread notifications for a user
func (s *Service) CountUnread(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// expenseAddedMessage renders the inbox line for a new expense share
func expenseAddedMessage(payerName string, share float64, currency string) string {
	return fmt.Sprintf("%s added an expense; your share is %.2f %s", payerName, share, currency)
}

// paymentRecordedMessage renders the inbox line for a received payment
func paymentRecordedMessage(senderName string, amount float64, currency string) string {
	return fmt.Sprintf("%s recorded a payment of %.2f %s to you", senderName, amount, currency)
}

// NotifyExpenseAdded writes an inbox entry for a participant who owes a
// share of a newly created expense
func (s *Service) NotifyExpenseAdded(ctx context.Context, recipientID int64, payerName string, share float64, currency string, expenseID int64) (*Notification, error) {
	return s.repo.Create(ctx, recipientID, KindExpenseAdded, expenseAddedMessage(payerName, share, currency), &expenseID)
}

// NotifyPaymentRecorded writes an inbox entry for the receiver of a
// recorded payment
func (s *Service) NotifyPaymentRecorded(ctx context.Context, recipientID int64, senderName string, amount float64, currency string, paymentID int64) (*Notification, error) {
	return s.repo.Create(ctx, recipientID, KindPaymentRecorded, paymentRecordedMessage(senderName, amount, currency), &paymentID)
}
