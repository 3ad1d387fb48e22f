package generation

import "context"

// Repository persists generation log entries
type Repository interface {
	// DebitAndRecord spends one credit and appends e in a single transaction.
	// It returns the remaining balance, or account.ErrInsufficientCredits when
	// the account had nothing left to spend.
	DebitAndRecord(ctx context.Context, userID string, e *Entry) (int, error)

	// ListByUser returns the most recent entries for a user
	ListByUser(ctx context.Context, userID string, limit int) ([]*Entry, error)
}
