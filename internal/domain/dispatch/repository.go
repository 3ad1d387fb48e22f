package dispatch

import "context"

// Repository records sent emails
type Repository interface {
	Create(ctx context.Context, e *SentEmail) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*SentEmail, error)
}
