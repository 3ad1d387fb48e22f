package credential

import "context"

// Repository reads linked Gmail credentials
type Repository interface {
	// GetByUserID returns the user's credential or a NotFound error
	GetByUserID(ctx context.Context, userID string) (*Credential, error)
}
