package account

import "context"

// Repository defines the interface for account data access
type Repository interface {
	// Create inserts an account. Accounts are normally provisioned out-of-band.
	Create(ctx context.Context, a *Account) error

	// GetByID retrieves an account by ID
	GetByID(ctx context.Context, id string) (*Account, error)

	// ResetCredits sets credits and last_refresh only if last_refresh still
	// equals previousRefresh. It reports whether the row was updated.
	ResetCredits(ctx context.Context, id string, credits int, refreshedOn, previousRefresh string) (bool, error)
}
