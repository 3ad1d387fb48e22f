package account

import "context"

// CreditService applies the monthly allotment policy
type CreditService interface {
	// EffectiveBalance returns the spendable balance, persisting a refresh first when one is due
	EffectiveBalance(ctx context.Context, a *Account) (int, error)

	// Allotment returns the credits granted to plan on each refresh
	Allotment(plan string) int
}
