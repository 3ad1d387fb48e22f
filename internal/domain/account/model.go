package account

import (
	"errors"
	"time"
)

// Account is a KnockKnock user as seen by credit accounting
type Account struct {
	ID      string `json:"id"`
	Plan    string `json:"plan"`
	Credits int    `json:"credits"`
	// LastRefresh is the YYYY-MM-DD date of the last allotment reset
	LastRefresh string    `json:"last_refresh"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Plan types
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// DateLayout is the storage format of LastRefresh
const DateLayout = "2006-01-02"

// ErrInsufficientCredits is returned by a conditional debit that found no credit to spend
var ErrInsufficientCredits = errors.New("insufficient credits")

// IsPaid reports whether the plan earns the paid allotment. Anything other
// than free counts as paid.
func (a *Account) IsPaid() bool {
	return a.Plan != PlanFree
}
