package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/NipunKodeboyena/KnockKnock/internal/domain/account"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/errors"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/metrics"
)

// AccountRepository implements account.Repository
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *sql.DB) account.Repository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	defer observe("insert", "accounts")()

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Plan == "" {
		a.Plan = account.PlanFree
	}
	if a.LastRefresh == "" {
		a.LastRefresh = now.UTC().Format(account.DateLayout)
	}

	query := `
		INSERT INTO accounts (id, plan, credits, last_refresh, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Plan, a.Credits, a.LastRefresh, now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create account", err)
	}
	return nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	defer observe("select", "accounts")()

	query := `
		SELECT id, plan, credits, last_refresh, created_at, updated_at
		FROM accounts WHERE id = $1
	`

	var a account.Account
	var createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Plan, &a.Credits, &a.LastRefresh, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get account", err)
	}

	a.CreatedAt = time.Unix(createdAt, 0)
	a.UpdatedAt = time.Unix(updatedAt, 0)

	return &a, nil
}

// ResetCredits applies a monthly refresh if no other request got there first
func (r *AccountRepository) ResetCredits(ctx context.Context, id string, credits int, refreshedOn, previousRefresh string) (bool, error) {
	defer observe("update", "accounts")()

	query := `
		UPDATE accounts
		SET credits = $1, last_refresh = $2, updated_at = $3
		WHERE id = $4 AND last_refresh = $5
	`

	result, err := r.db.ExecContext(ctx, query, credits, refreshedOn, time.Now().Unix(), id, previousRefresh)
	if err != nil {
		return false, errors.DatabaseError("Failed to refresh credits", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, errors.DatabaseError("Failed to refresh credits", err)
	}

	return rows == 1, nil
}

func observe(operation, table string) func() {
	start := time.Now()
	return func() {
		metrics.RecordDBQuery(operation, table, time.Since(start))
	}
}
