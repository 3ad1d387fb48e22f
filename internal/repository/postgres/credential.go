package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/NipunKodeboyena/KnockKnock/internal/domain/credential"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/errors"
)

// TokenDecryptor opens refresh tokens sealed at rest
type TokenDecryptor interface {
	Decrypt(ciphertext string) (string, error)
}

// CredentialRepository implements credential.Repository
type CredentialRepository struct {
	db        *sql.DB
	decryptor TokenDecryptor
}

// NewCredentialRepository creates a credential repository. decryptor may be
// nil when tokens are stored in plaintext.
func NewCredentialRepository(db *sql.DB, decryptor TokenDecryptor) credential.Repository {
	return &CredentialRepository{db: db, decryptor: decryptor}
}

// GetByUserID retrieves the Gmail refresh token linked to a user
func (r *CredentialRepository) GetByUserID(ctx context.Context, userID string) (*credential.Credential, error) {
	defer observe("select", "google_tokens")()

	query := `SELECT user_id, refresh_token FROM google_tokens WHERE user_id = $1`

	var c credential.Credential
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&c.UserID, &c.RefreshToken)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Credential")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get credential", err)
	}

	if r.decryptor != nil && c.RefreshToken != "" {
		plain, err := r.decryptor.Decrypt(c.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", credential.ErrMalformed, err)
		}
		c.RefreshToken = plain
	}

	return &c, nil
}
