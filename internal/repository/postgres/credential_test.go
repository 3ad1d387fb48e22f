package postgres

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"testing"

	"github.com/NipunKodeboyena/KnockKnock/internal/domain/credential"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/crypto"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/errors"
	"github.com/NipunKodeboyena/KnockKnock/internal/testutil"
)

func TestCredentialRepository_GetByUserID(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	if _, err := db.Exec(`INSERT INTO google_tokens (user_id, refresh_token) VALUES ($1, $2)`, "user-1", "1//plain"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	repo := NewCredentialRepository(db, nil)
	ctx := context.Background()

	c, err := repo.GetByUserID(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetByUserID() error = %v", err)
	}
	if c.RefreshToken != "1//plain" {
		t.Errorf("RefreshToken = %q, want 1//plain", c.RefreshToken)
	}

	if _, err := repo.GetByUserID(ctx, "user-2"); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("GetByUserID(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestCredentialRepository_Encrypted(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	enc, err := crypto.NewTokenEncryptor(base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef")))
	if err != nil {
		t.Fatalf("NewTokenEncryptor() error = %v", err)
	}
	sealed, _ := enc.Encrypt("1//sealed")

	db.Exec(`INSERT INTO google_tokens (user_id, refresh_token) VALUES ($1, $2)`, "user-1", sealed)
	db.Exec(`INSERT INTO google_tokens (user_id, refresh_token) VALUES ($1, $2)`, "user-2", "legacy-plaintext")

	repo := NewCredentialRepository(db, enc)
	ctx := context.Background()

	c, err := repo.GetByUserID(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetByUserID() error = %v", err)
	}
	if c.RefreshToken != "1//sealed" {
		t.Errorf("RefreshToken = %q, want 1//sealed", c.RefreshToken)
	}

	if _, err := repo.GetByUserID(ctx, "user-2"); !stderrors.Is(err, credential.ErrMalformed) {
		t.Errorf("GetByUserID(plaintext) error = %v, want ErrMalformed", err)
	}
}
