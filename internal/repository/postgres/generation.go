package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/NipunKodeboyena/KnockKnock/internal/domain/account"
	"github.com/NipunKodeboyena/KnockKnock/internal/domain/generation"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/errors"
)

// GenerationRepository implements generation.Repository
type GenerationRepository struct {
	db *sql.DB
}

// NewGenerationRepository creates a new generation log repository
func NewGenerationRepository(db *sql.DB) generation.Repository {
	return &GenerationRepository{db: db}
}

// DebitAndRecord spends one credit and writes the log row atomically
func (r *GenerationRepository) DebitAndRecord(ctx context.Context, userID string, e *generation.Entry) (int, error) {
	defer observe("debit", "generation_logs")()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.SentAt.IsZero() {
		e.SentAt = time.Now()
	}
	e.UserID = userID

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.DatabaseError("Failed to start transaction", err)
	}
	defer tx.Rollback()

	var remaining int
	err = tx.QueryRowContext(ctx, `
		UPDATE accounts
		SET credits = credits - 1, updated_at = $2
		WHERE id = $1 AND credits >= 1
		RETURNING credits
	`, userID, time.Now().Unix()).Scan(&remaining)
	if err == sql.ErrNoRows {
		return 0, account.ErrInsufficientCredits
	}
	if err != nil {
		return 0, errors.DatabaseError("Failed to debit credit", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO generation_logs (id, user_id, generated_text, subject, body, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.UserID, e.GeneratedText, e.Subject, e.Body, e.SentAt.Unix())
	if err != nil {
		return 0, errors.DatabaseError("Failed to record generation", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.DatabaseError("Failed to commit generation", err)
	}

	return remaining, nil
}

// ListByUser returns a user's most recent generations, newest first
func (r *GenerationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*generation.Entry, error) {
	defer observe("select", "generation_logs")()

	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, generated_text, subject, body, sent_at
		FROM generation_logs
		WHERE user_id = $1
		ORDER BY sent_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list generations", err)
	}
	defer rows.Close()

	var entries []*generation.Entry
	for rows.Next() {
		var e generation.Entry
		var sentAt int64
		if err := rows.Scan(&e.ID, &e.UserID, &e.GeneratedText, &e.Subject, &e.Body, &sentAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan generation", err)
		}
		e.SentAt = time.Unix(sentAt, 0)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to list generations", err)
	}

	return entries, nil
}
