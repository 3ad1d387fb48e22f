package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/NipunKodeboyena/KnockKnock/internal/domain/dispatch"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/errors"
)

// SentEmailRepository implements dispatch.Repository
type SentEmailRepository struct {
	db *sql.DB
}

// NewSentEmailRepository creates a new sent-mail log repository
func NewSentEmailRepository(db *sql.DB) dispatch.Repository {
	return &SentEmailRepository{db: db}
}

// Create records a delivered message
func (r *SentEmailRepository) Create(ctx context.Context, e *dispatch.SentEmail) error {
	defer observe("insert", "sent_emails")()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.SentAt.IsZero() {
		e.SentAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sent_emails (id, user_id, recipient, subject, body, gmail_message_id, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.UserID, e.Recipient, e.Subject, e.Body, e.GmailMessageID, e.SentAt.Unix())
	if err != nil {
		return errors.DatabaseError("Failed to record sent email", err)
	}
	return nil
}

// ListByUser returns a user's most recent sent emails, newest first
func (r *SentEmailRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*dispatch.SentEmail, error) {
	defer observe("select", "sent_emails")()

	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, recipient, subject, body, gmail_message_id, sent_at
		FROM sent_emails
		WHERE user_id = $1
		ORDER BY sent_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list sent emails", err)
	}
	defer rows.Close()

	var out []*dispatch.SentEmail
	for rows.Next() {
		var e dispatch.SentEmail
		var messageID sql.NullString
		var sentAt int64
		if err := rows.Scan(&e.ID, &e.UserID, &e.Recipient, &e.Subject, &e.Body, &messageID, &sentAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan sent email", err)
		}
		e.GmailMessageID = messageID.String
		e.SentAt = time.Unix(sentAt, 0)
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to list sent emails", err)
	}

	return out, nil
}
