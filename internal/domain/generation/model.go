package generation

import (
	"errors"
	"time"
)

// Entry is one append-only generation log row
type Entry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	GeneratedText string    `json:"generated_text"`
	Subject       string    `json:"subject"`
	Body          string    `json:"body"`
	SentAt        time.Time `json:"sent_at"`
}

// GenerateInput is a generation request
type GenerateInput struct {
	UserID   string
	Prompt   string
	JobTitle string
	Company  string
}

// GenerateResult is the outcome of a successful generation
type GenerateResult struct {
	Email            string `json:"email"`
	RemainingCredits int    `json:"remaining_credits"`
}

// ErrEmptyCompletion means the model answered without usable text
var ErrEmptyCompletion = errors.New("completion contained no text")
