package dispatch

import "time"

// SendInput is a dispatch request
type SendInput struct {
	UserID  string
	To      string
	Subject string
	Body    string
}

// SentEmail is an optional record of a delivered message
type SentEmail struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Recipient      string    `json:"recipient"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	GmailMessageID string    `json:"gmail_message_id"`
	SentAt         time.Time `json:"sent_at"`
}
