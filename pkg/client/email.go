package client

import (
	"context"
	"net/http"
)

// EmailService handles email generation and dispatch
type EmailService struct {
	client *Client
}

// Generate asks the server to write one outreach email, spending one credit
func (s *EmailService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	var out GenerateResponse
	if err := s.client.doRequest(ctx, http.MethodPost, "/generate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Send sends a message through the user's linked Gmail account
func (s *EmailService) Send(ctx context.Context, req SendRequest) (*SendResponse, error) {
	var out SendResponse
	if err := s.client.doRequest(ctx, http.MethodPost, "/send-email", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
