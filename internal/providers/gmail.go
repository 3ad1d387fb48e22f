package providers

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailTransport implements dispatch.MailTransport via users.messages.send
type GmailTransport struct {
	opts []option.ClientOption
}

// NewGmailTransport creates a Gmail transport. opts are appended after the
// per-call token source, e.g. option.WithEndpoint in tests.
func NewGmailTransport(opts ...option.ClientOption) *GmailTransport {
	return &GmailTransport{opts: opts}
}

// Send submits raw as the authenticated user and returns the Gmail message id
func (t *GmailTransport) Send(ctx context.Context, accessToken, raw string) (string, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})

	opts := append([]option.ClientOption{option.WithTokenSource(ts)}, t.opts...)
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("create gmail client: %w", err)
	}

	msg, err := svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gmail send: %w", err)
	}
	return msg.Id, nil
}
