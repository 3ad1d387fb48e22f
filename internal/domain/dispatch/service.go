package dispatch

import "context"

// Service sends email through the user's linked Gmail account
type Service interface {
	Send(ctx context.Context, in SendInput) error
}

// TokenExchanger trades a refresh token for a short-lived access token
type TokenExchanger interface {
	Exchange(ctx context.Context, refreshToken string) (string, error)
}

// MailTransport submits a base64url-encoded RFC 2822 message and returns the provider message id
type MailTransport interface {
	Send(ctx context.Context, accessToken, raw string) (string, error)
}
