package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
)

// GoogleOAuthConfig holds the OAuth client used to refresh user tokens
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	// TokenURL overrides google.Endpoint.TokenURL
	TokenURL   string
	HTTPClient *http.Client
}

// GoogleTokenExchanger implements dispatch.TokenExchanger
type GoogleTokenExchanger struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewGoogleTokenExchanger creates a token exchanger for the Gmail send scope
func NewGoogleTokenExchanger(cfg GoogleOAuthConfig) *GoogleTokenExchanger {
	endpoint := google.Endpoint
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}

	return &GoogleTokenExchanger{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			Scopes:       []string{gmail.GmailSendScope},
		},
		httpClient: cfg.HTTPClient,
	}
}

// Exchange returns a fresh access token for refreshToken
func (e *GoogleTokenExchanger) Exchange(ctx context.Context, refreshToken string) (string, error) {
	if e.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)
	}

	tok, err := e.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return "", fmt.Errorf("refresh google token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", errors.New("refresh google token: empty access token")
	}
	return tok.AccessToken, nil
}
