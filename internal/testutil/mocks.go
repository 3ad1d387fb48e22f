package testutil

import (
	"context"
	"sync"

	"github.com/NipunKodeboyena/KnockKnock/internal/domain/account"
	"github.com/NipunKodeboyena/KnockKnock/internal/domain/credential"
	"github.com/NipunKodeboyena/KnockKnock/internal/domain/dispatch"
	"github.com/NipunKodeboyena/KnockKnock/internal/domain/generation"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/errors"
)

// MockAccountRepository is a mock implementation of account.Repository
type MockAccountRepository struct {
	mu          sync.Mutex
	Accounts    map[string]*account.Account
	GetError    error
	ResetError  error
	GetCalls    int
	ResetCalls  int
	CreateError error
}

func NewMockAccountRepository(accounts ...*account.Account) *MockAccountRepository {
	m := &MockAccountRepository{Accounts: make(map[string]*account.Account)}
	for _, a := range accounts {
		m.Accounts[a.ID] = a
	}
	return m
}

func (m *MockAccountRepository) Create(ctx context.Context, a *account.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	cp := *a
	m.Accounts[a.ID] = &cp
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetError != nil {
		return nil, m.GetError
	}
	a, ok := m.Accounts[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	cp := *a
	return &cp, nil
}

func (m *MockAccountRepository) ResetCredits(ctx context.Context, id string, credits int, refreshedOn, previousRefresh string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResetCalls++
	if m.ResetError != nil {
		return false, m.ResetError
	}
	a, ok := m.Accounts[id]
	if !ok || a.LastRefresh != previousRefresh {
		return false, nil
	}
	a.Credits = credits
	a.LastRefresh = refreshedOn
	return true, nil
}

// Stored returns the live stored account
func (m *MockAccountRepository) Stored(id string) *account.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Accounts[id]
}

// MockGenerationRepository debits against a MockAccountRepository
type MockGenerationRepository struct {
	mu          sync.Mutex
	Accounts    *MockAccountRepository
	Entries     []*generation.Entry
	RecordError error
	DebitCalls  int
}

func NewMockGenerationRepository(accounts *MockAccountRepository) *MockGenerationRepository {
	return &MockGenerationRepository{Accounts: accounts}
}

func (m *MockGenerationRepository) DebitAndRecord(ctx context.Context, userID string, e *generation.Entry) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DebitCalls++

	m.Accounts.mu.Lock()
	defer m.Accounts.mu.Unlock()

	a, ok := m.Accounts.Accounts[userID]
	if !ok || a.Credits < 1 {
		return 0, account.ErrInsufficientCredits
	}
	// a failed log write leaves the balance untouched
	if m.RecordError != nil {
		return 0, m.RecordError
	}
	a.Credits--
	e.UserID = userID
	m.Entries = append(m.Entries, e)
	return a.Credits, nil
}

func (m *MockGenerationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*generation.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*generation.Entry
	for i := len(m.Entries) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if m.Entries[i].UserID == userID {
			out = append(out, m.Entries[i])
		}
	}
	return out, nil
}

// MockCredentialRepository is a mock implementation of credential.Repository
type MockCredentialRepository struct {
	Tokens   map[string]string
	GetError error
	GetCalls int
}

func NewMockCredentialRepository() *MockCredentialRepository {
	return &MockCredentialRepository{Tokens: make(map[string]string)}
}

func (m *MockCredentialRepository) GetByUserID(ctx context.Context, userID string) (*credential.Credential, error) {
	m.GetCalls++
	if m.GetError != nil {
		return nil, m.GetError
	}
	tok, ok := m.Tokens[userID]
	if !ok {
		return nil, errors.NotFound("Credential")
	}
	return &credential.Credential{UserID: userID, RefreshToken: tok}, nil
}

// MockSentEmailRepository is a mock implementation of dispatch.Repository
type MockSentEmailRepository struct {
	mu          sync.Mutex
	Sent        []*dispatch.SentEmail
	CreateError error
}

func NewMockSentEmailRepository() *MockSentEmailRepository {
	return &MockSentEmailRepository{}
}

func (m *MockSentEmailRepository) Create(ctx context.Context, e *dispatch.SentEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Sent = append(m.Sent, e)
	return nil
}

func (m *MockSentEmailRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*dispatch.SentEmail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*dispatch.SentEmail
	for _, e := range m.Sent {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// MockTextGenerator is a mock implementation of generation.TextGenerator
type MockTextGenerator struct {
	mu         sync.Mutex
	Response   string
	Err        error
	Calls      int
	LastPrompt string
}

func (m *MockTextGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.LastPrompt = prompt
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// MockTokenExchanger is a mock implementation of dispatch.TokenExchanger
type MockTokenExchanger struct {
	AccessToken      string
	Err              error
	Calls            int
	LastRefreshToken string
}

func (m *MockTokenExchanger) Exchange(ctx context.Context, refreshToken string) (string, error) {
	m.Calls++
	m.LastRefreshToken = refreshToken
	if m.Err != nil {
		return "", m.Err
	}
	return m.AccessToken, nil
}

// MockMailTransport is a mock implementation of dispatch.MailTransport
type MockMailTransport struct {
	MessageID       string
	Err             error
	Calls           int
	LastAccessToken string
	LastRaw         string
}

func (m *MockMailTransport) Send(ctx context.Context, accessToken, raw string) (string, error) {
	m.Calls++
	m.LastAccessToken = accessToken
	m.LastRaw = raw
	if m.Err != nil {
		return "", m.Err
	}
	return m.MessageID, nil
}
