package router

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NipunKodeboyena/KnockKnock/internal/api/handlers"
	"github.com/NipunKodeboyena/KnockKnock/internal/auth"
	"github.com/NipunKodeboyena/KnockKnock/internal/config"
	"github.com/NipunKodeboyena/KnockKnock/internal/domain/account"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/logger"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/validator"
	"github.com/NipunKodeboyena/KnockKnock/internal/services"
	"github.com/NipunKodeboyena/KnockKnock/internal/testutil"
)

type harness struct {
	handler   http.Handler
	accounts  *testutil.MockAccountRepository
	llm       *testutil.MockTextGenerator
	creds     *testutil.MockCredentialRepository
	exchanger *testutil.MockTokenExchanger
	transport *testutil.MockMailTransport
	logs      bytes.Buffer
}

func newHarness(t *testing.T, jwtSecret string) *harness {
	t.Helper()

	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.CleanupDB(db) })

	today := time.Now().UTC().Format(account.DateLayout)
	h := &harness{
		accounts: testutil.NewMockAccountRepository(
			&account.Account{ID: "u-rich", Plan: account.PlanFree, Credits: 5, LastRefresh: today},
			&account.Account{ID: "u-broke", Plan: account.PlanPro, Credits: 0, LastRefresh: today},
		),
		llm:       &testutil.MockTextGenerator{Response: "Dear Acme recruiter"},
		creds:     testutil.NewMockCredentialRepository(),
		exchanger: &testutil.MockTokenExchanger{AccessToken: "ya29"},
		transport: &testutil.MockMailTransport{MessageID: "m-1"},
	}
	h.creds.Tokens["u-rich"] = "1//linked"

	log := logger.New(logger.Config{Level: "info", Format: "json", Output: &h.logs})
	credits := services.NewCreditService(h.accounts, services.DefaultCreditPolicy(), log)
	gen := services.NewGenerationService(h.accounts, credits, testutil.NewMockGenerationRepository(h.accounts), h.llm, log)
	disp := services.NewDispatchService(h.creds, h.exchanger, h.transport, nil, log)

	cfg := &config.Config{
		Server: config.ServerConfig{AllowedOrigins: []string{"*"}, RateLimitRPS: 1000, RateLimitBurst: 1000},
		Auth:   config.AuthConfig{JWTSecret: jwtSecret},
	}

	h.handler = New(cfg, log, &Handlers{
		Health: handlers.NewHealthHandler(db, log),
		Email:  handlers.NewEmailHandler(gen, disp, log, validator.New()),
	})
	return h
}

func (h *harness) do(t *testing.T, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)

	var out map[string]interface{}
	json.Unmarshal(rr.Body.Bytes(), &out)
	return rr, out
}

func errorCode(body map[string]interface{}) string {
	e, _ := body["error"].(map[string]interface{})
	code, _ := e["code"].(string)
	return code
}

func TestRoot(t *testing.T) {
	h := newHarness(t, "")
	rr, body := h.do(t, http.MethodGet, "/", nil, "")
	if rr.Code != http.StatusOK || body["message"] == "" || body["message"] == nil {
		t.Errorf("GET / = %d %v", rr.Code, body)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestGenerate(t *testing.T) {
	valid := map[string]string{"user_id": "u-rich", "prompt": "I like Go", "job_title": "Intern", "company": "Acme"}

	tests := []struct {
		name       string
		body       interface{}
		llmErr     error
		wantStatus int
		wantCode   string
	}{
		{"success", valid, nil, http.StatusOK, ""},
		{"malformed json", `{"user_id":`, nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"missing job title", map[string]string{"user_id": "u-rich", "company": "Acme"}, nil, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"blank company", map[string]string{"user_id": "u-rich", "job_title": "Intern", "company": "  "}, nil, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown user", map[string]string{"user_id": "ghost", "job_title": "Intern", "company": "Acme"}, nil, http.StatusNotFound, "NOT_FOUND"},
		{"no credits", map[string]string{"user_id": "u-broke", "job_title": "Intern", "company": "Acme"}, nil, http.StatusForbidden, "INSUFFICIENT_CREDITS"},
		{"llm failure", valid, stderrors.New("429 from upstream"), http.StatusInternalServerError, "GENERATION_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "")
			h.llm.Err = tt.llmErr

			rr, body := h.do(t, http.MethodPost, "/generate", tt.body, "")
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %v)", rr.Code, tt.wantStatus, body)
			}
			if tt.wantCode != "" {
				if got := errorCode(body); got != tt.wantCode {
					t.Errorf("error code = %q, want %q", got, tt.wantCode)
				}
				return
			}
			if body["email"] != "Dear Acme recruiter" || body["remaining_credits"] != float64(4) {
				t.Errorf("body = %v", body)
			}
		})
	}
}

func TestSendEmail(t *testing.T) {
	valid := map[string]string{"to": "hr@acme.com", "subject": "Hi", "body": "Hello", "user_id": "u-rich"}

	tests := []struct {
		name        string
		body        interface{}
		exchangeErr error
		sendErr     error
		wantStatus  int
		wantCode    string
	}{
		{"success", valid, nil, nil, http.StatusOK, ""},
		{"invalid recipient", map[string]string{"to": "not-an-email", "user_id": "u-rich"}, nil, nil, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"no linked account", map[string]string{"to": "hr@acme.com", "user_id": "u-broke"}, nil, nil, http.StatusForbidden, "NO_LINKED_ACCOUNT"},
		{"refresh rejected", valid, stderrors.New("invalid_grant"), nil, http.StatusInternalServerError, "AUTH_REFRESH_FAILED"},
		{"transport failure", valid, nil, stderrors.New("quota"), http.StatusInternalServerError, "DISPATCH_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "")
			h.exchanger.Err = tt.exchangeErr
			h.transport.Err = tt.sendErr

			rr, body := h.do(t, http.MethodPost, "/send-email", tt.body, "")
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %v)", rr.Code, tt.wantStatus, body)
			}
			if tt.wantCode != "" {
				if got := errorCode(body); got != tt.wantCode {
					t.Errorf("error code = %q, want %q", got, tt.wantCode)
				}
				return
			}
			if body["status"] != "sent" {
				t.Errorf("body = %v, want status sent", body)
			}
		})
	}
}

func TestCallerAuthentication(t *testing.T) {
	h := newHarness(t, "jwt-secret")
	own, _ := auth.MintToken("u-rich", "jwt-secret", time.Minute)
	other, _ := auth.MintToken("u-broke", "jwt-secret", time.Minute)
	req := map[string]string{"user_id": "u-rich", "job_title": "Intern", "company": "Acme"}

	rr, _ := h.do(t, http.MethodPost, "/generate", req, "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", rr.Code)
	}

	rr, body := h.do(t, http.MethodPost, "/generate", req, other)
	if rr.Code != http.StatusForbidden || errorCode(body) != "FORBIDDEN" {
		t.Errorf("foreign token = %d %v, want 403 FORBIDDEN", rr.Code, body)
	}
	if h.llm.Calls != 0 {
		t.Errorf("LLM called %d times for a rejected caller", h.llm.Calls)
	}

	rr, _ = h.do(t, http.MethodPost, "/generate", req, own)
	if rr.Code != http.StatusOK {
		t.Errorf("own token status = %d, want 200", rr.Code)
	}

	// public routes stay open
	rr, _ = h.do(t, http.MethodGet, "/", nil, "")
	if rr.Code != http.StatusOK {
		t.Errorf("GET / status = %d, want 200", rr.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHarness(t, "")

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rr, _ := h.do(t, http.MethodGet, path, nil, "")
		if rr.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rr.Code)
		}
	}
}

func TestReadyz_DatabaseDown(t *testing.T) {
	db := testutil.NewTestDB(t)
	db.Close()

	log := logger.Nop()
	r := New(&config.Config{Server: config.ServerConfig{AllowedOrigins: []string{"*"}, RateLimitRPS: 10, RateLimitBurst: 10}}, log, &Handlers{
		Health: handlers.NewHealthHandler(db, log),
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /readyz = %d, want 503", rr.Code)
	}
}

// requestLine returns the access log entry written for path
func (h *harness) requestLine(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	for _, raw := range strings.Split(strings.TrimSpace(h.logs.String()), "\n") {
		var line map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &line); err != nil {
			continue
		}
		if line["message"] == "HTTP request" && line["path"] == path {
			return line
		}
	}
	t.Fatalf("no request log line for %s in:\n%s", path, h.logs.String())
	return nil
}

func TestRequestLog_CarriesHandlerFields(t *testing.T) {
	const secret = "log-secret"
	h := newHarness(t, secret)
	token, _ := auth.MintToken("u-rich", secret, time.Minute)

	rr, _ := h.do(t, http.MethodPost, "/generate",
		map[string]string{"user_id": "u-rich", "job_title": "Intern", "company": "Acme"}, token)
	if rr.Code != http.StatusOK {
		t.Fatalf("POST /generate = %d", rr.Code)
	}

	line := h.requestLine(t, "/generate")
	if line["user_id"] != "u-rich" {
		t.Errorf("user_id = %v, want u-rich", line["user_id"])
	}
	if line["auth_subject"] != "u-rich" {
		t.Errorf("auth_subject = %v, want u-rich", line["auth_subject"])
	}
	if line["status"] != float64(http.StatusOK) || line["request_id"] == "" {
		t.Errorf("line = %v", line)
	}
}

func TestRequestLog_SendEmail(t *testing.T) {
	h := newHarness(t, "")

	rr, _ := h.do(t, http.MethodPost, "/send-email",
		map[string]string{"user_id": "u-rich", "to": "hr@acme.com", "subject": "Hi", "body": "Hello"}, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("POST /send-email = %d", rr.Code)
	}
	if line := h.requestLine(t, "/send-email"); line["user_id"] != "u-rich" {
		t.Errorf("user_id = %v, want u-rich", line["user_id"])
	}
}

func TestReadyz_Body(t *testing.T) {
	h := newHarness(t, "")

	rr, body := h.do(t, http.MethodGet, "/readyz", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /readyz = %d", rr.Code)
	}
	data, _ := body["data"].(map[string]interface{})
	if data["status"] != "ready" || data["database"] != "connected" || data["latency"] == nil {
		t.Errorf("data = %v", data)
	}
}
