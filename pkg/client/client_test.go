package client

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/generate", func(w http.ResponseWriter, r *http.Request) {
		var req GenerateRequest
		json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		if req.UserID == "broke" {
			w.WriteHeader(http.StatusForbidden)
			io.WriteString(w, `{"success":false,"error":{"code":"INSUFFICIENT_CREDITS","message":"Not enough credits"}}`)
			return
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode(GenerateResponse{Email: "Hello " + req.Company, RemainingCredits: 9})
	})
	mux.HandleFunc("/send-email", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"success":false,"error":{"code":"NO_LINKED_ACCOUNT","message":"Missing refresh token for user"}}`)
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":{"status":"ok"}}`)
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, `upstream down`)
	})
	return httptest.NewServer(mux)
}

func TestEmailService_Generate(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL + "/"})
	c.SetToken("tok")

	res, err := c.Emails().Generate(context.Background(), GenerateRequest{UserID: "u1", JobTitle: "Intern", Company: "Acme"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Email != "Hello Acme" || res.RemainingCredits != 9 {
		t.Errorf("Generate() = %+v", res)
	}
}

func TestClient_Errors(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	ctx := context.Background()

	_, err := c.Emails().Generate(ctx, GenerateRequest{UserID: "broke"})
	var apiErr *APIError
	if !stderrors.As(err, &apiErr) || !apiErr.IsInsufficientCredits() || apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("Generate(broke) error = %v, want INSUFFICIENT_CREDITS", err)
	}

	_, err = c.Emails().Send(ctx, SendRequest{To: "a@b.co", UserID: "u1"})
	if !stderrors.As(err, &apiErr) || !apiErr.IsNoLinkedAccount() {
		t.Errorf("Send() error = %v, want NO_LINKED_ACCOUNT", err)
	}

	_, err = c.Ready(ctx)
	if !stderrors.As(err, &apiErr) || !apiErr.IsServerError() || apiErr.Message != "upstream down" {
		t.Errorf("Ready() error = %v, want raw 502", err)
	}

	h, err := c.Health(ctx)
	if err != nil || h.Data.Status != "ok" {
		t.Errorf("Health() = %+v, %v", h, err)
	}
}
