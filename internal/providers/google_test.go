package providers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/option"
)

func TestGoogleTokenExchanger_Exchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.Form.Get("grant_type") != "refresh_token" {
			t.Errorf("grant_type = %q", r.Form.Get("grant_type"))
		}
		w.Header().Set("Content-Type", "application/json")
		if r.Form.Get("refresh_token") != "1//good" {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":"invalid_grant","error_description":"Token has been expired or revoked."}`)
			return
		}
		io.WriteString(w, `{"access_token":"ya29.fresh","token_type":"Bearer","expires_in":3599}`)
	}))
	defer srv.Close()

	ex := NewGoogleTokenExchanger(GoogleOAuthConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		TokenURL:     srv.URL + "/token",
		HTTPClient:   srv.Client(),
	})

	got, err := ex.Exchange(context.Background(), "1//good")
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}
	if got != "ya29.fresh" {
		t.Errorf("Exchange() = %q, want ya29.fresh", got)
	}

	if _, err := ex.Exchange(context.Background(), "1//revoked"); err == nil {
		t.Error("Exchange(revoked) error = nil, want error")
	} else if !strings.Contains(err.Error(), "invalid_grant") {
		t.Errorf("Exchange(revoked) error = %v, want invalid_grant", err)
	}
}

func TestGmailTransport_Send(t *testing.T) {
	var gotRaw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/gmail/v1/users/me/messages/send") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Raw string `json:"raw"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotRaw = body.Raw

		w.Header().Set("Content-Type", "application/json")
		if body.Raw == "reject" {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":{"code":400,"message":"Invalid To header","status":"INVALID_ARGUMENT"}}`)
			return
		}
		io.WriteString(w, `{"id":"18c0ffee","threadId":"18c0ffee","labelIds":["SENT"]}`)
	}))
	defer srv.Close()

	tr := NewGmailTransport(option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))

	id, err := tr.Send(context.Background(), "ya29.fresh", "VG86IGFAYi5j")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if id != "18c0ffee" {
		t.Errorf("Send() id = %q", id)
	}
	if gotRaw != "VG86IGFAYi5j" {
		t.Errorf("raw = %q", gotRaw)
	}

	if _, err := tr.Send(context.Background(), "ya29.fresh", "reject"); err == nil {
		t.Error("Send(reject) error = nil, want error")
	}
}
