package config

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "DB_DRIVER", "DATABASE_URL", "CORS_ALLOWED_ORIGINS",
		"LLM_API_KEY", "GEMINI_API_KEY", "LLM_MODEL", "TOKEN_ENCRYPTION_KEY",
		"CREDITS_FREE_ALLOTMENT", "CREDITS_PAID_ALLOTMENT", "CREDITS_REFRESH_DAYS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q, want postgres", cfg.Database.Driver)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("Server.AllowedOrigins = %v, want [*]", cfg.Server.AllowedOrigins)
	}
	if cfg.Credits.FreeAllotment != 100 || cfg.Credits.PaidAllotment != 250 || cfg.Credits.RefreshPeriodDays != 30 {
		t.Errorf("Credits = %+v, want 100/250/30", cfg.Credits)
	}
	if cfg.LLM.Model != "gemini-2.0-flash" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("SERVER_WRITE_TIMEOUT", "2m")
	t.Setenv("LOG_SENT_EMAILS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if got := strings.Join(cfg.Server.AllowedOrigins, "|"); got != "https://app.example.com|https://admin.example.com" {
		t.Errorf("AllowedOrigins = %q", got)
	}
	if cfg.LLM.APIKey != "gem-key" {
		t.Errorf("LLM.APIKey = %q, want GEMINI_API_KEY fallback", cfg.LLM.APIKey)
	}
	if cfg.Server.WriteTimeout != 2*time.Minute {
		t.Errorf("WriteTimeout = %v, want 2m", cfg.Server.WriteTimeout)
	}
	if !cfg.Auth.LogSentEmails {
		t.Error("Auth.LogSentEmails = false, want true")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8000},
			Database: DatabaseConfig{Driver: "sqlite"},
			Credits:  CreditsConfig{FreeAllotment: 100, PaidAllotment: 250, RefreshPeriodDays: 30},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"bad driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"zero allotment", func(c *Config) { c.Credits.FreeAllotment = 0 }, true},
		{"zero period", func(c *Config) { c.Credits.RefreshPeriodDays = 0 }, true},
		{"short encryption key", func(c *Config) { c.Auth.TokenEncryptionKey = base64.StdEncoding.EncodeToString([]byte("short")) }, true},
		{"good encryption key", func(c *Config) {
			c.Auth.TokenEncryptionKey = base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "svc", Password: "pw", Name: "postgres", SSLMode: "require"}
	if got := d.DSN(); got != "host=db port=5432 user=svc password=pw dbname=postgres sslmode=require" {
		t.Errorf("DSN() = %q", got)
	}

	d.URL = "postgres://svc:pw@db:5432/postgres"
	if got := d.DSN(); got != d.URL {
		t.Errorf("DSN() = %q, want URL", got)
	}
}
