package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/NipunKodeboyena/KnockKnock/internal/api/handlers"
	"github.com/NipunKodeboyena/KnockKnock/internal/api/router"
	"github.com/NipunKodeboyena/KnockKnock/internal/config"
	"github.com/NipunKodeboyena/KnockKnock/internal/domain/dispatch"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/crypto"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/logger"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/validator"
	"github.com/NipunKodeboyena/KnockKnock/internal/providers"
	"github.com/NipunKodeboyena/KnockKnock/internal/repository/postgres"
	"github.com/NipunKodeboyena/KnockKnock/internal/services"
	"github.com/NipunKodeboyena/KnockKnock/migrations"
)

// @title KnockKnock API
// @version 1.0
// @description Cold email generation with monthly credits and Gmail dispatch.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Level: "info"}).Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Postgres schemas are owned by cmd/migrate; local sqlite files are brought up to date here
	if cfg.Database.Driver == "sqlite" {
		applied, err := postgres.RunMigrations(db, migrations.GetFS())
		if err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		log.Infof("Applied %d migrations", applied)
	}

	var decryptor postgres.TokenDecryptor
	if cfg.Auth.TokenEncryptionKey != "" {
		enc, err := crypto.NewTokenEncryptor(cfg.Auth.TokenEncryptionKey)
		if err != nil {
			log.Fatalf("Failed to load token encryption key: %v", err)
		}
		decryptor = enc
	}

	// Repositories
	accountRepo := postgres.NewAccountRepository(db)
	credentialRepo := postgres.NewCredentialRepository(db, decryptor)
	generationRepo := postgres.NewGenerationRepository(db)
	var sentRepo dispatch.Repository
	if cfg.Auth.LogSentEmails {
		sentRepo = postgres.NewSentEmailRepository(db)
	}

	// Providers
	llm := providers.NewLLMClient(providers.LLMConfig{
		APIKey:    cfg.LLM.APIKey,
		BaseURL:   cfg.LLM.BaseURL,
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
	})
	exchanger := providers.NewGoogleTokenExchanger(providers.GoogleOAuthConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
	})
	transport := providers.NewGmailTransport()

	// Services
	creditService := services.NewCreditService(accountRepo, services.CreditPolicy{
		FreeAllotment:     cfg.Credits.FreeAllotment,
		PaidAllotment:     cfg.Credits.PaidAllotment,
		RefreshPeriodDays: cfg.Credits.RefreshPeriodDays,
	}, log)
	generationService := services.NewGenerationService(accountRepo, creditService, generationRepo, llm, log)
	dispatchService := services.NewDispatchService(credentialRepo, exchanger, transport, sentRepo, log)

	h := &router.Handlers{
		Health: handlers.NewHealthHandler(db, log),
		Email:  handlers.NewEmailHandler(generationService, dispatchService, log, validator.New()),
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(map[string]interface{}{
			"addr":        srv.Addr,
			"environment": cfg.Server.Environment,
			"db_driver":   cfg.Database.Driver,
		}).Info("Starting KnockKnock API")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "Graceful shutdown failed")
	}
}
