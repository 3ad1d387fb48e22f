package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/NipunKodeboyena/KnockKnock/internal/domain/account"
	"github.com/NipunKodeboyena/KnockKnock/internal/domain/generation"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/errors"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/logger"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/metrics"
)

// GenerationService implements generation.Service
type GenerationService struct {
	accounts account.Repository
	credits  account.CreditService
	logs     generation.Repository
	llm      generation.TextGenerator
	logger   *logger.Logger
	now      func() time.Time
}

// NewGenerationService creates a new generation service
func NewGenerationService(
	accounts account.Repository,
	credits account.CreditService,
	logs generation.Repository,
	llm generation.TextGenerator,
	log *logger.Logger,
) *GenerationService {
	return &GenerationService{
		accounts: accounts,
		credits:  credits,
		logs:     logs,
		llm:      llm,
		logger:   log,
		now:      time.Now,
	}
}

// Generate writes one outreach email and spends one credit for it
func (s *GenerationService) Generate(ctx context.Context, in generation.GenerateInput) (*generation.GenerateResult, error) {
	log := s.logger.ForUser(in.UserID)

	acct, err := s.accounts.GetByID(ctx, in.UserID)
	if err != nil {
		metrics.RecordGeneration("not_found")
		return nil, err
	}

	balance, err := s.credits.EffectiveBalance(ctx, acct)
	if err != nil {
		metrics.RecordGeneration("error")
		log.ErrorWithErr(err, "Credit check failed")
		return nil, err
	}
	if balance <= 0 {
		metrics.RecordGeneration("insufficient_credits")
		log.Warn("Generation refused, no credits left")
		return nil, errors.InsufficientCredits()
	}

	text, err := s.llm.Complete(ctx, BuildPrompt(in.JobTitle, in.Company, in.Prompt))
	if err == nil && strings.TrimSpace(text) == "" {
		err = generation.ErrEmptyCompletion
	}
	if err != nil {
		metrics.RecordGeneration("llm_failed")
		log.ErrorWithErr(err, "LLM completion failed")
		return nil, errors.GenerationFailed(err)
	}

	entry := &generation.Entry{
		GeneratedText: text,
		Subject:       SubjectFor(in.JobTitle),
		Body:          text,
		SentAt:        s.now(),
	}

	remaining, err := s.logs.DebitAndRecord(ctx, acct.ID, entry)
	if err != nil {
		if stderrors.Is(err, account.ErrInsufficientCredits) {
			metrics.RecordGeneration("insufficient_credits")
			log.Warn("Credit spent by a concurrent request")
			return nil, errors.InsufficientCredits()
		}
		metrics.RecordGeneration("error")
		log.ErrorWithErr(err, "Failed to debit credit and record generation")
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, errors.Internal("Failed to record generation", err)
	}

	metrics.RecordGeneration("success")
	log.With("remaining_credits", remaining).Info("Email generated")

	return &generation.GenerateResult{Email: text, RemainingCredits: remaining}, nil
}
