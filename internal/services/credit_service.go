package services

import (
	"context"
	"time"

	"github.com/NipunKodeboyena/KnockKnock/internal/domain/account"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/errors"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/logger"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/metrics"
)

// CreditPolicy is the monthly allotment rule
type CreditPolicy struct {
	FreeAllotment     int
	PaidAllotment     int
	RefreshPeriodDays int
}

// DefaultCreditPolicy grants 100 credits to free accounts and 250 to paid ones every 30 days
func DefaultCreditPolicy() CreditPolicy {
	return CreditPolicy{FreeAllotment: 100, PaidAllotment: 250, RefreshPeriodDays: 30}
}

// CreditService implements account.CreditService
type CreditService struct {
	repo   account.Repository
	policy CreditPolicy
	now    func() time.Time
	logger *logger.Logger
}

// NewCreditService creates a new credit service
func NewCreditService(repo account.Repository, policy CreditPolicy, log *logger.Logger) *CreditService {
	return &CreditService{
		repo:   repo,
		policy: policy,
		now:    time.Now,
		logger: log,
	}
}

// SetClock overrides the time source
func (s *CreditService) SetClock(now func() time.Time) {
	s.now = now
}

// Allotment returns the flat balance a plan is reset to
func (s *CreditService) Allotment(plan string) int {
	if plan == account.PlanFree {
		return s.policy.FreeAllotment
	}
	return s.policy.PaidAllotment
}

// EffectiveBalance returns the spendable credits for a, applying a reset first
// when today is strictly past last_refresh + the refresh period. a is updated
// in place to match what was persisted.
func (s *CreditService) EffectiveBalance(ctx context.Context, a *account.Account) (int, error) {
	today := s.today()

	last, err := time.Parse(account.DateLayout, a.LastRefresh)
	if err != nil {
		return 0, errors.Internal("Invalid last_refresh date on account", err)
	}

	if !today.After(last.AddDate(0, 0, s.policy.RefreshPeriodDays)) {
		return a.Credits, nil
	}

	allotment := s.Allotment(a.Plan)
	todayStr := today.Format(account.DateLayout)

	updated, err := s.repo.ResetCredits(ctx, a.ID, allotment, todayStr, a.LastRefresh)
	if err != nil {
		return 0, err
	}

	if !updated {
		// another request refreshed first; trust the stored row
		fresh, err := s.repo.GetByID(ctx, a.ID)
		if err != nil {
			return 0, err
		}
		*a = *fresh
		return a.Credits, nil
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":       a.ID,
		"plan":          a.Plan,
		"previous":      a.LastRefresh,
		"credits_after": allotment,
	}).Info("Monthly credits refreshed")
	metrics.RecordCreditRefresh(a.Plan)

	a.Credits = allotment
	a.LastRefresh = todayStr
	return allotment, nil
}

func (s *CreditService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
