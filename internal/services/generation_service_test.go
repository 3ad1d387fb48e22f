package services

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"testing"

	"github.com/NipunKodeboyena/KnockKnock/internal/domain/account"
	"github.com/NipunKodeboyena/KnockKnock/internal/domain/generation"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/errors"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/logger"
	"github.com/NipunKodeboyena/KnockKnock/internal/testutil"
)

type generationFixture struct {
	accounts *testutil.MockAccountRepository
	logs     *testutil.MockGenerationRepository
	llm      *testutil.MockTextGenerator
	svc      *GenerationService
}

func newGenerationFixture(accts ...*account.Account) *generationFixture {
	accounts := testutil.NewMockAccountRepository(accts...)
	logs := testutil.NewMockGenerationRepository(accounts)
	llm := &testutil.MockTextGenerator{Response: "Hi Acme team, ..."}
	credits := newTestCreditService(accounts)
	return &generationFixture{
		accounts: accounts,
		logs:     logs,
		llm:      llm,
		svc:      NewGenerationService(accounts, credits, logs, llm, logger.Nop()),
	}
}

var generateInput = generation.GenerateInput{
	UserID:   "u1",
	Prompt:   "CS junior who built a compiler",
	JobTitle: "Backend Intern",
	Company:  "Acme",
}

func TestGenerationService_Success(t *testing.T) {
	f := newGenerationFixture(&account.Account{ID: "u1", Plan: account.PlanFree, Credits: 5, LastRefresh: "2024-03-20"})

	res, err := f.svc.Generate(context.Background(), generateInput)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Email != "Hi Acme team, ..." || res.RemainingCredits != 4 {
		t.Errorf("Generate() = %+v, want email and 4 remaining", res)
	}

	for _, want := range []string{"Backend Intern", "Acme", "CS junior who built a compiler"} {
		if !strings.Contains(f.llm.LastPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if len(f.logs.Entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(f.logs.Entries))
	}
	if got := f.logs.Entries[0].Subject; got != "Cold outreach for Backend Intern" {
		t.Errorf("Subject = %q", got)
	}
}

func TestGenerationService_RefreshThenDebit(t *testing.T) {
	f := newGenerationFixture(&account.Account{ID: "u1", Plan: account.PlanPro, Credits: 0, LastRefresh: "2024-01-01"})

	res, err := f.svc.Generate(context.Background(), generateInput)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.RemainingCredits != 249 {
		t.Errorf("RemainingCredits = %d, want 249", res.RemainingCredits)
	}
}

func TestGenerationService_Failures(t *testing.T) {
	tests := []struct {
		name      string
		account   *account.Account
		llmErr    error
		llmText   string
		recordErr error
		wantCode  string
		wantLLM   int
		wantLeft  int
	}{
		{
			name:     "unknown user",
			wantCode: errors.ErrCodeNotFound,
		},
		{
			name:     "no credits",
			account:  &account.Account{ID: "u1", Plan: account.PlanFree, Credits: 0, LastRefresh: "2024-03-20"},
			wantCode: errors.ErrCodeInsufficientCredits,
		},
		{
			name:     "llm error does not debit",
			account:  &account.Account{ID: "u1", Plan: account.PlanFree, Credits: 3, LastRefresh: "2024-03-20"},
			llmErr:   stderrors.New("upstream 503"),
			wantCode: errors.ErrCodeGenerationFailed,
			wantLLM:  1,
			wantLeft: 3,
		},
		{
			name:     "blank completion does not debit",
			account:  &account.Account{ID: "u1", Plan: account.PlanFree, Credits: 3, LastRefresh: "2024-03-20"},
			llmText:  "   ",
			wantCode: errors.ErrCodeGenerationFailed,
			wantLLM:  1,
			wantLeft: 3,
		},
		{
			name:      "log write failure keeps balance",
			account:   &account.Account{ID: "u1", Plan: account.PlanFree, Credits: 3, LastRefresh: "2024-03-20"},
			llmText:   "Hello",
			recordErr: errors.DatabaseError("insert failed", stderrors.New("disk full")),
			wantCode:  errors.ErrCodeDatabase,
			wantLLM:   1,
			wantLeft:  3,
		},
		{
			name:     "malformed last_refresh",
			account:  &account.Account{ID: "u1", Plan: account.PlanFree, Credits: 3, LastRefresh: "soon"},
			wantCode: errors.ErrCodeInternal,
			wantLeft: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *generationFixture
			if tt.account != nil {
				f = newGenerationFixture(tt.account)
			} else {
				f = newGenerationFixture()
			}
			f.llm.Response = tt.llmText
			f.llm.Err = tt.llmErr
			f.logs.RecordError = tt.recordErr

			_, err := f.svc.Generate(context.Background(), generateInput)
			if !errors.HasCode(err, tt.wantCode) {
				t.Fatalf("Generate() error = %v, want code %s", err, tt.wantCode)
			}
			if f.llm.Calls != tt.wantLLM {
				t.Errorf("LLM calls = %d, want %d", f.llm.Calls, tt.wantLLM)
			}
			if tt.account != nil {
				if got := f.accounts.Stored("u1").Credits; got != tt.wantLeft {
					t.Errorf("stored credits = %d, want %d", got, tt.wantLeft)
				}
			}
			if len(f.logs.Entries) != 0 {
				t.Errorf("log entries = %d, want 0", len(f.logs.Entries))
			}
		})
	}
}

func TestGenerationService_ConcurrentNeverNegative(t *testing.T) {
	f := newGenerationFixture(&account.Account{ID: "u1", Plan: account.PlanFree, Credits: 3, LastRefresh: "2024-03-20"})

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, refused := 0, 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Generate(context.Background(), generateInput)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.HasCode(err, errors.ErrCodeInsufficientCredits):
				refused++
			default:
				t.Errorf("Generate() unexpected error = %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 3 || refused != 7 {
		t.Errorf("succeeded %d, refused %d; want 3 and 7", ok, refused)
	}
	if got := f.accounts.Stored("u1").Credits; got != 0 {
		t.Errorf("stored credits = %d, want 0", got)
	}
}
