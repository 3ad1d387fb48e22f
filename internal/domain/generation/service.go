package generation

import "context"

// Service generates outreach emails against the caller's credit balance
type Service interface {
	Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error)
}

// TextGenerator produces completion text for a prompt
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
