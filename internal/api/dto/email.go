package dto

// RootResponse is the service banner
type RootResponse struct {
	Message string `json:"message"`
}

// GenerateRequest asks for one outreach email
type GenerateRequest struct {
	UserID   string `json:"user_id" validate:"required,notblank,max=64"`
	Prompt   string `json:"prompt" validate:"max=4000"`
	JobTitle string `json:"job_title" validate:"required,notblank,max=200"`
	Company  string `json:"company" validate:"required,notblank,max=200"`
}

// GenerateResponse carries the generated text and the balance after the debit
type GenerateResponse struct {
	Email            string `json:"email"`
	RemainingCredits int    `json:"remaining_credits"`
}

// SendEmailRequest asks to send a message from the user's Gmail account
type SendEmailRequest struct {
	To      string `json:"to" validate:"required,email,max=320"`
	Subject string `json:"subject" validate:"max=998"`
	Body    string `json:"body" validate:"max=100000"`
	UserID  string `json:"user_id" validate:"required,notblank,max=64"`
}

// SendEmailResponse reports a successful dispatch
type SendEmailResponse struct {
	Status string `json:"status"`
}
