package client

// GenerateRequest is the input of Emails().Generate
type GenerateRequest struct {
	UserID   string `json:"user_id"`
	Prompt   string `json:"prompt"`
	JobTitle string `json:"job_title"`
	Company  string `json:"company"`
}

// GenerateResponse is the generated email and the balance left after it
type GenerateResponse struct {
	Email            string `json:"email"`
	RemainingCredits int    `json:"remaining_credits"`
}

// SendRequest is the input of Emails().Send
type SendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	UserID  string `json:"user_id"`
}

// SendResponse reports a successful dispatch
type SendResponse struct {
	Status string `json:"status"`
}

// HealthResponse is the envelope returned by /healthz and /readyz
type HealthResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Status   string `json:"status"`
		Database string `json:"database,omitempty"`
	} `json:"data"`
}

// RootResponse is the service banner
type RootResponse struct {
	Message string `json:"message"`
}
