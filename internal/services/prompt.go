package services

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the cold-outreach instruction sent to the model
func BuildPrompt(jobTitle, company, context string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short, personalized cold outreach email applying for the %s role at %s.\n", jobTitle, company)
	b.WriteString("Keep it under 200 words, friendly and professional, and end with a clear call to action.\n")
	b.WriteString("Return only the email body without a subject line.\n")
	if context = strings.TrimSpace(context); context != "" {
		fmt.Fprintf(&b, "\nAbout the sender:\n%s\n", context)
	}
	return b.String()
}

// SubjectFor derives the logged subject line for a generated email
func SubjectFor(jobTitle string) string {
	return "Cold outreach for " + jobTitle
}
