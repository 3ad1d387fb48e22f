package services

import (
	"encoding/base64"
	"mime"
	"strings"
)

var headerSanitizer = strings.NewReplacer("\r", "", "\n", " ")

// BuildRawMessage renders a plain-text RFC 2822 message and returns it
// base64url-encoded as the Gmail API expects.
func BuildRawMessage(to, subject, body string) string {
	var b strings.Builder
	b.WriteString("To: " + headerSanitizer.Replace(to) + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("UTF-8", headerSanitizer.Replace(subject)) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}
