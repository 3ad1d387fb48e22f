package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/NipunKodeboyena/KnockKnock/pkg/client"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func newSendCmd() *cobra.Command {
	var (
		user    string
		to      string
		subject string
		body    string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an email through the account's linked Gmail mailbox",
		Long: `Send an email through the account's linked Gmail mailbox.

When --body is omitted and stdin is not a terminal, the body is read from stdin,
so a generated email can be piped straight in.`,
		Example: `  knockknock send --to hiring@acme.com --subject "Backend role" --body "Hi..."
  knockknock generate --job-title SRE --company Acme -o json | jq -r .email | knockknock send --to hiring@acme.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := resolveUser(user)
			if err != nil {
				return err
			}

			if body == "" && !stdinIsTerminal() {
				body, err = readBody(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}

			res, err := apiClient.Emails().Send(context.Background(), client.SendRequest{
				To:      to,
				Subject: subject,
				Body:    body,
				UserID:  userID,
			})
			if err != nil {
				return explainError(err)
			}

			out := cmd.OutOrStdout()
			if getOutputFormat() != "table" {
				return printOutput(out, res)
			}

			fmt.Fprintf(out, "%s to %s\n", formatStatus(res.Status), to)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "account id (defaults to config user_id)")
	cmd.Flags().StringVar(&to, "to", "", "recipient address")
	cmd.Flags().StringVar(&subject, "subject", "", "subject line")
	cmd.Flags().StringVar(&body, "body", "", "plain-text body (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// readBody reads a piped body, capped at 1MB to match the server limit.
func readBody(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read body from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// explainError adds a next step to the API failures a user can fix.
func explainError(err error) error {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.IsInsufficientCredits():
		return fmt.Errorf("%s. Credits refresh every billing period", apiErr.Message)
	case apiErr.IsNoLinkedAccount():
		return fmt.Errorf("%s. Link a Gmail account in the KnockKnock app first", apiErr.Message)
	case apiErr.IsUnauthorized():
		return fmt.Errorf("%s. Set a token with 'knockknock config set token <jwt>'", apiErr.Message)
	case apiErr.IsNotFound():
		return fmt.Errorf("%s. Check --user or the configured user_id", apiErr.Message)
	}
	return err
}
