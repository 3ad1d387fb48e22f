package cli

import (
	"context"
	"fmt"

	"github.com/NipunKodeboyena/KnockKnock/pkg/client"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		user     string
		jobTitle string
		company  string
		prompt   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a cold outreach email (spends one credit)",
		Example: `  knockknock generate --job-title "Backend Engineer" --company Acme
  knockknock generate --user u_123 --job-title SRE --company Initech --prompt "mention my Go experience"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := resolveUser(user)
			if err != nil {
				return err
			}

			res, err := apiClient.Emails().Generate(context.Background(), client.GenerateRequest{
				UserID:   userID,
				Prompt:   prompt,
				JobTitle: jobTitle,
				Company:  company,
			})
			if err != nil {
				return explainError(err)
			}

			out := cmd.OutOrStdout()
			if getOutputFormat() != "table" {
				return printOutput(out, res)
			}

			fmt.Fprintln(out, res.Email)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Remaining credits: %d\n", res.RemainingCredits)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "account id (defaults to config user_id)")
	cmd.Flags().StringVar(&jobTitle, "job-title", "", "role the email is about")
	cmd.Flags().StringVar(&company, "company", "", "company the email is addressed to")
	cmd.Flags().StringVar(&prompt, "prompt", "", "extra context about the sender")
	_ = cmd.MarkFlagRequired("job-title")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}
