package cli

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/NipunKodeboyena/KnockKnock/internal/auth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func newTokenCmd() *cobra.Command {
	var (
		user string
		ttl  time.Duration
		save bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token",
		Long: `Mint an HS256 access token for a server started with AUTH_JWT_SECRET.

The secret is read from KNOCKKNOCK_JWT_SECRET, or prompted for without echo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := resolveUser(user)
			if err != nil {
				return err
			}

			secret := viper.GetString("jwt_secret")
			if secret == "" {
				secret = promptSecret("JWT secret: ")
			}
			if secret == "" {
				return fmt.Errorf("a JWT secret is required")
			}

			token, err := auth.MintToken(userID, secret, ttl)
			if err != nil {
				return fmt.Errorf("failed to mint token: %w", err)
			}

			if save {
				viper.Set("token", token)
				if _, err := writeConfig(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Token for %s saved, expires in %s\n", userID, ttl)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "account id to put in the subject (defaults to config user_id)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	cmd.Flags().BoolVar(&save, "save", false, "store the token in the config file")

	return cmd
}

func promptSecret(prompt string) string {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return ""
	}
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return ""
	}
	return string(secret)
}
