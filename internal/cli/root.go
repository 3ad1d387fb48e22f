package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NipunKodeboyena/KnockKnock/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile      string
	outputFormat string
	serverURL    string
	apiClient    *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "knockknock",
	Short: "KnockKnock CLI - cold email generation and Gmail dispatch",
	Long: `KnockKnock CLI talks to a KnockKnock API server to generate personalised
cold emails with the account's monthly credits and send them through the
account's linked Gmail mailbox.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// config and token work offline
		if cmd.Name() == "token" || (cmd.Parent() != nil && cmd.Parent().Name() == "config") {
			return nil
		}
		return initClient()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.knockknock/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (overrides config)")

	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server"))

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newTokenCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return
		}
		configDir := filepath.Join(home, ".knockknock")
		_ = os.MkdirAll(configDir, 0700)
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("KNOCKKNOCK")
	viper.AutomaticEnv()

	viper.SetDefault("server_url", "http://localhost:8000")
	viper.SetDefault("output", "table")

	_ = viper.ReadInConfig()
}

func initClient() error {
	url := viper.GetString("server_url")
	if serverURL != "" {
		url = serverURL
	}

	apiClient = client.NewClient(client.Config{
		BaseURL: url,
	})

	// Servers started without AUTH_JWT_SECRET accept anonymous calls
	if token := viper.GetString("token"); token != "" {
		apiClient.SetToken(token)
	}
	return nil
}

// resolveUser prefers the --user flag over the configured user_id.
func resolveUser(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if id := viper.GetString("user_id"); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("no user id. Pass --user or run 'knockknock config set user_id <id>'")
}

func getOutputFormat() string {
	if outputFormat != "" && outputFormat != "table" {
		return outputFormat
	}
	return viper.GetString("output")
}

func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".knockknock", "config.yaml"), nil
}
