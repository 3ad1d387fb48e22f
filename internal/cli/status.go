package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server liveness and readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			summary := map[string]string{
				"banner":   "",
				"liveness": "",
				"database": "",
			}

			if banner, err := apiClient.Banner(ctx); err != nil {
				summary["banner"] = fmt.Sprintf("error: %v", err)
			} else {
				summary["banner"] = banner.Message
			}

			if h, err := apiClient.Health(ctx); err != nil {
				summary["liveness"] = "error"
			} else {
				summary["liveness"] = h.Data.Status
			}

			if r, err := apiClient.Ready(ctx); err != nil {
				summary["database"] = "unavailable"
			} else {
				summary["database"] = r.Data.Database
			}

			if getOutputFormat() != "table" {
				return printOutput(out, summary)
			}

			fmt.Fprintln(out, truncate(summary["banner"], 60))
			fmt.Fprintln(out)

			table := NewTable(out, "COMPONENT", "STATUS")
			table.AddRow("api", formatStatus(summary["liveness"]))
			table.AddRow("database", formatStatus(summary["database"]))
			table.Render()
			return nil
		},
	}
}
