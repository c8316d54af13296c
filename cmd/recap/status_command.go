package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"recap/internal/deps"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status and dependency diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			client, err := ctx.client()
			if err == nil {
				if status, statusErr := client.Status(cmd.Context()); statusErr == nil {
					cmd.Printf("Daemon:     running (pid %d)\n", status.PID)
					cmd.Printf("Cache TTL:  %ds\n", status.CacheTTLSeconds)
					cmd.Printf("History:    %d analyses\n", status.HistoryCount)
					if status.HistoryDBPath != "" {
						cmd.Printf("History DB: %s\n", status.HistoryDBPath)
					}
					printDependencies(cmd, status.Dependencies)
					return nil
				}
			}

			// Daemon unreachable; report local diagnostics instead.
			cmd.Println("Daemon:     not reachable")
			cmd.Printf("API bind:   %s\n", cfg.Paths.APIBind)
			printDependencies(cmd, deps.CheckBinaries(deps.Default(cfg)))
			return nil
		},
	}
}

func printDependencies(cmd *cobra.Command, statuses []deps.Status) {
	if len(statuses) == 0 {
		return
	}
	headers := []string{"Dependency", "Command", "Available", "Optional", "Detail"}
	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		rows = append(rows, []string{
			status.Name,
			status.Command,
			strconv.FormatBool(status.Available),
			strconv.FormatBool(status.Optional),
			status.Detail,
		})
	}
	cmd.Println(renderRows(headers, rows, nil))
}
