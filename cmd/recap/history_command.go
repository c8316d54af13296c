package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"recap/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				cmd.Println("No analyses recorded yet.")
				return nil
			}

			headers := []string{"ID", "When", "Status", "URL", "Langs", "Points", "Cached"}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				cached := ""
				if entry.CacheHit {
					cached = "yes"
				}
				rows = append(rows, []string{
					strconv.FormatInt(entry.ID, 10),
					entry.CreatedAt.Local().Format("2006-01-02 15:04"),
					statusLabel(entry.Status),
					entry.URL,
					entry.Langs,
					strconv.Itoa(entry.KeyPointCount),
					cached,
				})
			}
			aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
			cmd.Println(renderRows(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 20, "Maximum number of entries to show (0 for all)")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	cmd.AddCommand(newHistoryClearCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			entry, err := store.Describe(cmd.Context(), id)
			if err != nil {
				return err
			}
			cmd.Printf("ID:         %d\n", entry.ID)
			cmd.Printf("URL:        %s\n", entry.URL)
			cmd.Printf("Langs:      %s\n", entry.Langs)
			cmd.Printf("Status:     %s\n", statusLabel(entry.Status))
			cmd.Printf("Recorded:   %s\n", entry.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			cmd.Printf("Key points: %d\n", entry.KeyPointCount)
			cmd.Printf("Transcript: %d chars\n", entry.TranscriptChars)
			if entry.Summary != "" {
				cmd.Printf("\n%s\n", entry.Summary)
			}
			return nil
		},
	}
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("Removed %d entries.\n", removed)
			return nil
		},
	}
}
