package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"recap/internal/analysis"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var langFlag string
	var promptFlag string
	var jsonFlag bool
	var transcriptFlag bool

	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Summarize a video from its subtitles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			result, err := client.Analyze(cmd.Context(), args[0], langFlag, promptFlag)
			if err != nil {
				return err
			}

			if jsonFlag {
				encoded, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("encode result: %w", err)
				}
				cmd.Println(string(encoded))
				return nil
			}

			printResult(cmd, result, transcriptFlag)
			return nil
		},
	}

	cmd.Flags().StringVar(&langFlag, "lang", "", "Subtitle language preference, e.g. \"ru,en\"")
	cmd.Flags().StringVar(&promptFlag, "prompt", "", "Question or instruction for the summarizer")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the raw JSON result")
	cmd.Flags().BoolVar(&transcriptFlag, "transcript", false, "Include the full transcript in the output")

	return cmd
}

func printResult(cmd *cobra.Command, result *analysis.Result, withTranscript bool) {
	cmd.Printf("Status: %s\n", statusLabel(string(result.Status)))
	if result.CacheHit {
		cmd.Println("Served from cache.")
	}
	if result.Summary != "" {
		cmd.Printf("\n%s\n", result.Summary)
	}
	if len(result.KeyPoints) > 0 {
		cmd.Println("\nKey points:")
		for _, point := range result.KeyPoints {
			cmd.Printf("  - %s\n", point)
		}
	}
	if withTranscript && result.Transcript != "" {
		cmd.Printf("\nTranscript:\n%s\n", result.Transcript)
	}
	if result.DebugInfo != nil {
		cmd.Printf("\nCommand: %s\n", result.DebugInfo.Command)
		if result.DebugInfo.StderrTail != "" {
			cmd.Printf("Stderr tail:\n%s\n", result.DebugInfo.StderrTail)
		}
	}
}
