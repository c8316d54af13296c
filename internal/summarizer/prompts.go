package summarizer

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are an assistant that analyzes videos from their subtitle transcripts. Respond with JSON only."

const generalPrompt = "Produce a concise analysis of the video from its transcript. " +
	"Return JSON with fields summary (string) and key_points (array of strings, 5-8 items)."

const instructionPromptFormat = "Answer the following request strictly from the transcript. " +
	"If the transcript does not contain enough information to answer, say so in the summary. " +
	"Return JSON with fields summary (string) and key_points (array of strings, 3-8 items).\n\nRequest: %s"

// generalKeywords mark user instructions that ask for the default overall
// analysis rather than a specific question.
var generalKeywords = []string{
	"general",
	"overview",
	"summary",
	"summarize",
	"общий",
	"разбор",
}

// IsGeneralInstruction reports whether the instruction should be served by
// the general analysis template. Empty instructions always are; otherwise a
// case-insensitive keyword test decides.
func IsGeneralInstruction(instruction string) bool {
	trimmed := strings.TrimSpace(instruction)
	if trimmed == "" {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, keyword := range generalKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// buildUserPrompt selects the prompt template and appends the transcript.
func buildUserPrompt(instruction, transcript string) string {
	prompt := generalPrompt
	if !IsGeneralInstruction(instruction) {
		prompt = fmt.Sprintf(instructionPromptFormat, strings.TrimSpace(instruction))
	}
	return prompt + "\n\nTranscript:\n" + transcript
}
