// Package summarizer turns cleaned transcripts into summaries and key
// points via the OpenRouter chat completions API.
package summarizer
