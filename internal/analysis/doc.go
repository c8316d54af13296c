// Package analysis orchestrates a single video analysis: cache lookup,
// subtitle extraction with fallbacks, transcript cleanup, summarization, and
// result caching.
package analysis
