package analysis

// Key identifies a request for caching purposes. Langs must be the
// normalized language list so equivalent requests share one entry.
type Key struct {
	URL    string
	Langs  string
	Prompt string
}

// Cache stores terminal analysis results keyed by request identity.
// Implementations must deep-copy values in both directions.
type Cache interface {
	// Get returns a copy of the stored result with its cache marker set,
	// or false when absent or expired.
	Get(key Key) (*Result, bool)
	// Put stores a copy of the result. Implementations may drop the value
	// entirely when caching is disabled.
	Put(key Key, result *Result)
}
