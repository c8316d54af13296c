// Package resultcache provides the in-memory TTL cache for completed
// analysis results.
package resultcache
