// Package daemon runs the HTTP API and enforces single-instance execution
// via a lock file.
package daemon
