// Package logging constructs the slog loggers used across recap.
//
// It provides console and JSON handlers, typed attribute helpers, and the
// standardized field names shared by the daemon, the pipeline, and the CLI so
// log output stays greppable regardless of which component emitted it.
package logging
