// Package main hosts the recap CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into HTTP
// calls against the daemon API, history queries, status diagnostics, and
// configuration scaffolding. It centralizes configuration resolution and
// client construction so subcommands can focus on user experience instead
// of wiring.
package main
