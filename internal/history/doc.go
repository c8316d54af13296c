// Package history persists a record of completed analyses in SQLite.
package history
