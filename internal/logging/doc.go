// Package logging builds the structured slog loggers used by qprimes from
// the configured level and format. Logs always go to stderr in the CLI so
// they never mix with the search report on stdout.
package logging
