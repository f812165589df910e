// Package cache provides a file-based cache of finished quadratic searches.
//
// Entries are keyed by a SHA-256 hash of a schema version and the search
// bound. Each entry stores the winning coefficients and run length with a
// creation timestamp and a TTL in seconds; a TTL of zero never expires since
// a search over a given bound is deterministic. Only results are stored, never
// the prime oracle's internal state.
//
// The default cache directory is $XDG_CACHE_HOME/qprimes (or the
// OS-appropriate equivalent).
package cache
