// Package prime provides an incremental primality oracle.
//
// An [Oracle] keeps every prime it has discovered in ascending order together
// with a membership bitset and a watermark of the highest integer checked.
// Queries at or below the watermark are answered from the bitset; queries
// above it extend the cache by trial division against the primes already
// known. The cache only grows: entries are never removed or reordered.
package prime
