// Package quadratic searches for the quadratic n^2 + a*n + b, with |a| < N
// and |b| < N, that yields the longest run of consecutive primes from n = 0.
//
// [RunLength] evaluates a single (a, b) pair against a [prime.Oracle].
// [Searcher] drives the pruned search over the coefficient space: b is
// restricted to primes below N and a to odd integers no smaller than 1-b.
// A Searcher keeps its oracle between searches, so repeated searches with
// growing bounds only sieve the integers not seen before.
package quadratic
