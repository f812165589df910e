// Qprimes finds the quadratic n^2 + a*n + b, with |a| < N and |b| < N, that
// produces the most consecutive primes starting at n = 0.
//
// Usage:
//
//	qprimes search 1000          # search |a|, |b| < 1000
//	qprimes search -i            # prompt for N on stdin
//	qprimes search --format json # machine-readable report
//	qprimes prime 97 1601        # query the prime oracle directly
//	qprimes config show          # effective configuration
//	qprimes cache get 1000       # cached report, no search
//	qprimes cache clear          # drop cached search results
//
// N must lie in 1..1048576.
package main
