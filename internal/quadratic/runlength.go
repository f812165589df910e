package quadratic

import "github.com/dshills/qprimes/internal/prime"

// Eval returns n^2 + a*n + b.
func Eval(a, b, n int) int {
	return n*n + a*n + b
}

// RunLength returns the largest n such that n^2 + a*n + b is prime for every
// integer in [0, n], or -1 if the value at n = 0 is not prime.
func RunLength(o *prime.Oracle, a, b int) int {
	n := 0
	for o.IsPrime(Eval(a, b, n)) {
		n++
	}
	return n - 1
}
