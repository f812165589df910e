package output

import (
	"fmt"
	"io"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}
	r := report.Result

	if !report.Found {
		ew.printf("No quadratic with |a|, |b| < %d produces a prime at n = 0.\n", report.Bound)
		return ew.err
	}

	ew.println("Quadratic formula producing the most consecutive primes:")
	ew.printf("  %s\n", report.Formula)
	ew.printf("  where 0 ≤ n ≤ %d\n", r.XMax)
	ew.println("Values:")
	for _, term := range report.Terms {
		ew.printf("  n = %3d -> %10d\n", term.N, term.Value)
	}
	ew.println("Product of coefficients:")
	ew.printf("  a × b = %d × %d = %d\n", r.A, r.B, report.Product)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
