package output

import (
	"io"
)

// MarkdownWriter outputs a markdown report with the value table.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}
	r := report.Result

	ew.printf("## Quadratic primes, |a|, |b| < %d\n\n", report.Bound)

	if !report.Found {
		ew.println("No quadratic produces a prime at n = 0.")
		return ew.err
	}

	ew.printf("`%s` is prime for every `0 ≤ n ≤ %d` (%d primes).\n\n", report.Formula, r.XMax, r.XMax+1)

	ew.println("| n | n² + an + b |")
	ew.println("|---|-------------|")
	for _, term := range report.Terms {
		ew.printf("| %d | %d |\n", term.N, term.Value)
	}

	ew.printf("\n**a × b** = %d × %d = **%d**\n", r.A, r.B, report.Product)

	if report.Cached {
		ew.println("\n*Served from cache.*")
	} else if report.Stats != nil {
		ew.printf("\n*Evaluated %d pairs over %d primes b in %dms.*\n",
			report.Stats.PairsEvaluated, report.Stats.BCandidates, report.Stats.DurationMs)
	}

	return ew.err
}
