package quadratic

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dshills/qprimes/internal/prime"
	"github.com/pkg/errors"
)

// MaxBound is the largest coefficient bound a Searcher accepts. Below it every
// polynomial value fits comfortably in an int and the oracle's cache stays in
// the tens of megabytes.
const MaxBound = 1 << 20

// ErrInvalidBound is returned when the coefficient bound is not a natural
// number no larger than MaxBound.
var ErrInvalidBound = errors.New("bound must be a positive integer no larger than MaxBound")

// Result is the best quadratic n^2 + A*n + B found by a search.
// XMax is the largest n such that every value for 0..n is prime; -1 means no
// pair produced a prime at n = 0.
type Result struct {
	A    int `json:"a"`
	B    int `json:"b"`
	XMax int `json:"xMax"`
}

// Term is one row of the value table for a Result.
type Term struct {
	N     int `json:"n"`
	Value int `json:"value"`
}

// SearchStats counts the work done by the most recent Search.
type SearchStats struct {
	Bound          int         `json:"bound"`
	BCandidates    int         `json:"bCandidates"`
	PairsEvaluated int         `json:"pairsEvaluated"`
	Oracle         prime.Stats `json:"oracle"`
	DurationMs     int64       `json:"durationMs"`
}

func sentinel() Result {
	return Result{A: -1, B: -1, XMax: -1}
}

// Found reports whether the result describes a run of at least one prime.
func (r Result) Found() bool {
	return r.XMax >= 0
}

// Product returns A*B.
func (r Result) Product() int {
	return r.A * r.B
}

// Formula renders the quadratic as text.
func (r Result) Formula() string {
	return fmt.Sprintf("n^2 + (%d)*n + (%d)", r.A, r.B)
}

// Terms returns the value of the quadratic for every n in [0, XMax].
func (r Result) Terms() []Term {
	if !r.Found() {
		return nil
	}
	terms := make([]Term, 0, r.XMax+1)
	for n := 0; n <= r.XMax; n++ {
		terms = append(terms, Term{N: n, Value: Eval(r.A, r.B, n)})
	}
	return terms
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithOracle makes the Searcher share an existing oracle.
func WithOracle(o *prime.Oracle) Option {
	return func(s *Searcher) {
		if o != nil {
			s.oracle = o
		}
	}
}

// WithLogger sets the logger used for search progress.
func WithLogger(l *slog.Logger) Option {
	return func(s *Searcher) {
		if l != nil {
			s.logger = l
		}
	}
}

// Searcher finds the quadratic with the longest run of consecutive primes.
// It owns a single oracle that is reused across searches so later searches
// are answered mostly from cache. A Searcher is not safe for concurrent use.
type Searcher struct {
	oracle *prime.Oracle
	logger *slog.Logger
	last   SearchStats
}

// NewSearcher returns a Searcher with a fresh oracle unless one is supplied.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		oracle: prime.New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Oracle returns the oracle backing the searcher.
func (s *Searcher) Oracle() *prime.Oracle {
	return s.oracle
}

// LastStats returns the counters of the most recent successful Search.
func (s *Searcher) LastStats() SearchStats {
	return s.last
}

// Search returns the pair (a, b) with |a| < n and |b| < n maximizing the run
// of consecutive primes produced by n^2 + a*n + b from n = 0.
//
// b only ranges over primes below n since the n = 0 value is b itself. For a
// given b, a starts at 1-b so that the n = 1 value a+b+1 is at least 2, and a
// is odd because consecutive values differ by 2n+1+a, which must be even
// between odd primes. Ties keep the first pair in iteration order.
func (s *Searcher) Search(n int) (Result, error) {
	if n <= 0 || n > MaxBound {
		return sentinel(), errors.Wrapf(ErrInvalidBound, "got %d", n)
	}
	start := time.Now()
	s.logger.Debug("search started", "bound", n)

	s.oracle.IsPrime(n - 1)

	best := sentinel()
	stats := SearchStats{Bound: n}
	for i := 0; i < s.oracle.Len() && s.oracle.At(i) < n; i++ {
		b := s.oracle.At(i)
		stats.BCandidates++

		aLo := 1 - b
		if aLo%2 == 0 {
			aLo++
		}
		for a := aLo; a < n; a += 2 {
			stats.PairsEvaluated++
			x := RunLength(s.oracle, a, b)
			if x > best.XMax {
				best = Result{A: a, B: b, XMax: x}
				s.logger.Debug("new best quadratic", "a", a, "b", b, "xMax", x)
			}
		}
	}

	stats.Oracle = s.oracle.Stats()
	stats.DurationMs = time.Since(start).Milliseconds()
	s.last = stats
	s.logger.Info("search completed",
		"bound", n,
		"a", best.A,
		"b", best.B,
		"xMax", best.XMax,
		"pairs", stats.PairsEvaluated,
		"primesCached", stats.Oracle.Primes,
	)
	return best, nil
}
