package quadratic

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/dshills/qprimes/internal/prime"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trialDivision(x int) bool {
	if x < 2 {
		return false
	}
	for d := 2; d*d <= x; d++ {
		if x%d == 0 {
			return false
		}
	}
	return true
}

// bruteForce scans every |a| < n, |b| < n and every value of n up to limit.
func bruteForce(bound, limit int) int {
	best := -1
	for a := -bound + 1; a < bound; a++ {
		for b := -bound + 1; b < bound; b++ {
			x := -1
			for k := 0; k <= limit && trialDivision(k*k+a*k+b); k++ {
				x = k
			}
			if x > best {
				best = x
			}
		}
	}
	return best
}

func quietSearcher() *Searcher {
	return NewSearcher(WithLogger(slog.New(slog.DiscardHandler)))
}

func TestRunLength(t *testing.T) {
	o := prime.New()
	tests := []struct {
		name string
		a, b int
		want int
	}{
		{"euler n^2+n+41", 1, 41, 39},
		{"n^2-79n+1601", -79, 1601, 79},
		{"n^2-n+41", -1, 41, 40},
		{"b not prime", 1, 1, -1},
		{"b composite", 3, 15, -1},
		{"b negative", 5, -7, -1},
		{"b zero", 1, 0, -1},
		{"fails at n=1", 0, 3, 0},
		{"b=2 odd a", -1, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RunLength(o, tt.a, tt.b))
		})
	}
}

func TestSearch_InvalidBound(t *testing.T) {
	s := quietSearcher()
	for _, n := range []int{0, -1, -1000, MaxBound + 1} {
		r, err := s.Search(n)
		require.Error(t, err)
		assert.Equal(t, ErrInvalidBound, errors.Cause(err))
		assert.False(t, r.Found())
	}
}

func TestSearch_NoPrimesBelowBound(t *testing.T) {
	for _, n := range []int{1, 2} {
		r, err := quietSearcher().Search(n)
		require.NoError(t, err)
		assert.Equal(t, Result{A: -1, B: -1, XMax: -1}, r, "bound %d", n)
	}
}

func TestSearch_SmallBound(t *testing.T) {
	// Only b = 2 qualifies and a ranges over {-1, 1}.
	r, err := quietSearcher().Search(3)
	require.NoError(t, err)
	assert.Equal(t, Result{A: -1, B: 2, XMax: 1}, r)
}

func TestSearch_ProjectEulerBound(t *testing.T) {
	r, err := quietSearcher().Search(1000)
	require.NoError(t, err)
	assert.Equal(t, Result{A: -61, B: 971, XMax: 70}, r)
	assert.Equal(t, -59231, r.Product())
}

func TestSearch_StrictBoundExcludesEuler41(t *testing.T) {
	r, err := quietSearcher().Search(41)
	require.NoError(t, err)
	assert.Less(t, r.B, 41)
	assert.Less(t, r.XMax, 39, "n^2+n+41 must not be reachable with |b| < 41")
	assert.Equal(t, bruteForce(41, 200), r.XMax)

	r, err = quietSearcher().Search(42)
	require.NoError(t, err)
	assert.Equal(t, Result{A: -1, B: 41, XMax: 40}, r)
}

func TestSearch_ShiftedEulerPolynomial(t *testing.T) {
	// n^2 - 5n + 47 is n^2 + n + 41 evaluated at n-3; b = 53 for the next shift is out of range.
	r, err := quietSearcher().Search(50)
	require.NoError(t, err)
	assert.Equal(t, Result{A: -5, B: 47, XMax: 42}, r)
}

func TestSearch_MatchesBruteForce(t *testing.T) {
	for _, n := range []int{20, 41, 50, 80} {
		r, err := quietSearcher().Search(n)
		require.NoError(t, err)
		assert.Equal(t, bruteForce(n, 200), r.XMax, "bound %d", n)
		assert.Equal(t, r.XMax, RunLength(prime.New(), r.A, r.B), "bound %d", n)
	}
}

func TestSearch_CoefficientsWithinBound(t *testing.T) {
	s := quietSearcher()
	for _, n := range []int{3, 5, 10, 17, 41, 100, 250} {
		r, err := s.Search(n)
		require.NoError(t, err)
		assert.Less(t, abs(r.A), n, "bound %d", n)
		assert.Less(t, abs(r.B), n, "bound %d", n)
		assert.True(t, r.Found(), "bound %d", n)
	}
}

func TestSearch_ReusedOracleGivesSameAnswer(t *testing.T) {
	shared := prime.New()
	s := NewSearcher(WithOracle(shared), WithLogger(slog.New(slog.DiscardHandler)))
	require.Same(t, shared, s.Oracle())

	big, err := s.Search(500)
	require.NoError(t, err)
	small, err := s.Search(50)
	require.NoError(t, err)

	freshSmall, err := quietSearcher().Search(50)
	require.NoError(t, err)
	freshBig, err := quietSearcher().Search(500)
	require.NoError(t, err)

	if diff := cmp.Diff(freshSmall, small); diff != "" {
		t.Errorf("reused oracle changed the result (-fresh +reused):\n%s", diff)
	}
	if diff := cmp.Diff(freshBig, big); diff != "" {
		t.Errorf("reused oracle changed the result (-fresh +reused):\n%s", diff)
	}
	assert.Positive(t, s.LastStats().Oracle.CacheHits)
}

func TestSearch_Stats(t *testing.T) {
	s := quietSearcher()
	_, err := s.Search(10)
	require.NoError(t, err)

	st := s.LastStats()
	assert.Equal(t, 10, st.Bound)
	assert.Equal(t, 4, st.BCandidates) // 2, 3, 5, 7
	// b=2: a in {-1..9} odd -> 6; b=3: {-1..9} -> 6; b=5: {-3..9} -> 7; b=7: {-5..9} -> 8
	assert.Equal(t, 27, st.PairsEvaluated)
}

func TestSearch_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewSearcher(WithLogger(logger)).Search(50)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "search started")
	assert.Contains(t, out, "new best quadratic")
	assert.Contains(t, out, "search completed")
	assert.Contains(t, out, `"bound":50`)
}

func TestResult_Terms(t *testing.T) {
	r := Result{A: -1, B: 41, XMax: 3}
	want := []Term{{0, 41}, {1, 41}, {2, 43}, {3, 47}}
	if diff := cmp.Diff(want, r.Terms()); diff != "" {
		t.Errorf("Terms mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "n^2 + (-1)*n + (41)", r.Formula())
	assert.Equal(t, -41, r.Product())
	assert.Nil(t, sentinel().Terms())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
