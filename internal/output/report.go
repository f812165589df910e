package output

import (
	"github.com/dshills/qprimes/internal/quadratic"
)

// Report is the rendered outcome of one search.
type Report struct {
	Tool    string                 `json:"tool"`
	Version string                 `json:"version"`
	Bound   int                    `json:"bound"`
	Found   bool                   `json:"found"`
	Result  quadratic.Result       `json:"result"`
	Formula string                 `json:"formula,omitempty"`
	Terms   []quadratic.Term       `json:"terms,omitempty"`
	Product int                    `json:"product"`
	Cached  bool                   `json:"cached"`
	Stats   *quadratic.SearchStats `json:"stats,omitempty"`
}

// NewReport builds a Report for a search result. stats may be nil when the
// result came from the cache.
func NewReport(version string, bound int, r quadratic.Result, stats *quadratic.SearchStats) *Report {
	rep := &Report{
		Tool:    "qprimes",
		Version: version,
		Bound:   bound,
		Found:   r.Found(),
		Result:  r,
		Cached:  stats == nil,
		Stats:   stats,
	}
	if rep.Found {
		rep.Formula = r.Formula()
		rep.Terms = r.Terms()
		rep.Product = r.Product()
	}
	return rep
}
