package prime

import (
	"github.com/bits-and-blooms/bitset"
)

// Oracle answers primality queries from a cache of every prime found so far.
// The cache is extended on demand up to the largest value ever queried, so
// each integer is trial-divided at most once over the oracle's lifetime.
//
// An Oracle is not safe for concurrent use.
type Oracle struct {
	primes         []int
	members        *bitset.BitSet
	highestChecked int

	queries int
	hits    int
}

// Stats describes the current state of an Oracle. Queries counts every
// IsPrime call, including values below 2; CacheHits counts the calls at or
// below the watermark that needed no sieving.
type Stats struct {
	Primes         int `json:"primes"`
	HighestChecked int `json:"highestChecked"`
	Queries        int `json:"queries"`
	CacheHits      int `json:"cacheHits"`
}

// New returns an empty Oracle. Nothing above 1 has been checked yet.
func New() *Oracle {
	return &Oracle{
		members:        bitset.New(1024),
		highestChecked: 1,
	}
}

// IsPrime reports whether x is prime. Values below 2 are never prime.
func (o *Oracle) IsPrime(x int) bool {
	o.queries++
	if x < 2 {
		return false
	}
	if x <= o.highestChecked {
		o.hits++
		return o.members.Test(uint(x))
	}
	o.extend(x)
	return o.members.Test(uint(x))
}

// extend sieves every integer in (highestChecked, x] against the cached primes.
func (o *Oracle) extend(x int) {
	for y := o.highestChecked + 1; y <= x; y++ {
		if o.divisible(y) {
			continue
		}
		o.primes = append(o.primes, y)
		o.members.Set(uint(y))
	}
	o.highestChecked = x
}

// divisible reports whether some cached prime p with p*p <= y divides y.
func (o *Oracle) divisible(y int) bool {
	for _, p := range o.primes {
		if p*p > y {
			return false
		}
		if y%p == 0 {
			return true
		}
	}
	return false
}

// Len returns the number of cached primes.
func (o *Oracle) Len() int {
	return len(o.primes)
}

// At returns the i-th cached prime in ascending order.
func (o *Oracle) At(i int) int {
	return o.primes[i]
}

// PrimesBelow returns a copy of all primes strictly less than n.
func (o *Oracle) PrimesBelow(n int) []int {
	if n <= 2 {
		return nil
	}
	o.IsPrime(n - 1)
	var out []int
	for _, p := range o.primes {
		if p >= n {
			break
		}
		out = append(out, p)
	}
	return out
}

// HighestChecked returns the largest integer whose primality is cached.
func (o *Oracle) HighestChecked() int {
	return o.highestChecked
}

// Stats returns a snapshot of the oracle's counters.
func (o *Oracle) Stats() Stats {
	return Stats{
		Primes:         len(o.primes),
		HighestChecked: o.highestChecked,
		Queries:        o.queries,
		CacheHits:      o.hits,
	}
}
