package topk

import (
	"errors"
	"fmt"
	"sort"
)

// Source exposes the bipartite structure and the tracked values. For
// variable i, FactorValues returns the connected producers (ascending),
// the matching indices into vals, and the flat value array itself:
// the value of link (prod[l], i) is vals[links[l]].
type Source interface {
	// NumVariables returns the number of variables n.
	NumVariables() int
	// NumFactors returns the number of producers m.
	NumFactors() int
	// FactorValues returns the column view of variable i.
	FactorValues(i int) (prod, links []int, vals []float64)
}

// Sentinel errors.
var (
	// ErrBadSize indicates tracker arrays inconsistent with n and K.
	ErrBadSize = errors.New("topk: array sizes inconsistent")

	// ErrBadSubset indicates a subset filter that is unsorted, out of
	// range, or too small to fill every list.
	ErrBadSubset = errors.New("topk: invalid producer subset")

	// ErrIndexRange indicates a variable or producer index out of range.
	ErrIndexRange = errors.New("topk: index out of range")

	// ErrAllExcluded indicates a recompute left a list empty: every
	// producer of that variable is excluded by the subset filter. The
	// structure is inconsistent from here on; this is a construction-
	// time misconfiguration.
	ErrAllExcluded = errors.New("topk: no eligible producer for variable")
)

// Option configures a Tracker.
type Option func(*Tracker) error

// WithSubset restricts tracking to the producers in sub (exclude
// false) or to their complement (exclude true). sub must be sorted
// ascending and within range.
func WithSubset(sub []int, exclude bool) Option {
	return func(t *Tracker) error {
		sz := len(sub)
		if sz == 0 {
			return fmt.Errorf("%w: empty", ErrBadSubset)
		}
		if !sort.IntsAreSorted(sub) {
			return fmt.Errorf("%w: not ascending", ErrBadSubset)
		}
		m := t.src.NumFactors()
		if sub[0] < 0 || sub[sz-1] >= m {
			return fmt.Errorf("%w: entries outside 0..%d", ErrBadSubset, m-1)
		}
		// Keep every list fillable up to K.
		if (!exclude && sz < t.maxSize) || (exclude && m-sz < t.maxSize) {
			return fmt.Errorf("%w: too small for K=%d", ErrBadSubset, t.maxSize)
		}
		t.subInd = sub
		t.subExcl = exclude

		return nil
	}
}

// Tracker maintains the per-variable top-K lists over caller-owned
// arrays. numValid has length n; topInd and topVal have length
// n·(K+1), variable i's block starting at i·(K+1).
type Tracker struct {
	src      Source
	maxSize  int
	numValid []int
	topInd   []int
	topVal   []float64
	subInd   []int
	subExcl  bool
	nUpd     int
	nRec     int
}

// New builds a Tracker over the given arrays without touching their
// content; numValid entries must already be in 1..K (pass a fresh
// structure to RecomputeAll to fill from scratch, as NewFor does).
func New(src Source, maxSize int, numValid, topInd []int, topVal []float64, opts ...Option) (*Tracker, error) {
	n := src.NumVariables()
	if maxSize < 1 {
		return nil, fmt.Errorf("%w: K=%d", ErrBadSize, maxSize)
	}
	if len(numValid) != n || len(topInd) != n*(maxSize+1) || len(topVal) != len(topInd) {
		return nil, fmt.Errorf("%w: n=%d, K=%d", ErrBadSize, n, maxSize)
	}
	for i, v := range numValid {
		if v < 1 || v > maxSize {
			return nil, fmt.Errorf("%w: numValid[%d]=%d", ErrBadSize, i, v)
		}
	}
	t := &Tracker{
		src:      src,
		maxSize:  maxSize,
		numValid: numValid,
		topInd:   topInd,
		topVal:   topVal,
	}
	for _, o := range opts {
		if err := o(t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// NewFor allocates fresh tracker arrays and fills them from the source
// in one sweep. Convenience constructor for Go callers; hosts that own
// the arrays use New + RecomputeAll.
func NewFor(src Source, maxSize int, opts ...Option) (*Tracker, error) {
	n := src.NumVariables()
	numValid := make([]int, n)
	for i := range numValid {
		numValid[i] = 1 // placeholder, overwritten by RecomputeAll
	}
	t, err := New(src, maxSize, numValid, make([]int, n*(maxSize+1)),
		make([]float64, n*(maxSize+1)), opts...)
	if err != nil {
		return nil, err
	}
	if err := t.RecomputeAll(); err != nil {
		return nil, err
	}
	t.ResetStats()

	return t, nil
}

// K returns the list capacity.
func (t *Tracker) K() int { return t.maxSize }

// Max returns the largest tracked value for variable i. O(1).
func (t *Tracker) Max(i int) float64 {
	return t.topVal[i*(t.maxSize+1)]
}

// MaxProducer returns the producer holding the maximum for i.
func (t *Tracker) MaxProducer(i int) int {
	return t.topInd[i*(t.maxSize+1)]
}

// Stats returns the number of Update calls and of recomputes those
// updates triggered.
func (t *Tracker) Stats() (nUpd, nRec int) { return t.nUpd, t.nRec }

// ResetStats zeroes the counters.
func (t *Tracker) ResetStats() { t.nUpd, t.nRec = 0, 0 }

// excluded reports whether producer j is filtered out.
func (t *Tracker) excluded(j int) bool {
	if t.subInd == nil {
		return false
	}
	k := sort.SearchInts(t.subInd, j)
	found := k < len(t.subInd) && t.subInd[k] == j

	return found == t.subExcl
}

// Recompute rebuilds the list of variable i from the source. An empty
// result violates the tracker invariant and returns ErrAllExcluded.
//
// Complexity: O(|W_i| · K).
func (t *Tracker) Recompute(i int) error {
	if i < 0 || i >= t.src.NumVariables() {
		return fmt.Errorf("%w: variable %d", ErrIndexRange, i)
	}
	prod, links, vals := t.src.FactorValues(i)
	t.numValid[i] = 0
	for l, j := range prod {
		if t.excluded(j) {
			continue
		}
		t.insertEntry(i, j, vals[links[l]])
	}
	if t.numValid[i] == 0 {
		return fmt.Errorf("%w: variable %d", ErrAllExcluded, i)
	}

	return nil
}

// RecomputeAll rebuilds every list.
func (t *Tracker) RecomputeAll() error {
	for i := 0; i < t.src.NumVariables(); i++ {
		if err := t.Recompute(i); err != nil {
			return err
		}
	}

	return nil
}

// Update is the notification that link (j,i) now carries val; the
// underlying value array must already hold the new value (a recompute
// triggered here rereads it). j must not be excluded by the subset
// filter — this is not checked, mirroring the write-back contract.
func (t *Tracker) Update(i, j int, val float64) error {
	if i < 0 || j < 0 || i >= t.src.NumVariables() || j >= t.src.NumFactors() {
		return fmt.Errorf("%w: (%d,%d)", ErrIndexRange, i, j)
	}
	t.nUpd++
	if val <= t.topVal[i*(t.maxSize+1)+t.numValid[i]-1] {
		// New value no larger than the smallest tracked entry: it can
		// only knock j out of the list.
		if t.removeEntry(i, j) && t.numValid[i] == 0 {
			if err := t.Recompute(i); err != nil {
				return err
			}
			t.nRec++
		}

		return nil
	}
	t.removeEntry(i, j)
	t.insertEntry(i, j, val)

	return nil
}

// insertEntry places (val, j) into i's list, shifting smaller entries
// down through the dummy slot; the tail drops off at capacity K.
// Assumes j is not present and not excluded.
func (t *Tracker) insertEntry(i, j int, val float64) {
	num := t.numValid[i]
	base := i * (t.maxSize + 1)
	ti := t.topInd[base : base+t.maxSize+1]
	tv := t.topVal[base : base+t.maxSize+1]
	if num == t.maxSize && val <= tv[t.maxSize-1] {
		return // smaller than everything tracked
	}
	k := 0
	for k < num && val <= tv[k] {
		k++
	}
	// The shift deliberately runs one past num, into the dummy slot.
	for ; k <= num; k++ {
		tv[k], val = val, tv[k]
		ti[k], j = j, ti[k]
	}
	if num < t.maxSize {
		t.numValid[i]++
	}
}

// removeEntry drops producer j from i's list if present.
func (t *Tracker) removeEntry(i, j int) bool {
	num := t.numValid[i]
	base := i * (t.maxSize + 1)
	ti := t.topInd[base : base+t.maxSize+1]
	tv := t.topVal[base : base+t.maxSize+1]
	k := 0
	for k < num && ti[k] != j {
		k++
	}
	if k == num {
		return false
	}
	for ; k < num-1; k++ {
		ti[k] = ti[k+1]
		tv[k] = tv[k+1]
	}
	t.numValid[i]--

	return true
}
