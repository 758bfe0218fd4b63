// SPDX-License-Identifier: MIT

package factor

import "fmt"

// PrecRepresentation extends a Representation for models whose suffix
// of potentials is bivariate in a precision variable τ_k(j). It adds
// the Gamma message parameters (a, c) per precision potential and the
// flat index binding j ↔ k.
//
// tauInd layout, with mPrec precision potentials and K precision
// variables (length 2*mPrec + K + 2):
//   - tauInd[0:mPrec]: k(j) per precision potential (0-based ordinal j)
//   - tauInd[mPrec]: K
//   - tauInd[mPrec+1 : mPrec+K+2]: start offsets of the J_k lists
//     (absolute positions into tauInd), terminated by len(tauInd)
//   - the J_k lists, each ascending, jointly covering 0..mPrec-1
//
// Precision potentials always occupy the suffix of 0..m-1; an absolute
// potential index j maps to ordinal j - (m - mPrec).
type PrecRepresentation struct {
	*Representation
	numK   int
	tauInd []int
	a      []float64
	c      []float64
}

// TauCol is the view of one precision variable's links: Js lists the
// precision-potential ordinals connected to τ_k, which double as
// indices into the flat A and C message arrays.
type TauCol struct {
	Js []int     // J_k, ascending precision ordinals
	A  []float64 // all a messages (writable)
	C  []float64 // all c messages (writable)
}

// CheckTauIndex validates the tauInd layout for mPrec precision
// potentials and returns the number K of precision variables.
func CheckTauIndex(tauInd []int, mPrec int) (int, error) {
	if mPrec < 1 || len(tauInd) < mPrec+1 {
		return 0, fmt.Errorf("%w: mPrec=%d, len=%d", ErrBadTauIndex, mPrec, len(tauInd))
	}
	numK := tauInd[mPrec]
	if numK < 1 || len(tauInd) != 2*mPrec+numK+2 {
		return 0, fmt.Errorf("%w: K=%d, len=%d", ErrBadTauIndex, numK, len(tauInd))
	}
	for j := 0; j < mPrec; j++ {
		if k := tauInd[j]; k < 0 || k >= numK {
			return 0, fmt.Errorf("%w: k(%d)=%d", ErrBadTauIndex, j, tauInd[j])
		}
	}
	base := mPrec + numK + 2
	if tauInd[mPrec+1] != base || tauInd[mPrec+numK+1] != len(tauInd) {
		return 0, fmt.Errorf("%w: offsets must span [%d,%d]", ErrBadTauIndex, base, len(tauInd))
	}
	seen := 0
	for k := 0; k < numK; k++ {
		lo, hi := tauInd[mPrec+1+k], tauInd[mPrec+2+k]
		if hi <= lo || lo < base || hi > len(tauInd) {
			return 0, fmt.Errorf("%w: J_%d empty or out of bounds", ErrBadTauIndex, k)
		}
		prev := -1
		for _, j := range tauInd[lo:hi] {
			if j <= prev || j >= mPrec {
				return 0, fmt.Errorf("%w: J_%d not ascending in range", ErrBadTauIndex, k)
			}
			if tauInd[j] != k {
				return 0, fmt.Errorf("%w: J_%d lists j=%d but k(j)=%d", ErrBadTauIndex, k, j, tauInd[j])
			}
			prev = j
		}
		seen += hi - lo
	}
	if seen != mPrec {
		return 0, fmt.Errorf("%w: J lists cover %d of %d potentials", ErrBadTauIndex, seen, mPrec)
	}

	return numK, nil
}

// NewPrec wraps base with the precision extension. aVals and cVals
// (length mPrec ≤ m) are adopted as mutable Gamma message state;
// tauInd is validated by CheckTauIndex.
func NewPrec(base *Representation, aVals, cVals []float64, tauInd []int) (*PrecRepresentation, error) {
	mPrec := len(aVals)
	if mPrec == 0 || mPrec > base.m || len(cVals) != mPrec {
		return nil, fmt.Errorf("%w: mPrec=%d, m=%d, c=%d", ErrBadSize, mPrec, base.m, len(cVals))
	}
	numK, err := CheckTauIndex(tauInd, mPrec)
	if err != nil {
		return nil, err
	}

	return &PrecRepresentation{
		Representation: base,
		numK:           numK,
		tauInd:         tauInd,
		a:              aVals,
		c:              cVals,
	}, nil
}

// NumPrecPotentials returns the number of bivariate precision
// potentials (the suffix length).
func (r *PrecRepresentation) NumPrecPotentials() int { return len(r.a) }

// NumPrecVariables returns K.
func (r *PrecRepresentation) NumPrecVariables() int { return r.numK }

// AccessTauRow returns, for absolute potential index j, the precision
// variable k(j) and pointers to the (a, c) message of that link. O(1).
func (r *PrecRepresentation) AccessTauRow(j int) (k int, a, c *float64, err error) {
	start := r.m - len(r.a)
	if j < start || j >= r.m {
		return 0, nil, nil, fmt.Errorf("%w: potential %d not in precision suffix", ErrIndexRange, j)
	}
	ord := j - start

	return r.tauInd[ord], &r.a[ord], &r.c[ord], nil
}

// AccessTauCol returns the link view of precision variable k. O(1).
func (r *PrecRepresentation) AccessTauCol(k int) (TauCol, error) {
	if k < 0 || k >= r.numK {
		return TauCol{}, fmt.Errorf("%w: precision variable %d", ErrIndexRange, k)
	}
	mPrec := len(r.a)
	lo, hi := r.tauInd[mPrec+1+k], r.tauInd[mPrec+2+k]

	return TauCol{
		Js: r.tauInd[lo:hi],
		A:  r.a,
		C:  r.c,
	}, nil
}

// CompTauMarginals sums the Gamma messages into the τ marginals:
// a_k = Σ_{j: k(j)=k} a_{j,k}, c_k likewise. With increm the sums are
// added instead of overwriting. O(mPrec).
func (r *PrecRepresentation) CompTauMarginals(margA, margC []float64, increm bool) error {
	if len(margA) != r.numK || len(margC) != r.numK {
		return fmt.Errorf("%w: tau marginals need length %d", ErrBadSize, r.numK)
	}
	mPrec := len(r.a)
	for k := 0; k < r.numK; k++ {
		lo, hi := r.tauInd[mPrec+1+k], r.tauInd[mPrec+2+k]
		var mA, mC float64
		for _, j := range r.tauInd[lo:hi] {
			mA += r.a[j]
			mC += r.c[j]
		}
		if increm {
			margA[k] += mA
			margC[k] += mC
		} else {
			margA[k] = mA
			margC[k] = mC
		}
	}

	return nil
}
