// SPDX-License-Identifier: MIT

package factor

import "fmt"

// Representation holds the coupling factor B and the Gaussian message
// parameters for factorized EP. Potentials are rows j = 0..m-1,
// variables are columns i = 0..n-1.
//
// The arrays are borrowed from the caller, never copied: the message
// arrays beta and pi are overwritten in place during inference, all
// index arrays and B values stay immutable.
//
// Row index layout: rowInd[0:m+1] are offsets into the value arrays
// with rowInd[0] = 0 and rowInd[m] = nnz; rowInd[m+1:] is the
// concatenation of the supports V_j, so row j's support occupies
// rowInd[rowInd[j]+m+1 : rowInd[j+1]+m+1].
//
// Column index layout: colInd[0:n+1] are offsets into colInd itself
// with colInd[0] = n+1 and colInd[n] = 2*nnz+n+1; the block of column
// i holds W_i (ascending potential indices) followed by J_i (link
// ordinals into the value arrays), both of size (colInd[i+1]-colInd[i])/2.
type Representation struct {
	n, m   int
	rowInd []int
	colInd []int
	b      []float64
	beta   []float64
	pi     []float64
	maxRow int // max |V_j|, for scratch sizing
}

// Row is the view of one potential's links: aligned slices of length
// |V_j|. Beta and Pi alias the message arrays and may be written.
type Row struct {
	Support []int     // V_j, ascending variable indices
	B       []float64 // nonzeros of B(j,·)
	Beta    []float64 // β_{j,·} messages (writable)
	Pi      []float64 // π_{j,·} messages (writable)
}

// Col is the view of one variable's links. Support and Links have
// length |W_i|; B, Beta and Pi are the full flat value arrays, indexed
// through Links.
type Col struct {
	Support []int     // W_i, ascending potential indices
	Links   []int     // J_i, link ordinals into the flat arrays
	B       []float64 // all nonzeros of B
	Beta    []float64 // all β messages
	Pi      []float64 // all π messages
}

// New builds a Representation over caller-owned arrays, validating the
// structural invariants described on the type. The message arrays beta
// and pi are adopted as mutable state.
//
// Complexity: O(m + n + nnz) index validation; no allocation beyond the
// struct itself.
func New(n, m int, rowInd, colInd []int, b, beta, pi []float64) (*Representation, error) {
	nnz := len(b)
	if n < 1 || m < 1 {
		return nil, fmt.Errorf("%w: n=%d, m=%d", ErrBadSize, n, m)
	}
	if len(beta) != nnz || len(pi) != nnz {
		return nil, fmt.Errorf("%w: nnz=%d, beta=%d, pi=%d", ErrBadSize, nnz, len(beta), len(pi))
	}
	if len(rowInd) != m+1+nnz {
		return nil, fmt.Errorf("%w: rowInd length %d, want %d", ErrBadSize, len(rowInd), m+1+nnz)
	}
	if len(colInd) != n+1+2*nnz {
		return nil, fmt.Errorf("%w: colInd length %d, want %d", ErrBadSize, len(colInd), n+1+2*nnz)
	}
	if rowInd[0] != 0 || rowInd[m] != nnz {
		return nil, fmt.Errorf("%w: offsets must span [0,%d]", ErrBadRowIndex, nnz)
	}
	maxRow := 0
	for j := 0; j < m; j++ {
		sz := rowInd[j+1] - rowInd[j]
		// Zero rows are not allowed: an update on such a potential
		// could never succeed.
		if sz <= 0 || sz > n {
			return nil, fmt.Errorf("%w: row %d has %d entries", ErrBadRowIndex, j, sz)
		}
		if sz > maxRow {
			maxRow = sz
		}
	}
	for off := m + 1; off < len(rowInd); off++ {
		if v := rowInd[off]; v < 0 || v >= n {
			return nil, fmt.Errorf("%w: support entry %d out of range", ErrBadRowIndex, v)
		}
	}
	if colInd[0] != n+1 || colInd[n] != 2*nnz+n+1 {
		return nil, fmt.Errorf("%w: offsets must span [%d,%d]", ErrBadColIndex, n+1, 2*nnz+n+1)
	}
	for i := 0; i < n; i++ {
		blk := colInd[i+1] - colInd[i]
		if blk < 0 || blk%2 == 1 {
			return nil, fmt.Errorf("%w: column %d block length %d", ErrBadColIndex, i, blk)
		}
		sz := blk / 2
		// Zero columns are allowed (the variable is then untouched).
		if sz > m {
			return nil, fmt.Errorf("%w: column %d has %d entries", ErrBadColIndex, i, sz)
		}
		off := colInd[i]
		for k := 0; k < sz; k++ {
			if v := colInd[off+k]; v < 0 || v >= m {
				return nil, fmt.Errorf("%w: column %d support entry %d", ErrBadColIndex, i, v)
			}
			if v := colInd[off+sz+k]; v < 0 || v >= nnz {
				return nil, fmt.Errorf("%w: column %d link ordinal %d", ErrBadColIndex, i, v)
			}
		}
	}

	return &Representation{
		n: n, m: m,
		rowInd: rowInd, colInd: colInd,
		b: b, beta: beta, pi: pi,
		maxRow: maxRow,
	}, nil
}

// NumVariables returns n.
func (r *Representation) NumVariables() int { return r.n }

// NumPotentials returns m.
func (r *Representation) NumPotentials() int { return r.m }

// NumNonzeros returns the number of links.
func (r *Representation) NumNonzeros() int { return len(r.b) }

// MaxRowSize returns max_j |V_j|; drivers size scratch buffers from it
// once so the update path stays allocation-free.
func (r *Representation) MaxRowSize() int { return r.maxRow }

// AccessRow returns the link view of potential j. Beta and Pi alias
// mutable message state. O(1).
func (r *Representation) AccessRow(j int) (Row, error) {
	if j < 0 || j >= r.m {
		return Row{}, fmt.Errorf("%w: potential %d", ErrIndexRange, j)
	}
	lo, hi := r.rowInd[j], r.rowInd[j+1]

	return Row{
		Support: r.rowInd[lo+r.m+1 : hi+r.m+1],
		B:       r.b[lo:hi],
		Beta:    r.beta[lo:hi],
		Pi:      r.pi[lo:hi],
	}, nil
}

// AccessCol returns the link view of variable i. O(1).
func (r *Representation) AccessCol(i int) (Col, error) {
	if i < 0 || i >= r.n {
		return Col{}, fmt.Errorf("%w: variable %d", ErrIndexRange, i)
	}
	off := r.colInd[i]
	sz := (r.colInd[i+1] - off) / 2

	return Col{
		Support: r.colInd[off : off+sz],
		Links:   r.colInd[off+sz : off+2*sz],
		B:       r.b,
		Beta:    r.beta,
		Pi:      r.pi,
	}, nil
}

// CompMarginals sums the link messages into the variable marginals:
// β_i = Σ_{j∈W_i} β_{j,i}, π_i = Σ π_{j,i}. With increm the sums are
// added to the output arrays instead of overwriting them.
//
// Complexity: O(nnz).
func (r *Representation) CompMarginals(margBeta, margPi []float64, increm bool) error {
	if len(margBeta) != r.n || len(margPi) != r.n {
		return fmt.Errorf("%w: marginals need length %d", ErrBadSize, r.n)
	}
	for i := 0; i < r.n; i++ {
		off := r.colInd[i]
		sz := (r.colInd[i+1] - off) / 2
		links := r.colInd[off+sz : off+2*sz]
		var mBeta, mPi float64
		for _, jj := range links {
			mPi += r.pi[jj]
			mBeta += r.beta[jj]
		}
		if increm {
			margPi[i] += mPi
			margBeta[i] += mBeta
		} else {
			margPi[i] = mPi
			margBeta[i] = mBeta
		}
	}

	return nil
}
