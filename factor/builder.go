// SPDX-License-Identifier: MIT

package factor

import "fmt"

// FromRows compiles the dual row/column index from a per-potential
// description: supports[j] lists the variable indices of V_j
// (ascending), vals[j] the matching nonzeros of B(j,·). It returns the
// three structural arrays consumed by New. Host environments usually
// precompile this layout once and pass it around; this helper exists
// for Go callers and tests.
//
// Complexity: O(n + m + nnz).
func FromRows(n int, supports [][]int, vals [][]float64) (rowInd, colInd []int, b []float64, err error) {
	m := len(supports)
	if n < 1 || m < 1 || len(vals) != m {
		return nil, nil, nil, fmt.Errorf("%w: n=%d, m=%d, vals=%d", ErrBadSize, n, m, len(vals))
	}
	nnz := 0
	for j, sup := range supports {
		if len(sup) == 0 {
			return nil, nil, nil, fmt.Errorf("%w: row %d empty", ErrBadRowIndex, j)
		}
		if len(sup) != len(vals[j]) {
			return nil, nil, nil, fmt.Errorf("%w: row %d support/value mismatch", ErrBadSize, j)
		}
		prev := -1
		for _, i := range sup {
			if i <= prev || i >= n {
				return nil, nil, nil, fmt.Errorf("%w: row %d support not ascending in range", ErrBadRowIndex, j)
			}
			prev = i
		}
		nnz += len(sup)
	}

	// 1) Row index: offsets followed by the concatenated supports.
	rowInd = make([]int, m+1+nnz)
	b = make([]float64, 0, nnz)
	off := 0
	for j, sup := range supports {
		rowInd[j] = off
		copy(rowInd[m+1+off:], sup)
		b = append(b, vals[j]...)
		off += len(sup)
	}
	rowInd[m] = nnz

	// 2) Column index: count, then fill W_i and J_i per column.
	counts := make([]int, n)
	for _, sup := range supports {
		for _, i := range sup {
			counts[i]++
		}
	}
	colInd = make([]int, n+1+2*nnz)
	pos := n + 1
	for i := 0; i < n; i++ {
		colInd[i] = pos
		pos += 2 * counts[i]
	}
	colInd[n] = pos
	fill := make([]int, n)
	ord := 0
	for j, sup := range supports {
		for range sup {
			i := rowInd[m+1+ord] // variable of link ordinal ord
			base := colInd[i]
			sz := counts[i]
			colInd[base+fill[i]] = j      // W_i entry
			colInd[base+sz+fill[i]] = ord // J_i entry
			fill[i]++
			ord++
		}
	}

	return rowInd, colInd, b, nil
}

// FromDense compiles the layout from a dense matrix (rows =
// potentials). Zero entries are skipped; every row needs at least one
// nonzero. Intended for tests and small models.
func FromDense(B [][]float64) (n int, rowInd, colInd []int, b []float64, err error) {
	m := len(B)
	if m == 0 {
		return 0, nil, nil, nil, fmt.Errorf("%w: empty matrix", ErrBadSize)
	}
	n = len(B[0])
	supports := make([][]int, m)
	vals := make([][]float64, m)
	for j, row := range B {
		if len(row) != n {
			return 0, nil, nil, nil, fmt.Errorf("%w: ragged row %d", ErrBadSize, j)
		}
		for i, v := range row {
			if v != 0.0 {
				supports[j] = append(supports[j], i)
				vals[j] = append(vals[j], v)
			}
		}
	}
	rowInd, colInd, b, err = FromRows(n, supports, vals)

	return n, rowInd, colInd, b, err
}
