// SPDX-License-Identifier: MIT
// Package factor: sentinel error set. All constructors and accessors
// return these (possibly wrapped with fmt.Errorf("...: %w")); tests
// match them via errors.Is.

package factor

import "errors"

var (
	// ErrBadSize indicates n or m out of range, or a value/index array
	// whose length contradicts the others.
	ErrBadSize = errors.New("factor: array sizes inconsistent")

	// ErrBadRowIndex indicates a malformed row index: offsets not
	// monotone, not starting at 0, not terminated by the nonzero
	// count, or an empty row (every row needs at least one nonzero).
	ErrBadRowIndex = errors.New("factor: invalid row index")

	// ErrBadColIndex indicates a malformed column index: offsets not
	// monotone, a block of odd length, or a block larger than m.
	ErrBadColIndex = errors.New("factor: invalid column index")

	// ErrBadTauIndex indicates a malformed precision index: k(j) out
	// of range, offsets not monotone, or a J_k list empty, unsorted or
	// out of range.
	ErrBadTauIndex = errors.New("factor: invalid tau index")

	// ErrIndexRange indicates a row, column or precision-variable
	// index outside its valid range.
	ErrIndexRange = errors.New("factor: index out of range")

	// ErrNoPrec indicates a precision-only operation on a
	// representation without precision potentials.
	ErrNoPrec = errors.New("factor: representation has no precision potentials")
)
