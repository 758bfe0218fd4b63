// SPDX-License-Identifier: MIT
// Package potential: sentinel error set. Construction and argument
// errors only — numerical failure of a moment computation is an
// ok=false return by design, never an error.

package potential

import "errors"

var (
	// ErrBadPars indicates a parameter vector of wrong length or with
	// values outside the family's domain.
	ErrBadPars = errors.New("potential: invalid parameters")

	// ErrUnknownID indicates a potential ID outside the registry.
	ErrUnknownID = errors.New("potential: unknown potential ID")

	// ErrNotImplemented indicates a registered but unimplemented
	// family (the reserved Exponential slot).
	ErrNotImplemented = errors.New("potential: family not implemented")

	// ErrAnnotation indicates a missing or mistyped annotation for a
	// family that requires one (quadrature configuration).
	ErrAnnotation = errors.New("potential: missing or invalid annotation")

	// ErrIndexRange indicates a potential index outside a manager.
	ErrIndexRange = errors.New("potential: index out of range")

	// ErrBadBlocks indicates inconsistent flat block arrays passed to
	// the manager factory.
	ErrBadBlocks = errors.New("potential: invalid block description")

	// ErrGroupOrder indicates bivariate-precision potentials that do
	// not form a contiguous suffix.
	ErrGroupOrder = errors.New("potential: bivariate-precision potentials must form suffix")
)
