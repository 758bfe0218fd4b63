// SPDX-License-Identifier: MIT
// Package ep: sentinel error set. Errors flag caller bugs (argument
// validation, tracker misconfiguration); expected numerical failures
// travel through Status codes instead.

package ep

import "errors"

var (
	// ErrBadSize indicates marginal or output arrays inconsistent
	// with the representation.
	ErrBadSize = errors.New("ep: array sizes inconsistent")

	// ErrBadThreshold indicates a non-positive ε threshold.
	ErrBadThreshold = errors.New("ep: thresholds must be positive")

	// ErrBadDamp indicates a damping factor outside [0, 1).
	ErrBadDamp = errors.New("ep: damping factor must be in [0,1)")

	// ErrGroupMismatch indicates a potential manager whose argument
	// groups do not match the representation (univariate driver with
	// bivariate potentials, or a precision driver without any).
	ErrGroupMismatch = errors.New("ep: potential groups do not match representation")

	// ErrBadIndex indicates an update index outside 0..m-1.
	ErrBadIndex = errors.New("ep: potential index out of range")
)
