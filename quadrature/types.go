package quadrature

import "errors"

// Integrator computes ∫ f over [a,b]. a is ignored when aInf is true
// (left end -∞), likewise b with bInf. wayPts, when non-nil, is an
// increasing list of interior points where f may be discontinuous,
// non-differentiable or singular; entries must lie strictly inside the
// interval. A nil/empty list means f is smooth on the interior.
type Integrator interface {
	Quad(f func(float64) float64, a, b float64, aInf, bInf bool, wayPts []float64) (float64, error)
}

// Potential is the integrand side of a quadrature-backed EP potential:
// l(s) = -log t(s) with optional derivatives, plus the integration
// interval and way-points.
type Potential interface {
	// HasFirstDerivs reports whether Eval returns l'(s).
	HasFirstDerivs() bool
	// HasSecondDerivs reports whether Eval returns l''(s). Implies
	// HasFirstDerivs.
	HasSecondDerivs() bool
	// HasWayPoints reports whether Interval returns way-points.
	HasWayPoints() bool
	// Eval returns l(s) and, subject to the flags above, l'(s), l''(s).
	Eval(s float64) (l, dl, ddl float64)
	// Interval returns the integration interval [a,b]; a is ignored
	// when aInf (left end -∞), likewise b with bInf. wayPts (only
	// meaningful when HasWayPoints) excludes the endpoints.
	Interval() (a, b float64, aInf, bInf bool, wayPts []float64)
}

// Proximal extends Potential by the proximal map
//
//	s* = argmin_s ρ·l(s) + (s-h)²/2,
//
// used to normalize integrand location before quadrature. ok is false
// when the minimization fails.
type Proximal interface {
	Potential
	Proximal(h, rho float64) (sstar float64, ok bool)
}

// Sentinel errors of the default engine.
var (
	// ErrBadInterval flags an empty interval or way-points that are
	// unsorted or outside the open interval.
	ErrBadInterval = errors.New("quadrature: invalid interval or way-points")

	// ErrNotConverged flags panel doubling exhausting its budget
	// without two successive estimates agreeing to tolerance.
	ErrNotConverged = errors.New("quadrature: panel refinement did not converge")
)
