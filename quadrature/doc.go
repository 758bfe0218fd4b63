// Package quadrature provides the numerical integration engine behind
// quadrature-backed EP potentials, together with the integrand-side
// interfaces those potentials implement (Potential, Proximal).
//
// The engine contract (Integrator) mirrors what the moment code needs:
// integrate f over [a,b] where either end may be infinite, with an
// optional increasing list of interior way-points at which f is
// non-smooth. The default implementation, Panels, splits the domain at
// the way-points, maps infinite tails onto (0,1) via x = t/(1-t), and
// applies fixed Gauss–Legendre rules (gonum integrate/quad) with panel
// doubling until successive estimates agree to a relative tolerance.
//
// Integrands are expected to be normalized by the caller (the moment
// code divides out the mode value first), so magnitudes near 1 and
// hard zeros in the far tails are the typical regime.
package quadrature
