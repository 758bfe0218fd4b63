// Package optimize provides a guarded one-dimensional Newton root
// finder used by proximal-map computations in the potential package.
//
// Newton maintains a bracket [l,r] with f(l)·f(r) < 0 and alternates
// Newton and bisection steps, falling back to bisection whenever a
// Newton step leaves the bracket or fails to shrink it by at least
// 15%. The right bracket end may be discovered automatically, either
// below a known pole (BracketBound) or unbounded (BracketInfinite).
//
// The algorithm is deterministic and allocation-free; failures are
// reported as errors, never panics.
package optimize
