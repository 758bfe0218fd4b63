// Package specfun provides the special functions required by EP moment
// computations: the standard normal c.d.f. Φ and its logarithm, the
// derivative of log Φ (hazard function of the reversed argument), the
// log-Gamma function, a numerically stable log-sum-exp, and real roots
// of cubic polynomials.
//
// Φ-related functions use the rational Chebyshev approximations of
// W. J. Cody ("Rational Chebyshev approximation to the error
// function"), split into three argument ranges. They stay accurate far
// into the tails, where the naive log(Φ(z)) underflows: LogCdfNormal
// is usable down to z ≈ -37 and beyond via the asymptotic branch.
//
// All functions are pure and safe for concurrent use.
package specfun
