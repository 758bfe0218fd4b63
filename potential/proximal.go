// SPDX-License-Identifier: MIT

package potential

import (
	"github.com/katalvlaran/epfact/optimize"
	"github.com/katalvlaran/epfact/quadrature"
)

// proximalNewton computes the proximal map
//
//	s* = argmin_s ρ·l(s) + (s − h)²/2
//
// by root finding on f(s) = ρ·l'(s) + s − h with the guarded Newton
// solver. The family supplies an initial bracket [l, r] through
// bracket; r ≤ l means no right end is known and one is searched
// (valid whenever l is convex, i.e. the family is log-concave). ok is
// false when the solve fails.
func proximalNewton(qp quadrature.Potential, bracket func(h, rho float64) (l, r float64),
	acc, facc, h, rho float64) (float64, bool) {
	if rho < 1e-16 {
		return 0.0, false
	}
	fn := optimize.FuncOf(func(s float64) (float64, float64) {
		_, dl, ddl := qp.Eval(s)
		return rho*dl + s - h, rho*ddl + 1.0
	})
	l, r := bracket(h, rho)
	br := optimize.BracketInfinite
	if r > l {
		br = optimize.BracketRegular
	}
	sstar, err := optimize.Newton(fn, l, r, acc, facc, br, 0.0)
	if err != nil && br == optimize.BracketRegular {
		// The supplied right end may not bracket for extreme cavities;
		// retry with an open search before giving up.
		sstar, err = optimize.Newton(fn, l, l+acc, acc, facc, optimize.BracketInfinite, 0.0)
	}

	return sstar, err == nil
}
