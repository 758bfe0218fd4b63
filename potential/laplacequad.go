// SPDX-License-Identifier: MIT

package potential

import (
	"math"

	"github.com/katalvlaran/epfact/quadrature"
	"github.com/katalvlaran/epfact/specfun"
)

// laplaceQuadMoments implements the univariate moment service for a
// quadrature-backed family: the integrand
//
//	exp(−h(s)),  h(s) = η·l(s) + (s − μ⁻)²/(2ρ⁻)
//
// is located at its mode s* (proximal map), standardized by
// σ = 1/√h”(s*), and the moments of x = (s − s*)/σ are integrated.
// When s* falls on an interval end or a way-point (where l may not be
// twice differentiable) σ falls back to √ρ⁻.
//
// ok is false on proximal failure, integration failure, or a vanishing
// normalizer.
func laplaceQuadMoments(qp quadrature.Proximal, cfg *QuadConfig,
	cmu, crho, eta float64) (alpha, nu, logZ float64, ok bool) {
	if crho < minCavVar || eta < minEta || eta > 1.0 {
		return 0, 0, 0, false
	}
	sstar, ok := qp.Proximal(cmu, eta*crho)
	if !ok {
		return 0, 0, 0, false
	}

	// Interval and way-points; detect s* on a critical point.
	a, b, aInf, bInf, wayPts := qp.Interval()
	if !qp.HasWayPoints() {
		wayPts = nil
	}
	isCritical := (!aInf && math.Abs(sstar-a) < 1e-5) ||
		(!bInf && math.Abs(sstar-b) < 1e-5)
	for _, w := range wayPts {
		if math.Abs(sstar-w) < 1e-5 {
			isCritical = true
			break
		}
	}

	h := func(s float64) float64 {
		l, _, _ := qp.Eval(s)
		diff := s - cmu
		return eta*l + 0.5*diff*diff/crho
	}
	var sigma float64
	if isCritical {
		sigma = math.Sqrt(crho)
	} else {
		_, _, ddl := qp.Eval(sstar)
		d2 := eta*ddl + 1.0/crho
		if d2 < -1e-10 {
			// Not actually a minimum: fall back to the cavity scale.
			sigma = math.Sqrt(crho)
		} else {
			sigma = 1.0 / math.Sqrt(d2+1e-8)
		}
	}
	hstar := h(sstar)
	if math.IsInf(hstar, 0) || math.IsNaN(hstar) {
		return 0, 0, 0, false
	}

	// Transform interval and way-points to x coordinates.
	if !aInf {
		a = (a - sstar) / sigma
	}
	if !bInf {
		b = (b - sstar) / sigma
	}
	var wp []float64
	if len(wayPts) > 0 {
		wp = make([]float64, len(wayPts))
		for i, w := range wayPts {
			wp[i] = (w - sstar) / sigma
		}
	}

	g := func(k int) func(float64) float64 {
		return func(x float64) float64 {
			hv := h(sstar + sigma*x)
			if math.IsInf(hv, 1) || math.IsNaN(hv) {
				return 0.0
			}
			r := math.Exp(hstar - hv)
			switch k {
			case 1:
				r *= x
			case 2:
				r *= x * x
			}
			return r
		}
	}

	ztil, err := cfg.Integ.Quad(g(0), a, b, aInf, bInf, wp)
	if err != nil || ztil < 1e-12 {
		return 0, 0, 0, false
	}
	ex1, err := cfg.Integ.Quad(g(1), a, b, aInf, bInf, wp)
	if err != nil {
		return 0, 0, 0, false
	}
	ex2, err := cfg.Integ.Quad(g(2), a, b, aInf, bInf, wp)
	if err != nil {
		return 0, 0, 0, false
	}
	ex1 /= ztil
	ex2 /= ztil

	logZ = math.Log(ztil) - hstar + math.Log(sigma) -
		0.5*(math.Log(crho)+specfun.Ln2Pi)
	alpha = (sigma*ex1 + sstar - cmu) / crho
	variance := ex2 - ex1*ex1
	nu = (1.0 - variance*sigma*sigma/crho) / crho

	return alpha, nu, logZ, true
}
