// SPDX-License-Identifier: MIT

package potential

import (
	"math"

	"github.com/katalvlaran/epfact/specfun"
)

// GaussianPrec is the Gaussian potential with a random precision,
//
//	t(s, τ) = N(s | y, τ⁻¹),
//
// parameter y. Argument group GroupBivarPrec: the cavity supplies a
// Gamma(a⁻, c⁻) on τ and the moments of the tilted τ marginal are
// returned alongside (α, ν).
//
// Integrating out s leaves a one-dimensional integral over
// v = ρ⁻·τ with negative log-density
//
//	h_0(v) = ½·log(1+v) − (a⁻−½)·log v − ξ/(2(1+v)) + (c⁻/ρ⁻)·v + const,
//	ξ = (μ⁻−y)²/ρ⁻.
//
// (α, ν) derive from the moments of κ = v/(1+v), (â, ĉ) from those of
// v. For a⁻ > ½ the integrand is standardized around its mode, found
// as a root of a cubic; at or below ½ the mode sits on the boundary
// and no transformation is applied.
type GaussianPrec struct {
	y   float64
	cfg *QuadConfig
}

// NewGaussianPrec constructs the potential; cfg must be non-nil.
func NewGaussianPrec(y float64, cfg *QuadConfig) (*GaussianPrec, error) {
	c, err := quadConfigOf(cfg)
	if err != nil {
		return nil, err
	}

	return &GaussianPrec{y: y, cfg: c}, nil
}

// NumPars implements Potential.
func (*GaussianPrec) NumPars() int { return 1 }

// NumConstPars implements Potential.
func (*GaussianPrec) NumConstPars() int { return 0 }

// Pars implements Potential.
func (g *GaussianPrec) Pars(dst []float64) []float64 { return append(dst, g.y) }

// SetPars implements Potential.
func (g *GaussianPrec) SetPars(pv []float64) error {
	if len(pv) != 1 {
		return ErrBadPars
	}
	g.y = pv[0]

	return nil
}

// IsValidPars implements Potential.
func (*GaussianPrec) IsValidPars(pv []float64) bool { return len(pv) == 1 }

// LogConcave implements Potential.
func (*GaussianPrec) LogConcave() bool { return false }

// SuppFractional implements Potential.
func (*GaussianPrec) SuppFractional() bool { return false }

// Group implements Potential.
func (*GaussianPrec) Group() Group { return GroupBivarPrec }

// gpIntegrand carries the frozen h_0 parameters of one moment call.
type gpIntegrand struct {
	a     float64 // a⁻
	cdrho float64 // c⁻/ρ⁻
	xi    float64
	cnst  float64
	vstar float64
	sigma float64
	off   float64 // h_0(v*)
}

func (p *gpIntegrand) init() {
	p.cnst = 0.5*p.xi - p.a*math.Log(p.cdrho) + specfun.LogGamma(p.a)
}

func (p *gpIntegrand) h(v float64) float64 {
	if v <= 0.0 {
		return math.Inf(1)
	}

	return 0.5*math.Log1p(v) - (p.a-0.5)*math.Log(v) -
		0.5*p.xi/(1.0+v) + p.cdrho*v + p.cnst
}

// d2h is h_0”(v); it does not depend on cdrho.
func (p *gpIntegrand) d2h(v float64) float64 {
	t := v + 1.0

	return (p.a-0.5)/v/v - (0.5+p.xi/t)/t/t
}

// g evaluates the standardized integrand times κ^l·v^m.
func (p *gpIntegrand) g(x float64, l, m int) float64 {
	v := p.vstar + p.sigma*x
	if v <= 0.0 {
		return 0.0
	}
	hv := p.h(v)
	if math.IsInf(hv, 1) || math.IsNaN(hv) {
		return 0.0
	}
	r := math.Exp(p.off - hv)
	kap := v / (1.0 + v)
	for ; l > 0; l-- {
		r *= kap
	}
	for ; m > 0; m-- {
		r *= v
	}

	return r
}

// MomentsPrec implements BivarPrec. Five quadrature calls: the
// normalizer, E[κ], E[κ²] for (α, ν) and E[v], E[v²] for the Gamma
// match (E[τ^k] = E[v^k]/ρ⁻^k).
func (g *GaussianPrec) MomentsPrec(cmu, crho, ca, cc, eta float64) (alpha, nu, hatA, hatC, logZ float64, ok bool) {
	if eta != 1.0 {
		return 0, 0, 0, 0, 0, false
	}
	if crho < minCavVar || ca < minCavVar || cc < minCavVar {
		return 0, 0, 0, 0, 0, false
	}
	p := gpIntegrand{a: ca, cdrho: cc / crho}
	diff := cmu - g.y
	p.xi = diff * diff / crho
	p.init()

	// Standardize around the interior mode when it exists (a⁻ > ½);
	// otherwise the mode is the v = 0 boundary and the raw scale is
	// kept.
	p.vstar, p.sigma = 0.0, 1.0
	if ca > 0.5001 {
		gamma := 2.0 * p.cdrho
		roots := specfun.RootsCubic(
			2.0*(gamma-ca+1.0)/gamma,
			(gamma+p.xi-4.0*ca+3.0)/gamma,
			(1.0-2.0*ca)/gamma,
		)
		vstar := math.NaN()
		for _, r := range roots {
			if r > 0.0 && (math.IsNaN(vstar) || p.h(r) < p.h(vstar)) {
				vstar = r
			}
		}
		if math.IsNaN(vstar) {
			return 0, 0, 0, 0, 0, false // all cubic roots negative
		}
		p.vstar = vstar
		d2 := p.d2h(vstar)
		if d2 < -1e-10 {
			p.sigma = 1.0 // not a minimum: fall back
		} else {
			p.sigma = 1.0 / math.Sqrt(d2+1e-8)
		}
	}
	// Normalize by the integrand at the mode; on the boundary branch
	// (v* = 0, where h diverges) use the Gamma mean scale instead.
	ref := p.vstar
	if ref <= 0.0 {
		ref = p.a / p.cdrho
	}
	p.off = p.h(ref)
	if math.IsInf(p.off, 0) || math.IsNaN(p.off) {
		return 0, 0, 0, 0, 0, false
	}

	// The v > 0 domain maps to x > -v*/σ.
	lo := -p.vstar / p.sigma
	quadKV := func(l, m int) (float64, bool) {
		v, err := g.cfg.Integ.Quad(func(x float64) float64 {
			return p.g(x, l, m)
		}, lo, 0, false, true, nil)

		return v, err == nil
	}
	ztil, ok := quadKV(0, 0)
	if !ok || ztil < 1e-12 {
		return 0, 0, 0, 0, 0, false
	}
	ek1, ok1 := quadKV(1, 0)
	ek2, ok2 := quadKV(2, 0)
	ev1, ok3 := quadKV(0, 1)
	ev2, ok4 := quadKV(0, 2)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return 0, 0, 0, 0, 0, false
	}
	ek1, ek2 = ek1/ztil, ek2/ztil
	ev1, ev2 = ev1/ztil, ev2/ztil

	// s moments: α = E[κ](y−μ⁻)/ρ⁻, ν = E[κ]/ρ⁻ − (y−μ⁻)²Var[κ]/ρ⁻².
	alpha = ek1 * (g.y - cmu) / crho
	varKap := ek2 - ek1*ek1
	nu = ek1/crho - diff*diff/(crho*crho)*varKap

	// τ moments: E[τ] = E[v]/ρ⁻, Var[τ] = Var[v]/ρ⁻².
	varV := ev2 - ev1*ev1
	if varV < 1e-300 || ev1 <= 0.0 {
		return 0, 0, 0, 0, 0, false
	}
	meanTau := ev1 / crho
	varTau := varV / (crho * crho)
	hatA = meanTau * meanTau / varTau
	hatC = meanTau / varTau

	logZ = math.Log(ztil) - p.off + math.Log(p.sigma) -
		0.5*(math.Log(crho)+specfun.Ln2Pi)

	return alpha, nu, hatA, hatC, logZ, true
}
