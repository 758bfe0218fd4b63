// SPDX-License-Identifier: MIT

package potential

import (
	"math"

	"github.com/katalvlaran/epfact/specfun"
)

// Probit is the Gaussian-c.d.f. classification potential
//
//	t(s) = Φ(y(s + soff))        (soft)
//	t(s) = I{y(s + soff) ≥ 0}    (hard step / Heaviside)
//
// with target y ∈ {−1, +1} and offset soff. The hard variant is
// selected at construction and is not a parameter.
//
// The soft variant additionally implements the quadrature integrand
// interfaces (Eval, Interval, Proximal); the closed form stays the
// production path, the quadrature path exists to exercise the engine
// against a potential with known moments.
type Probit struct {
	y    float64
	soff float64
	hard bool
	acc  float64
	facc float64
}

// NewProbit constructs the soft potential.
func NewProbit(y, soff float64) (*Probit, error) {
	return newProbit(y, soff, false)
}

// NewHeaviside constructs the hard-step potential.
func NewHeaviside(y, soff float64) (*Probit, error) {
	return newProbit(y, soff, true)
}

func newProbit(y, soff float64, hard bool) (*Probit, error) {
	p := &Probit{hard: hard, acc: 1e-7, facc: 1e-7}
	if err := p.SetPars([]float64{y, soff}); err != nil {
		return nil, err
	}

	return p, nil
}

// Hard reports whether this is the Heaviside variant.
func (p *Probit) Hard() bool { return p.hard }

// NumPars implements Potential.
func (*Probit) NumPars() int { return 2 }

// NumConstPars implements Potential.
func (*Probit) NumConstPars() int { return 0 }

// Pars implements Potential.
func (p *Probit) Pars(dst []float64) []float64 { return append(dst, p.y, p.soff) }

// SetPars implements Potential.
func (p *Probit) SetPars(pv []float64) error {
	if !p.IsValidPars(pv) {
		return ErrBadPars
	}
	p.y, p.soff = pv[0], pv[1]

	return nil
}

// IsValidPars implements Potential.
func (p *Probit) IsValidPars(pv []float64) bool {
	return len(pv) == 2 && (pv[0] == 1.0 || pv[0] == -1.0)
}

// LogConcave implements Potential.
func (*Probit) LogConcave() bool { return true }

// SuppFractional implements Potential.
func (*Probit) SuppFractional() bool { return false }

// Group implements Potential.
func (*Probit) Group() Group { return GroupUnivariate }

// Moments implements Univariate. With z = y(μ⁻+soff)/√(ρ⁻+1) (soft;
// the +1 drops for the hard step):
//
//	log Z = log Φ(z), α = y·(logΦ)'(z)/√(ρ⁻+1), ν = α(α + (μ⁻+soff)/(ρ⁻+1)).
func (p *Probit) Moments(cmu, crho, eta float64) (alpha, nu, logZ float64, ok bool) {
	if eta != 1.0 {
		return 0, 0, 0, false
	}
	if crho <= 0.0 || (p.hard && crho <= 1e-12) {
		return 0, 0, 0, false
	}
	cmupbt := cmu + p.soff
	crhop1 := crho
	if !p.hard {
		crhop1 = crho + 1.0
	}
	fct := p.y / math.Sqrt(crhop1)
	z := cmupbt * fct
	logZ = specfun.LogCdfNormal(z)
	alpha = fct * specfun.DerivLogCdfNormal(z)
	nu = alpha * (alpha + cmupbt/crhop1)

	return alpha, nu, logZ, true
}

// ---- quadrature integrand side (soft variant only) ----

// HasFirstDerivs implements quadrature.Potential.
func (p *Probit) HasFirstDerivs() bool { return !p.hard }

// HasSecondDerivs implements quadrature.Potential.
func (p *Probit) HasSecondDerivs() bool { return !p.hard }

// HasWayPoints implements quadrature.Potential.
func (p *Probit) HasWayPoints() bool { return !p.hard }

// Interval implements quadrature.Potential: the whole line, smooth.
func (p *Probit) Interval() (a, b float64, aInf, bInf bool, wayPts []float64) {
	return 0, 0, true, true, nil
}

// Eval implements quadrature.Potential: l(s) = −log Φ(y(s+soff));
// the derivatives follow from (logΦ)” = −(logΦ)'((logΦ)' + z).
func (p *Probit) Eval(s float64) (l, dl, ddl float64) {
	z := p.y * (s + p.soff)
	d := -p.y * specfun.DerivLogCdfNormal(z)
	l = -specfun.LogCdfNormal(z)
	dl = d
	ddl = d * (d - z*p.y)

	return l, dl, ddl
}

// Proximal implements quadrature.Proximal via the guarded Newton
// solve; the initial bracket follows the hazard-function bound.
func (p *Probit) Proximal(h, rho float64) (float64, bool) {
	if p.hard {
		return 0.0, false
	}

	return proximalNewton(p, p.initBracket, p.acc, p.facc, h, rho)
}

// initBracket returns [l, r] around the proximal solution.
func (p *Probit) initBracket(h, rho float64) (l, r float64) {
	c := rho * specfun.Sqrt2 / specfun.SqrtPi
	t := p.y * (h + p.soff)
	if t >= 0.0 {
		l = h
	} else {
		l = (h - rho*p.soff) / (1.0 + rho)
	}
	if t+c >= 0.0 {
		r = h + p.y*c
	} else {
		r = (h - rho*p.soff + p.y*c) / (1.0 + rho)
	}
	if r < l {
		l, r = r, l
	}

	return l, r
}
