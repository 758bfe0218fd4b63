// SPDX-License-Identifier: MIT

package potential

import (
	"math"

	"github.com/katalvlaran/epfact/optimize"
	"github.com/katalvlaran/epfact/specfun"
)

// poissonCommon carries the shared state of the Poisson count
// potentials
//
//	t(s) = (y!)⁻¹ λ(s)^y exp(−λ(s)),  y ∈ ℕ,
//
// with the rate function λ(s) supplied by the concrete family.
type poissonCommon struct {
	y        float64
	logYFact float64 // log(y!)
	cfg      *QuadConfig
}

func (p *poissonCommon) setY(y float64) error {
	i := int(math.Ceil(y))
	if i < 0 || float64(i) != y {
		return ErrBadPars
	}
	p.y = y
	p.logYFact = specfun.LogGamma(y + 1.0)

	return nil
}

// NumPars implements Potential.
func (*poissonCommon) NumPars() int { return 1 }

// NumConstPars implements Potential.
func (*poissonCommon) NumConstPars() int { return 0 }

// Pars implements Potential.
func (p *poissonCommon) Pars(dst []float64) []float64 { return append(dst, p.y) }

// SetPars implements Potential.
func (p *poissonCommon) SetPars(pv []float64) error {
	if len(pv) != 1 {
		return ErrBadPars
	}

	return p.setY(pv[0])
}

// IsValidPars implements Potential.
func (*poissonCommon) IsValidPars(pv []float64) bool {
	if len(pv) != 1 {
		return false
	}
	i := int(math.Ceil(pv[0]))

	return i >= 0 && float64(i) == pv[0]
}

// LogConcave implements Potential (both rate functions keep it so).
func (*poissonCommon) LogConcave() bool { return true }

// SuppFractional implements Potential: the quadrature path integrates
// t(s)^η directly.
func (*poissonCommon) SuppFractional() bool { return true }

// Group implements Potential.
func (*poissonCommon) Group() Group { return GroupUnivariate }

// HasFirstDerivs implements quadrature.Potential.
func (*poissonCommon) HasFirstDerivs() bool { return true }

// HasSecondDerivs implements quadrature.Potential.
func (*poissonCommon) HasSecondDerivs() bool { return true }

// HasWayPoints implements quadrature.Potential.
func (*poissonCommon) HasWayPoints() bool { return true }

// Interval implements quadrature.Potential: the whole line, l smooth.
func (*poissonCommon) Interval() (a, b float64, aInf, bInf bool, wayPts []float64) {
	return 0, 0, true, true, nil
}

// PoissonExpRate is the Poisson potential with exponential rate
// λ(s) = exp(s). Its proximal map reduces to the root of
// e^u + u = a, solved with a closed-form bracket.
type PoissonExpRate struct {
	poissonCommon
}

// NewPoissonExpRate constructs the potential. cfg supplies the
// quadrature engine and Newton accuracies and must be non-nil.
func NewPoissonExpRate(y float64, cfg *QuadConfig) (*PoissonExpRate, error) {
	c, err := quadConfigOf(cfg)
	if err != nil {
		return nil, err
	}
	p := &PoissonExpRate{}
	p.cfg = c
	if err := p.setY(y); err != nil {
		return nil, err
	}

	return p, nil
}

// Eval implements quadrature.Potential:
// l(s) = e^s − y·s + log(y!), l' = e^s − y, l” = e^s.
func (p *PoissonExpRate) Eval(s float64) (l, dl, ddl float64) {
	e := math.Exp(s)

	return e - s*p.y + p.logYFact, e - p.y, e
}

// Proximal implements quadrature.Proximal. Substituting u = s + log ρ
// turns ρ(e^s − y) + s − h = 0 into e^u + u = a with
// a = h + yρ + log ρ; the bracket is [a − e^a, a] for a ≤ 1 and
// [log a + log1p(−log(a)/a), log a] otherwise.
func (p *PoissonExpRate) Proximal(h, rho float64) (float64, bool) {
	if rho < 1e-16 {
		return 0.0, false
	}
	a := h + p.y*rho + math.Log(rho)
	var bL, bR float64
	if a <= 1.001 {
		bL, bR = a-math.Exp(a), a
	} else {
		bR = math.Log(a)
		bL = bR + math.Log1p(-bR/a)
		if bL > bR {
			bL, bR = bR, bL
		}
	}
	fn := optimize.FuncOf(func(u float64) (float64, float64) {
		e := math.Exp(u)
		return e + u - a, e + 1.0
	})
	u, err := optimize.Newton(fn, bL, bR, p.cfg.Acc, p.cfg.FAcc,
		optimize.BracketRegular, 0.0)
	if err != nil {
		return 0.0, false
	}

	return u - math.Log(rho), true
}

// Moments implements Univariate through the Laplace-standardized
// quadrature pipeline.
func (p *PoissonExpRate) Moments(cmu, crho, eta float64) (alpha, nu, logZ float64, ok bool) {
	return laplaceQuadMoments(p, p.cfg, cmu, crho, eta)
}

// PoissonLogisticRate is the Poisson potential with logistic rate
// λ(s) = log(1 + e^s); the proximal map uses the generic Newton solve
// with a staged initial bracket.
type PoissonLogisticRate struct {
	poissonCommon
}

// NewPoissonLogisticRate constructs the potential; cfg as above.
func NewPoissonLogisticRate(y float64, cfg *QuadConfig) (*PoissonLogisticRate, error) {
	c, err := quadConfigOf(cfg)
	if err != nil {
		return nil, err
	}
	p := &PoissonLogisticRate{}
	p.cfg = c
	if err := p.setY(y); err != nil {
		return nil, err
	}

	return p, nil
}

// Eval implements quadrature.Potential. The two exp branches keep
// σ(s), λ(s) and σ/λ stable for large |s|.
func (p *PoissonLogisticRate) Eval(s float64) (l, dl, ddl float64) {
	var sig, lam, sgdlm float64
	if s >= 0.0 {
		t := math.Exp(-s)
		sig = 1.0 / (1.0 + t)
		lam = s + math.Log1p(t)
		sgdlm = sig / lam
	} else {
		t := math.Exp(s)
		sig = t / (1.0 + t)
		lam = math.Log1p(t)
		if s > -10.0 {
			sgdlm = sig / lam
		} else {
			// σ/λ → 1/(1+e^s) as s → −∞.
			sgdlm = 1.0 / (1.0 + t)
		}
	}
	l = lam + p.logYFact
	if p.y > 0.0 {
		l -= p.y * math.Log(lam)
	}
	dl = sig - p.y*sgdlm
	ddl = sig*(1.0-sig) + p.y*sgdlm*(sgdlm-(1.0-sig))

	return l, dl, ddl
}

// Proximal implements quadrature.Proximal.
func (p *PoissonLogisticRate) Proximal(h, rho float64) (float64, bool) {
	return proximalNewton(p, p.initBracket, p.cfg.Acc, p.cfg.FAcc, h, rho)
}

// initBracket fixes the left end at h − ρ and stages candidate right
// ends at decreasing logit offsets a, keeping the first with r > a (or
// the last candidate).
func (p *PoissonLogisticRate) initBracket(h, rho float64) (l, r float64) {
	cands := [5]float64{2.20, 1.39, 0.85, 0.41, 0.0}
	l = h - rho
	for _, a := range cands {
		sga := 1.0 / (1.0 + math.Exp(-a))
		r = h - sga*rho
		if p.y > 0.0 {
			r = 0.5 * (r + math.Sqrt(r*r+4.0*p.y*rho))
		}
		if r > a {
			break
		}
	}

	return l, r
}

// Moments implements Univariate.
func (p *PoissonLogisticRate) Moments(cmu, crho, eta float64) (alpha, nu, logZ float64, ok bool) {
	return laplaceQuadMoments(p, p.cfg, cmu, crho, eta)
}
