// SPDX-License-Identifier: MIT

package potential

import (
	"math"

	"github.com/katalvlaran/epfact/specfun"
)

// NegBinomExpRate is the negative binomial count potential with
// exponential rate λ(s) = e^s:
//
//	t(s) = C (1−p(s))^r p(s)^y,  p(s) = λ(s)/(r + λ(s)),
//	C    = Γ(r+y)/(Γ(y+1)Γ(r)),
//
// parameters y ∈ ℕ and overdispersion r > 0.
type NegBinomExpRate struct {
	y        float64
	r        float64
	logConst float64 // log C + r·log r
	cfg      *QuadConfig
}

// NewNegBinomExpRate constructs the potential; cfg must be non-nil.
func NewNegBinomExpRate(y, r float64, cfg *QuadConfig) (*NegBinomExpRate, error) {
	c, err := quadConfigOf(cfg)
	if err != nil {
		return nil, err
	}
	nb := &NegBinomExpRate{cfg: c}
	if err := nb.SetPars([]float64{y, r}); err != nil {
		return nil, err
	}

	return nb, nil
}

// NumPars implements Potential.
func (*NegBinomExpRate) NumPars() int { return 2 }

// NumConstPars implements Potential.
func (*NegBinomExpRate) NumConstPars() int { return 0 }

// Pars implements Potential.
func (nb *NegBinomExpRate) Pars(dst []float64) []float64 { return append(dst, nb.y, nb.r) }

// SetPars implements Potential.
func (nb *NegBinomExpRate) SetPars(pv []float64) error {
	if !nb.IsValidPars(pv) {
		return ErrBadPars
	}
	nb.y, nb.r = pv[0], pv[1]
	nb.logConst = specfun.LogGamma(nb.r+nb.y) - specfun.LogGamma(nb.y+1.0) -
		specfun.LogGamma(nb.r) + nb.r*math.Log(nb.r)

	return nil
}

// IsValidPars implements Potential.
func (*NegBinomExpRate) IsValidPars(pv []float64) bool {
	if len(pv) != 2 {
		return false
	}
	i := int(math.Ceil(pv[0]))

	return i >= 0 && float64(i) == pv[0] && pv[1] > minScale
}

// LogConcave implements Potential.
func (*NegBinomExpRate) LogConcave() bool { return true }

// SuppFractional implements Potential.
func (*NegBinomExpRate) SuppFractional() bool { return true }

// Group implements Potential.
func (*NegBinomExpRate) Group() Group { return GroupUnivariate }

// HasFirstDerivs implements quadrature.Potential.
func (*NegBinomExpRate) HasFirstDerivs() bool { return true }

// HasSecondDerivs implements quadrature.Potential.
func (*NegBinomExpRate) HasSecondDerivs() bool { return true }

// HasWayPoints implements quadrature.Potential.
func (*NegBinomExpRate) HasWayPoints() bool { return true }

// Interval implements quadrature.Potential: the whole line, l smooth.
func (*NegBinomExpRate) Interval() (a, b float64, aInf, bInf bool, wayPts []float64) {
	return 0, 0, true, true, nil
}

// Eval implements quadrature.Potential. With σ = e^s/(r + e^s),
// l = r·s + (r+y)·log1p(e^{log r − s}) − log C − r·log r (s ≥ log r
// branch; mirrored below), l' = (y+r)σ − y, l” = (y+r)σ(1−σ).
func (nb *NegBinomExpRate) Eval(s float64) (l, dl, ddl float64) {
	lgr := math.Log(nb.r)
	var sig, ret float64
	if s >= lgr {
		t := math.Exp(lgr - s)
		sig = 1.0 / (1.0 + t)
		ret = nb.r*s + (nb.r+nb.y)*math.Log1p(t)
	} else {
		t := math.Exp(s - lgr)
		sig = t / (1.0 + t)
		ret = -nb.y*s + (nb.r+nb.y)*(lgr+math.Log1p(t))
	}
	l = ret - nb.logConst
	dl = (nb.y+nb.r)*sig - nb.y
	ddl = (nb.y + nb.r) * sig * (1.0 - sig)

	return l, dl, ddl
}

// Proximal implements quadrature.Proximal with the simple slope-based
// bracket [h − rρ, h + yρ].
func (nb *NegBinomExpRate) Proximal(h, rho float64) (float64, bool) {
	return proximalNewton(nb, nb.initBracket, nb.cfg.Acc, nb.cfg.FAcc, h, rho)
}

func (nb *NegBinomExpRate) initBracket(h, rho float64) (l, r float64) {
	return h - nb.r*rho, h + nb.y*rho
}

// Moments implements Univariate.
func (nb *NegBinomExpRate) Moments(cmu, crho, eta float64) (alpha, nu, logZ float64, ok bool) {
	return laplaceQuadMoments(nb, nb.cfg, cmu, crho, eta)
}
