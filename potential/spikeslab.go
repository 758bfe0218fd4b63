// SPDX-License-Identifier: MIT

package potential

import (
	"math"

	"github.com/katalvlaran/epfact/specfun"
)

// SpikeSlab is the basic spike-and-slab potential with a Gaussian slab
//
//	t(s) = (1−p)·δ₀(s) + p·N(s|0, v),  c = log(p/(1−p)), v > 0.
//
// Parameters: c (logit), v (slab variance).
type SpikeSlab struct {
	logitP float64
	v      float64
}

// NewSpikeSlab constructs the potential; v must be positive.
func NewSpikeSlab(logitP, v float64) (*SpikeSlab, error) {
	s := &SpikeSlab{}
	if err := s.SetPars([]float64{logitP, v}); err != nil {
		return nil, err
	}

	return s, nil
}

// NumPars implements Potential.
func (*SpikeSlab) NumPars() int { return 2 }

// NumConstPars implements Potential.
func (*SpikeSlab) NumConstPars() int { return 0 }

// Pars implements Potential.
func (s *SpikeSlab) Pars(dst []float64) []float64 { return append(dst, s.logitP, s.v) }

// SetPars implements Potential.
func (s *SpikeSlab) SetPars(pv []float64) error {
	if !s.IsValidPars(pv) {
		return ErrBadPars
	}
	s.logitP, s.v = pv[0], pv[1]

	return nil
}

// IsValidPars implements Potential.
func (s *SpikeSlab) IsValidPars(pv []float64) bool {
	return len(pv) == 2 && pv[1] >= minScale
}

// LogConcave implements Potential.
func (*SpikeSlab) LogConcave() bool { return false }

// SuppFractional implements Potential.
func (*SpikeSlab) SuppFractional() bool { return false }

// Group implements Potential.
func (*SpikeSlab) Group() Group { return GroupUnivariate }

// Moments implements Univariate, in the natural-parameter form shared
// with GaussMixture (the spike is component 1 with z₁ = 1, the slab
// component 2 with z₂ = 1/(1 + π⁻v)).
func (s *SpikeSlab) Moments(cmu, crho, eta float64) (alpha, nu, logZ float64, ok bool) {
	if eta != 1.0 || crho < minMixVar {
		return 0, 0, 0, false
	}
	cpi := 1.0 / crho
	cbeta := cmu / crho
	if 1.0+cpi*s.v < minMixVar {
		return 0, 0, 0, false
	}
	bmsq := cbeta * cbeta
	rho2 := s.v / (1.0 + cpi*s.v)
	t := s.logitP + 0.5*(rho2*bmsq-math.Log1p(cpi*s.v)) // log(Z₂/(1−p))
	t2 := math.Exp(-t)
	r2 := 1.0 / (1.0 + t2) // slab responsibility Z₂/Z
	z2m1 := -rho2 * cpi    // z₂ − 1
	logZh := math.Log1p(t2) + t - math.Log1p(math.Exp(s.logitP))
	atil := 1.0 + r2*z2m1
	alpha = -cbeta * atil
	nu = atil*cpi - bmsq*r2*(1.0-r2)*z2m1*z2m1
	logZ = logZh - 0.5*(cbeta*cmu+math.Log(crho)+specfun.Ln2Pi)

	return alpha, nu, logZ, true
}
