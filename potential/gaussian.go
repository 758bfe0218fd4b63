// SPDX-License-Identifier: MIT

package potential

import (
	"math"

	"github.com/katalvlaran/epfact/specfun"
)

// minGaussVar is the smallest admissible observation variance.
const minGaussVar = 1e-13

// Gaussian is the Gaussian observation potential
//
//	t(s) = N(s|y, σ²) = N(y|s, σ²).
//
// Parameters: y (mean), σ² (variance). Fractional updates replace σ²
// by σ²/η.
type Gaussian struct {
	y   float64
	ssq float64
}

// NewGaussian constructs the potential; σ² must be positive.
func NewGaussian(y, ssq float64) (*Gaussian, error) {
	if ssq < minGaussVar {
		return nil, ErrBadPars
	}

	return &Gaussian{y: y, ssq: ssq}, nil
}

// NumPars implements Potential.
func (*Gaussian) NumPars() int { return 2 }

// NumConstPars implements Potential.
func (*Gaussian) NumConstPars() int { return 0 }

// Pars implements Potential.
func (g *Gaussian) Pars(dst []float64) []float64 { return append(dst, g.y, g.ssq) }

// SetPars implements Potential.
func (g *Gaussian) SetPars(pv []float64) error {
	if !g.IsValidPars(pv) {
		return ErrBadPars
	}
	g.y, g.ssq = pv[0], pv[1]

	return nil
}

// IsValidPars implements Potential.
func (g *Gaussian) IsValidPars(pv []float64) bool {
	return len(pv) == 2 && pv[1] >= minGaussVar
}

// LogConcave implements Potential.
func (*Gaussian) LogConcave() bool { return true }

// SuppFractional implements Potential.
func (*Gaussian) SuppFractional() bool { return true }

// Group implements Potential.
func (*Gaussian) Group() Group { return GroupUnivariate }

// Moments implements Univariate. Closed form:
//
//	ν = 1/(ρ⁻ + σ²/η), α = ν(y − μ⁻),
//	log Z = -½(ν(y−μ⁻)² − log ν + log 2π + log η).
func (g *Gaussian) Moments(cmu, crho, eta float64) (alpha, nu, logZ float64, ok bool) {
	if crho <= 0.0 || eta > 1.0 || eta <= 0.0 {
		return 0, 0, 0, false
	}
	nu = 1.0 / (crho + g.ssq/eta)
	diff := g.y - cmu
	alpha = nu * diff
	logZ = -0.5 * (nu*diff*diff - math.Log(nu) + specfun.Ln2Pi + math.Log(eta))

	return alpha, nu, logZ, true
}
