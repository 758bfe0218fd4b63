// SPDX-License-Identifier: MIT

package potential

import "github.com/katalvlaran/epfact/quadrature"

// Group tags a potential's argument signature.
type Group int

const (
	// GroupUnivariate: t(s), input cavity (μ⁻, ρ⁻), output (α, ν, log Z).
	GroupUnivariate Group = iota
	// GroupBivarPrec: t(s, τ), input adds cavity Gamma (a⁻, c⁻),
	// output adds (â, ĉ).
	GroupBivarPrec
)

// String returns the group tag name.
func (g Group) String() string {
	switch g {
	case GroupUnivariate:
		return "Univariate"
	case GroupBivarPrec:
		return "BivarPrec"
	default:
		return "Unknown"
	}
}

// Potential is the base interface every family implements. Parameter
// vectors have length NumPars; a prefix of NumConstPars construction
// parameters is fixed at creation and must be shared across a block.
type Potential interface {
	// NumPars returns the parameter count (may be zero).
	NumPars() int
	// NumConstPars returns the number of leading construction
	// parameters.
	NumConstPars() int
	// Pars appends the current parameter vector to dst and returns it.
	Pars(dst []float64) []float64
	// SetPars replaces the parameter vector; ErrBadPars when invalid.
	SetPars(pv []float64) error
	// IsValidPars reports whether pv is a legal configuration.
	IsValidPars(pv []float64) bool
	// LogConcave reports whether log t(s) is (generalized) concave.
	LogConcave() bool
	// SuppFractional reports whether η < 1 updates are supported.
	SuppFractional() bool
	// Group returns the argument-group tag.
	Group() Group
}

// Univariate is the moment service of GroupUnivariate potentials.
// The tilted distribution is Z⁻¹ t(s)^η N(s|cmu,crho); the returned
// (alpha, nu) encode its mean cmu + alpha·crho and variance
// crho(1 − nu·crho). ok is false on numerically degenerate cavities,
// integration failure, or eta < 1 without fractional support.
type Univariate interface {
	Potential
	Moments(cmu, crho, eta float64) (alpha, nu, logZ float64, ok bool)
}

// BivarPrec is the moment service of GroupBivarPrec potentials. The
// cavity is N(s|cmu,crho)·Gamma(τ|ca,cc); (hatA, hatC) parameterize
// the Gamma matching the tilted τ marginal in its first two moments.
type BivarPrec interface {
	Potential
	MomentsPrec(cmu, crho, ca, cc, eta float64) (alpha, nu, hatA, hatC, logZ float64, ok bool)
}

// QuadConfig is the annotation consumed by quadrature-backed families:
// the integration engine plus the argument and function accuracies of
// the proximal-map Newton solve.
type QuadConfig struct {
	Integ quadrature.Integrator
	Acc   float64
	FAcc  float64
}

// DefaultQuadConfig returns a ready-to-use configuration with a
// default Panels engine and 1e-7 Newton accuracies.
func DefaultQuadConfig() *QuadConfig {
	return &QuadConfig{
		Integ: quadrature.NewPanels(),
		Acc:   1e-7,
		FAcc:  1e-7,
	}
}

// quadConfigOf validates an annotation.
func quadConfigOf(ann any) (*QuadConfig, error) {
	cfg, ok := ann.(*QuadConfig)
	if !ok || cfg == nil || cfg.Integ == nil || cfg.Acc <= 0.0 || cfg.FAcc <= 0.0 {
		return nil, ErrAnnotation
	}

	return cfg, nil
}
