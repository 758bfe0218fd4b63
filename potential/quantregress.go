// SPDX-License-Identifier: MIT

package potential

import (
	"math"

	"github.com/katalvlaran/epfact/specfun"
)

// minScale bounds the ξ and τ scale parameters away from zero.
const minScale = 1e-12

// minCavVar is the smallest cavity variance closed-form moment code
// accepts before reporting failure.
const minCavVar = 1e-14

// minEta is the smallest admissible fractional parameter.
const minEta = 1e-10

// QuantRegress is the quantile-regression potential
//
//	t(s)  = tt(ξ(y − s)),
//	tt(r) = exp(−κ[r]₊ − (1−κ)[−r]₊),
//
// with parameters y, ξ > 0 and quantile level κ ∈ (0,1).
type QuantRegress struct {
	y     float64
	xi    float64
	kappa float64
}

// NewQuantRegress constructs the potential.
func NewQuantRegress(y, xi, kappa float64) (*QuantRegress, error) {
	q := &QuantRegress{}
	if err := q.SetPars([]float64{y, xi, kappa}); err != nil {
		return nil, err
	}

	return q, nil
}

// NumPars implements Potential.
func (*QuantRegress) NumPars() int { return 3 }

// NumConstPars implements Potential.
func (*QuantRegress) NumConstPars() int { return 0 }

// Pars implements Potential.
func (q *QuantRegress) Pars(dst []float64) []float64 {
	return append(dst, q.y, q.xi, q.kappa)
}

// SetPars implements Potential.
func (q *QuantRegress) SetPars(pv []float64) error {
	if !q.IsValidPars(pv) {
		return ErrBadPars
	}
	q.y, q.xi, q.kappa = pv[0], pv[1], pv[2]

	return nil
}

// IsValidPars implements Potential.
func (q *QuantRegress) IsValidPars(pv []float64) bool {
	return len(pv) == 3 && pv[1] >= minScale && pv[2] > 0.0 && pv[2] < 1.0
}

// LogConcave implements Potential.
func (*QuantRegress) LogConcave() bool { return true }

// SuppFractional implements Potential.
func (*QuantRegress) SuppFractional() bool { return true }

// Group implements Potential.
func (*QuantRegress) Group() Group { return GroupUnivariate }

// Moments implements Univariate. Fractional updates fold η into ξ.
func (q *QuantRegress) Moments(cmu, crho, eta float64) (alpha, nu, logZ float64, ok bool) {
	if crho < minCavVar || eta < minEta || eta > 1.0 {
		return 0, 0, 0, false
	}

	return quantRegressMoments(cmu, crho, q.xi*eta, q.y, q.kappa)
}

// quantRegressMoments is the shared closed form, also backing the
// Laplace potential (κ = ½). The two half-line integrals I₀₁, I₀₂ are
// accumulated in the log domain through logCdfNormal and combined by
// whichever dominates.
func quantRegressMoments(cmu, crho, xi, y, kappa float64) (alpha, nu, logZ float64, ok bool) {
	kapc := 1.0 - kappa
	hh := y - cmu
	hr := xi * hh
	rhor := xi * xi * crho
	sqrhor := xi * math.Sqrt(crho)
	argf := kappa*sqrhor - hr/sqrhor

	li01 := 0.5*kappa*(kappa*rhor-2.0*hr) + specfun.LogCdfNormal(-argf)
	li02 := 0.5*kapc*(kapc*rhor+2.0*hr) + specfun.LogCdfNormal(argf-sqrhor)
	var logi0, q float64
	if li01 >= li02 {
		t := math.Exp(li02 - li01)
		logi0 = li01 + math.Log1p(t)
		q = t / (1.0 + t)
	} else {
		t := math.Exp(li01 - li02)
		logi0 = li02 + math.Log1p(t)
		q = 1.0 / (1.0 + t)
	}
	alpha = xi * (kappa - q)
	nu = xi * xi * (math.Exp(-0.5*(hh*hh/crho+specfun.Ln2Pi)-logi0)/sqrhor - q*(1.0-q))

	return alpha, nu, logi0, true
}

// Laplace is the double-exponential potential
//
//	t(s) = (τ/2) exp(−τ|y − s|),
//
// parameters y and τ > 0. It is the κ = ½ special case of
// QuantRegress with ξ = 2ητ and a (τ/2)^η prefactor on Z.
type Laplace struct {
	y   float64
	tau float64
}

// NewLaplace constructs the potential; τ must be positive.
func NewLaplace(y, tau float64) (*Laplace, error) {
	l := &Laplace{}
	if err := l.SetPars([]float64{y, tau}); err != nil {
		return nil, err
	}

	return l, nil
}

// NumPars implements Potential.
func (*Laplace) NumPars() int { return 2 }

// NumConstPars implements Potential.
func (*Laplace) NumConstPars() int { return 0 }

// Pars implements Potential.
func (l *Laplace) Pars(dst []float64) []float64 { return append(dst, l.y, l.tau) }

// SetPars implements Potential.
func (l *Laplace) SetPars(pv []float64) error {
	if !l.IsValidPars(pv) {
		return ErrBadPars
	}
	l.y, l.tau = pv[0], pv[1]

	return nil
}

// IsValidPars implements Potential.
func (l *Laplace) IsValidPars(pv []float64) bool {
	return len(pv) == 2 && pv[1] >= minScale
}

// LogConcave implements Potential.
func (*Laplace) LogConcave() bool { return true }

// SuppFractional implements Potential.
func (*Laplace) SuppFractional() bool { return true }

// Group implements Potential.
func (*Laplace) Group() Group { return GroupUnivariate }

// Moments implements Univariate: t(s)^η is C·QuantRegress with κ = ½,
// ξ = 2ητ, C = (τ/2)^η.
func (l *Laplace) Moments(cmu, crho, eta float64) (alpha, nu, logZ float64, ok bool) {
	if crho < minCavVar || eta < minEta || eta > 1.0 {
		return 0, 0, 0, false
	}
	alpha, nu, logZ, ok = quantRegressMoments(cmu, crho, 2.0*eta*l.tau, l.y, 0.5)
	if ok {
		logZ += eta * math.Log(0.5*l.tau)
	}

	return alpha, nu, logZ, ok
}
