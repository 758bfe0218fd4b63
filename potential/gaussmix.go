// SPDX-License-Identifier: MIT

package potential

import (
	"math"

	"github.com/katalvlaran/epfact/specfun"
)

// minMixVar is the smallest admissible mixture component variance:
// spikes are not allowed here (see SpikeSlab for the point mass).
const minMixVar = 1e-16

// GaussMixture is the zero-mean Gaussian mixture potential
//
//	t(s) = Σ_{l<L} p_l N(s|0, v_l),  p_l = exp(c_l)/Σ_k exp(c_k),  c_{L−1} = 0.
//
// Parameters: L (construction parameter), c_0..c_{L−2}, v_0..v_{L−1};
// NumPars = 2L. L ≥ 2 is fixed at construction.
type GaussMixture struct {
	logp []float64 // c_l, including the fixed trailing 0
	vars []float64 // v_l
	buf  []float64 // per-component log Z_l scratch
	maxV float64
	lseC float64
}

// NewGaussMixture constructs the default potential for L components:
// all v_l = 1, all c_l = 0 (uniform weights).
func NewGaussMixture(numL int) (*GaussMixture, error) {
	if numL < 2 {
		return nil, ErrBadPars
	}
	g := &GaussMixture{
		logp: make([]float64, numL),
		vars: make([]float64, numL),
		buf:  make([]float64, numL),
		maxV: 1.0,
		lseC: math.Log(float64(numL)),
	}
	for l := range g.vars {
		g.vars[l] = 1.0
	}

	return g, nil
}

// NumPars implements Potential.
func (g *GaussMixture) NumPars() int { return 2 * len(g.vars) }

// NumConstPars implements Potential: the leading L.
func (*GaussMixture) NumConstPars() int { return 1 }

// Pars implements Potential.
func (g *GaussMixture) Pars(dst []float64) []float64 {
	numL := len(g.vars)
	dst = append(dst, float64(numL))
	dst = append(dst, g.logp[:numL-1]...)

	return append(dst, g.vars...)
}

// SetPars implements Potential.
func (g *GaussMixture) SetPars(pv []float64) error {
	if !g.IsValidPars(pv) {
		return ErrBadPars
	}
	numL := len(g.vars)
	copy(g.logp, pv[1:numL])
	g.logp[numL-1] = 0.0
	g.lseC = specfun.LogSumExp(g.logp)
	copy(g.vars, pv[numL:])
	g.maxV = g.vars[0]
	for _, v := range g.vars[1:] {
		if v > g.maxV {
			g.maxV = v
		}
	}

	return nil
}

// IsValidPars implements Potential: pv[0] must equal L exactly and all
// variances stay positive.
func (g *GaussMixture) IsValidPars(pv []float64) bool {
	numL := len(g.vars)
	if len(pv) != 2*numL {
		return false
	}
	if i := int(math.Ceil(pv[0])); i != numL || float64(i) != pv[0] {
		return false
	}
	for _, v := range pv[numL:] {
		if v < minMixVar {
			return false
		}
	}

	return true
}

// LogConcave implements Potential.
func (*GaussMixture) LogConcave() bool { return false }

// SuppFractional implements Potential.
func (*GaussMixture) SuppFractional() bool { return false }

// Group implements Potential.
func (*GaussMixture) Group() Group { return GroupUnivariate }

// Moments implements Univariate by delegating to the natural-parameter
// form and correcting log Z for the cavity normalizer.
func (g *GaussMixture) Moments(cmu, crho, eta float64) (alpha, nu, logZ float64, ok bool) {
	if eta != 1.0 || crho < minMixVar {
		return 0, 0, 0, false
	}
	cpi := 1.0 / crho
	cbeta := cmu / crho
	alpha, nu, logZh, ok := g.momentsNat(cbeta, cpi)
	if !ok {
		return 0, 0, 0, false
	}
	logZ = logZh - 0.5*(cbeta*cmu+math.Log(crho)+specfun.Ln2Pi)

	return alpha, nu, logZ, true
}

// momentsNat works on the unnormalized cavity exp(β⁻s − π⁻s²/2); it is
// well defined as long as 1 + π⁻·max_l v_l stays positive. With
// z_l = 1/(1 + π⁻v_l), the expectations E_r[z^k] are accumulated via
// running-max logsumexp over the component responsibilities.
func (g *GaussMixture) momentsNat(cbeta, cpi float64) (alpha, nu, logZh float64, ok bool) {
	if 1.0+cpi*g.maxV < minMixVar {
		return 0, 0, 0, false
	}
	bmsq := cbeta * cbeta
	var mxlz, mxla, mxla2 float64
	for l, vl := range g.vars {
		lz := -math.Log1p(cpi * vl) // log z_l
		t := g.logp[l] - g.lseC + 0.5*(bmsq*vl/(1.0+cpi*vl)+lz)
		g.buf[l] = t
		if l == 0 || t > mxlz {
			mxlz = t
		}
		t += lz
		if l == 0 || t > mxla {
			mxla = t
		}
		t += lz
		if l == 0 || t > mxla2 {
			mxla2 = t
		}
	}
	var sz, sa, sa2 float64
	for l, vl := range g.vars {
		t := g.buf[l]
		lz := -math.Log1p(cpi * vl)
		sz += math.Exp(t - mxlz)
		t += lz
		sa += math.Exp(t - mxla)
		t += lz
		sa2 += math.Exp(t - mxla2)
	}
	logZh = math.Log(sz) + mxlz
	loga := math.Log(sa) + mxla - logZh
	loga2 := math.Log(sa2) + mxla2 - logZh
	atil := math.Exp(loga)
	alpha = -cbeta * atil
	nu = atil*cpi - bmsq*math.Exp(loga2) + alpha*alpha

	return alpha, nu, logZh, true
}
