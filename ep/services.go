// SPDX-License-Identifier: MIT

package ep

import (
	"github.com/katalvlaran/epfact/factor"
	"github.com/katalvlaran/epfact/potential"
	"github.com/katalvlaran/epfact/topk"
)

// ComputeMarginals fills the Gaussian variable marginals from the link
// messages (incremental when increm). Used at initialization and after
// bulk perturbations; calling it twice in overwrite mode is idempotent.
func ComputeMarginals(repr *factor.Representation, margBeta, margPi []float64, increm bool) error {
	return repr.CompMarginals(margBeta, margPi, increm)
}

// ComputeTauMarginals fills the Gamma τ marginals from the precision
// link messages.
func ComputeTauMarginals(prec *factor.PrecRepresentation, margA, margC []float64, increm bool) error {
	return prec.CompTauMarginals(margA, margC, increm)
}

// NewPiTracker builds the selective-damping π tracker over caller-
// owned arrays and fills it from scratch (the one-shot recompute
// service). numValid, topInd and topVal must be sized n and n·(K+1);
// their prior content is ignored.
func NewPiTracker(repr *factor.Representation, maxSize int,
	numValid, topInd []int, topVal []float64, opts ...topk.Option) (*topk.Tracker, error) {
	for i := range numValid {
		numValid[i] = 1 // placate construction; RecomputeAll overwrites
	}
	tr, err := topk.New(topk.PiSource{Repr: repr}, maxSize, numValid, topInd, topVal, opts...)
	if err != nil {
		return nil, err
	}
	if err := tr.RecomputeAll(); err != nil {
		return nil, err
	}
	tr.ResetStats()

	return tr, nil
}

// NewACTrackers builds the a and c trackers of a precision model and
// fills both from scratch.
func NewACTrackers(prec *factor.PrecRepresentation, maxSize int,
	opts ...topk.Option) (maxA, maxC *topk.Tracker, err error) {
	maxA, err = topk.NewFor(topk.ASource{Prec: prec}, maxSize, opts...)
	if err != nil {
		return nil, nil, err
	}
	maxC, err = topk.NewFor(topk.CSource{Prec: prec}, maxSize, opts...)
	if err != nil {
		return nil, nil, err
	}

	return maxA, maxC, nil
}

// SingleUpdate is the one-shot local EP update service: the moments of
// a single univariate potential against cavity N(cmu, crho), without
// any representation involved. ok follows the potential's moment
// routine.
func SingleUpdate(pot potential.Univariate, cmu, crho, eta float64) (alpha, nu, logZ float64, ok bool) {
	return pot.Moments(cmu, crho, eta)
}

// SingleUpdatePrec is the bivariate-precision variant of SingleUpdate.
func SingleUpdatePrec(pot potential.BivarPrec, cmu, crho, ca, cc, eta float64) (alpha, nu, hatA, hatC, logZ float64, ok bool) {
	return pot.MomentsPrec(cmu, crho, ca, cc, eta)
}

// NewMessage converts tilted moments into updated link parameters for
// a scalar potential on s itself:
//
//	π' = ν/(1 − νρ⁻) + (1−η)π,  β' = (νμ⁻ + α)/(1 − νρ⁻) + (1−η)β.
//
// ok is false when the denominator degenerates.
func NewMessage(alpha, nu, cmu, crho, eta, beta, pi float64) (newBeta, newPi float64, ok bool) {
	den := 1.0 - nu*crho
	if den < denomFloor {
		return 0, 0, false
	}
	newPi = nu/den + (1.0-eta)*pi
	newBeta = (nu*cmu+alpha)/den + (1.0-eta)*beta

	return newBeta, newPi, true
}
