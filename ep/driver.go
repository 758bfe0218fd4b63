// SPDX-License-Identifier: MIT

package ep

import (
	"fmt"
	"math"

	"github.com/katalvlaran/epfact/factor"
	"github.com/katalvlaran/epfact/potential"
	"github.com/katalvlaran/epfact/topk"
)

// Tuning constants of the update rule.
const (
	// DefaultTinyB is the |B_{j,i}| below which the better-conditioned
	// small-coefficient proposal branch is used. Override with
	// WithTinyB.
	DefaultTinyB = 1e-6

	// denomFloor rejects proposal denominators at or below this value.
	denomFloor = 1e-10

	// skipEta is the selective-damping fraction at which an update is
	// skipped rather than damped.
	skipEta = 0.98

	// coldStartPi is the lower clamp on the projection floor used for
	// fully uninformative (all-zero) cavities. Without it, a tiny ε
	// would push the proposal denominators into cancellation range.
	coldStartPi = 1e-4

	// relFloor keeps relative-difference deltas finite near zero.
	relFloor = 1e-8
)

// Result reports one update. Delta is the maximum relative change of
// the mean and standard deviation of s_j (and of τ_k for a bivariate-
// precision potential), 0 unless StatusSuccess. EffDamp is the
// effective damping factor actually applied (caller damping inflated
// by selective damping); 1 when the update was skipped.
type Result struct {
	Status  Status
	Delta   float64
	EffDamp float64
}

// Option configures a Driver.
type Option func(*Driver)

// WithMaxPi attaches the π tracker enabling selective damping on x
// links.
func WithMaxPi(tr *topk.Tracker) Option { return func(d *Driver) { d.maxPi = tr } }

// WithMaxA attaches the a tracker (precision drivers only).
func WithMaxA(tr *topk.Tracker) Option { return func(d *Driver) { d.maxA = tr } }

// WithMaxC attaches the c tracker (precision drivers only).
func WithMaxC(tr *topk.Tracker) Option { return func(d *Driver) { d.maxC = tr } }

// WithTinyB overrides the small-|B| branch threshold (must be
// positive; panics on nonsense, a programmer error).
func WithTinyB(thr float64) Option {
	if thr <= 0.0 {
		panic("ep: WithTinyB requires thr > 0")
	}
	return func(d *Driver) { d.tinyB = thr }
}

// Driver owns one EP state: representation, marginals, thresholds and
// optional trackers. It is single-threaded; Update allocates nothing.
type Driver struct {
	pots  potential.Manager
	repr  *factor.Representation
	prec  *factor.PrecRepresentation // nil for univariate-only models
	tinyB float64

	margBeta, margPi  []float64
	margA, margC      []float64
	piMin, aMin, cMin float64

	maxPi, maxA, maxC *topk.Tracker

	// Scratch, sized once to the widest row: cavity, then proposal.
	cBeta, cPi, prBeta, prPi []float64
}

// NewDriver builds a univariate driver: every potential in pots must
// be in the univariate argument group. margBeta and margPi (length n)
// are adopted as mutable marginal state; piMin > 0 is the ε threshold.
func NewDriver(pots potential.Manager, repr *factor.Representation,
	margBeta, margPi []float64, piMin float64, opts ...Option) (*Driver, error) {
	n := repr.NumVariables()
	if piMin <= 0.0 {
		return nil, ErrBadThreshold
	}
	if len(margBeta) != n || len(margPi) != n {
		return nil, fmt.Errorf("%w: marginals need length %d", ErrBadSize, n)
	}
	if pots.Size() != repr.NumPotentials() {
		return nil, fmt.Errorf("%w: manager size %d, potentials %d", ErrBadSize, pots.Size(), repr.NumPotentials())
	}
	if pots.Size() != pots.NumInGroup(potential.GroupUnivariate) {
		return nil, ErrGroupMismatch
	}
	d := &Driver{
		pots:     pots,
		repr:     repr,
		tinyB:    DefaultTinyB,
		margBeta: margBeta,
		margPi:   margPi,
		piMin:    piMin,
	}
	d.growScratch()
	for _, o := range opts {
		o(d)
	}
	if d.maxA != nil || d.maxC != nil {
		return nil, ErrGroupMismatch
	}

	return d, nil
}

// NewPrecDriver builds a driver over a precision representation: the
// bivariate-precision potentials of pots occupy the representation's
// suffix. margA and margC (length K) are adopted; aMin, cMin > 0 are
// the Gamma thresholds.
func NewPrecDriver(pots potential.Manager, prec *factor.PrecRepresentation,
	margBeta, margPi, margA, margC []float64, piMin, aMin, cMin float64,
	opts ...Option) (*Driver, error) {
	n := prec.NumVariables()
	numK := prec.NumPrecVariables()
	if piMin <= 0.0 || aMin <= 0.0 || cMin <= 0.0 {
		return nil, ErrBadThreshold
	}
	if len(margBeta) != n || len(margPi) != n {
		return nil, fmt.Errorf("%w: marginals need length %d", ErrBadSize, n)
	}
	if len(margA) != numK || len(margC) != numK {
		return nil, fmt.Errorf("%w: tau marginals need length %d", ErrBadSize, numK)
	}
	if pots.Size() != prec.NumPotentials() {
		return nil, fmt.Errorf("%w: manager size %d, potentials %d", ErrBadSize, pots.Size(), prec.NumPotentials())
	}
	nPrec := pots.NumInGroup(potential.GroupBivarPrec)
	if nPrec == 0 || nPrec != prec.NumPrecPotentials() {
		return nil, ErrGroupMismatch
	}
	d := &Driver{
		pots:     pots,
		repr:     prec.Representation,
		prec:     prec,
		tinyB:    DefaultTinyB,
		margBeta: margBeta,
		margPi:   margPi,
		margA:    margA,
		margC:    margC,
		piMin:    piMin,
		aMin:     aMin,
		cMin:     cMin,
	}
	d.growScratch()
	for _, o := range opts {
		o(d)
	}

	return d, nil
}

func (d *Driver) growScratch() {
	sz := d.repr.MaxRowSize()
	d.cBeta = make([]float64, sz)
	d.cPi = make([]float64, sz)
	d.prBeta = make([]float64, sz)
	d.prPi = make([]float64, sz)
}

// NumVariables returns n.
func (d *Driver) NumVariables() int { return d.repr.NumVariables() }

// NumPotentials returns m.
func (d *Driver) NumPotentials() int { return d.repr.NumPotentials() }

// MarginalsBeta returns the β marginal array (live state).
func (d *Driver) MarginalsBeta() []float64 { return d.margBeta }

// MarginalsPi returns the π marginal array (live state).
func (d *Driver) MarginalsPi() []float64 { return d.margPi }

// relDiff is the relative difference used by the delta metric.
func relDiff(a, b float64) float64 {
	den := math.Max(math.Abs(a), math.Max(math.Abs(b), relFloor))

	return math.Abs(a-b) / den
}

// Update runs one sequential EP update on potential j with caller
// damping dampFact ∈ [0, 1). See the package comment for the phase
// structure and for what a non-Success status leaves in the trackers;
// links and marginals are then left untouched.
//
// Complexity: O(|V_j|·K) plus one moment computation.
func (d *Driver) Update(j int, dampFact float64) (Result, error) {
	if dampFact < 0.0 || dampFact >= 1.0 {
		return Result{}, ErrBadDamp
	}
	row, err := d.repr.AccessRow(j)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %d", ErrBadIndex, j)
	}
	pot, err := d.pots.GetPot(j)
	if err != nil {
		return Result{}, err
	}
	isBV := pot.Group() == potential.GroupBivarPrec

	var (
		k       int
		aP, cP  *float64
		mnTau   float64
		sdTau   float64
		precOrd int
		cA, cC  float64
	)
	if isBV {
		if d.prec == nil {
			return Result{}, ErrGroupMismatch
		}
		k, aP, cP, err = d.prec.AccessTauRow(j)
		if err != nil {
			return Result{}, err
		}
		precOrd = j - (d.repr.NumPotentials() - d.prec.NumPrecPotentials())
		// Old τ moments for the delta metric.
		mnTau = d.margA[k] / d.margC[k]
		sdTau = math.Sqrt(d.margA[k]) / d.margC[k]
	}

	thres2 := 0.5 * d.piMin
	coldFloor := math.Max(thres2, coldStartPi)
	sz := len(row.Support)
	cBetaP := d.cBeta[:sz]
	cPiP := d.cPi[:sz]
	prBetaP := d.prBeta[:sz]
	prPiP := d.prPi[:sz]

	// Phase 1+2: cavities and the projection onto s_j. The marginal
	// moments of s_j before the update feed the delta metric.
	var cH, cRho, mH, mRho float64
	for ii, i := range row.Support {
		cPi := d.margPi[i] - row.Pi[ii]
		cBeta := d.margBeta[i] - row.Beta[ii]
		cPiUse := cPi
		if cPi < thres2 {
			// A fully uninformative link (exact zeros, the cold-start
			// state) is admitted with a floored projection; anything
			// else below ε/2 invalidates the cavity.
			if cPi == 0.0 && cBeta == 0.0 {
				cPiUse = coldFloor
			} else {
				return Result{Status: StatusCavityInvalid}, nil
			}
		}
		cPiP[ii] = cPi
		cBetaP[ii] = cBeta
		bval := row.B[ii]
		t := bval / cPiUse
		cRho += bval * t
		cH += t * cBeta
		mPi := d.margPi[i]
		if mPi < thres2 {
			mPi = thres2
		}
		t = bval / mPi
		mRho += bval * t
		mH += t * d.margBeta[i]
	}
	if isBV {
		if cA = d.margA[k] - *aP; cA < 0.5*d.aMin {
			return Result{Status: StatusCavityInvalid}, nil
		}
		if cC = d.margC[k] - *cP; cC < 0.5*d.cMin {
			return Result{Status: StatusCavityInvalid}, nil
		}
	}

	// Phase 3: tilted moment matching.
	var alpha, nu, hatA, hatC float64
	if isBV {
		bp, okAssert := pot.(potential.BivarPrec)
		if !okAssert {
			return Result{}, ErrGroupMismatch
		}
		var ok bool
		alpha, nu, hatA, hatC, _, ok = bp.MomentsPrec(cH, cRho, cA, cC, 1.0)
		if !ok {
			return Result{Status: StatusNumericalError}, nil
		}
	} else {
		up, okAssert := pot.(potential.Univariate)
		if !okAssert {
			return Result{}, ErrGroupMismatch
		}
		var ok bool
		alpha, nu, _, ok = up.Moments(cH, cRho, 1.0)
		if !ok {
			return Result{Status: StatusNumericalError}, nil
		}
	}

	// Phase 4+5: undamped proposals, then the minimum damping that
	// keeps the positivity margin of every touched variable.
	for ii, i := range row.Support {
		bval := row.B[ii]
		pi := row.Pi[ii]
		cPi := cPiP[ii]
		cBeta := cBetaP[ii]
		cPiUse := cPi
		if cPi == 0.0 && cBeta == 0.0 {
			cPiUse = coldFloor
		}
		var tilPi, tilBeta float64
		if math.Abs(bval) > d.tinyB {
			// |b| large enough for the plain equations.
			t2 := cPiUse / bval
			den := t2/bval - nu
			if den < denomFloor {
				return Result{Status: StatusNumericalError}, nil
			}
			e := 1.0 / den
			tilPi = e * cPiUse * nu
			tilBeta = e * (cBeta*nu + t2*alpha)
		} else {
			// Tiny |b|: algebraically equivalent, better conditioned.
			den := cPiUse - nu*bval*bval
			if den < denomFloor {
				return Result{Status: StatusNumericalError}, nil
			}
			t := bval / den
			tilPi = t * bval * nu * cPiUse
			tilBeta = t * (cBeta*bval*nu + cPiUse*alpha)
		}
		prPiP[ii] = tilPi
		prBetaP[ii] = tilBeta

		if d.maxPi != nil && tilPi < pi {
			// The proposal shrinks this link; make sure the marginal
			// keeps its margin over the largest producer.
			kappa := d.maxPi.Max(i)
			if kappa <= 0.0 {
				return Result{Status: StatusNumericalError}, nil
			}
			eta := 1.0 - math.Min((d.margPi[i]-kappa-d.piMin)/(pi-tilPi), 1.0)
			if eta >= skipEta {
				return Result{Status: StatusCavCondSkipped, EffDamp: 1.0}, nil
			}
			if kappa == pi {
				// j itself holds the maximum: probe whether the damped
				// value keeps the new maximum positive, then restore.
				probe := eta*pi + (1.0-eta)*tilPi
				row.Pi[ii] = probe
				if err := d.maxPi.Update(i, j, probe); err != nil {
					row.Pi[ii] = pi
					return Result{}, err
				}
				kappa = d.maxPi.Max(i)
				row.Pi[ii] = pi
				if err := d.maxPi.Update(i, j, pi); err != nil {
					return Result{}, err
				}
				if kappa <= 0.0 {
					return Result{Status: StatusCavCondSkipped, EffDamp: 1.0}, nil
				}
			}
			dampFact = math.Max(dampFact, eta)
		}
	}
	var prA, prC float64
	if isBV {
		prA = hatA - cA
		prC = hatC - cC
		if d.maxA != nil && prA < *aP {
			eta, res, err := d.selectDampTau(d.maxA, k, precOrd, aP, d.margA[k], d.aMin, prA)
			if err != nil || res != nil {
				if res != nil {
					return *res, err
				}
				return Result{}, err
			}
			dampFact = math.Max(dampFact, eta)
		}
		if d.maxC != nil && prC < *cP {
			eta, res, err := d.selectDampTau(d.maxC, k, precOrd, cP, d.margC[k], d.cMin, prC)
			if err != nil || res != nil {
				if res != nil {
					return *res, err
				}
				return Result{}, err
			}
			dampFact = math.Max(dampFact, eta)
		}
	}

	// Phase 6: apply damping and validate the predicted marginals;
	// still no writes to persistent state.
	for ii := range row.Support {
		pi := row.Pi[ii]
		beta := row.Beta[ii]
		cPi := cPiP[ii]
		cBeta := cBetaP[ii]
		newPi := prPiP[ii]
		newBeta := prBetaP[ii]
		if dampFact > 0.0 {
			newPi += dampFact * (pi - newPi)
			newBeta += dampFact * (beta - newBeta)
		}
		margPi := cPi + newPi
		if margPi < thres2 {
			return Result{Status: StatusMarginalsInvalid}, nil
		}
		prPiP[ii] = margPi
		prBetaP[ii] = cBeta + newBeta
		cPiP[ii] = newPi
		cBetaP[ii] = newBeta
	}
	if isBV {
		if dampFact > 0.0 {
			prA += dampFact * (*aP - prA)
			prC += dampFact * (*cP - prC)
		}
		if cA+prA < 0.5*d.aMin || cC+prC < 0.5*d.cMin {
			return Result{Status: StatusMarginalsInvalid}, nil
		}
	}

	// Phase 7: commit — the sole writer.
	if isBV {
		*aP = prA
		*cP = prC
		d.margA[k] = cA + prA
		d.margC[k] = cC + prC
		if d.maxA != nil {
			if err := d.maxA.Update(k, precOrd, prA); err != nil {
				return Result{}, err
			}
		}
		if d.maxC != nil {
			if err := d.maxC.Update(k, precOrd, prC); err != nil {
				return Result{}, err
			}
		}
	}
	var mprH, mprRho float64
	for ii, i := range row.Support {
		row.Beta[ii] = cBetaP[ii]
		row.Pi[ii] = cPiP[ii]
		d.margBeta[i] = prBetaP[ii]
		d.margPi[i] = prPiP[ii]
		bval := row.B[ii]
		t := bval / prPiP[ii]
		mprRho += bval * t
		mprH += t * prBetaP[ii]
		if d.maxPi != nil {
			if err := d.maxPi.Update(i, j, row.Pi[ii]); err != nil {
				return Result{}, err
			}
		}
	}

	delta := math.Max(relDiff(mH, mprH), relDiff(math.Sqrt(mRho), math.Sqrt(mprRho)))
	if isBV {
		newMn := d.margA[k] / d.margC[k]
		newSd := math.Sqrt(d.margA[k]) / d.margC[k]
		delta = math.Max(delta, relDiff(mnTau, newMn))
		delta = math.Max(delta, relDiff(sdTau, newSd))
	}

	return Result{Status: StatusSuccess, Delta: delta, EffDamp: dampFact}, nil
}

// selectDampTau runs the selective-damping decision for one Gamma
// message (a or c). It returns the required η, or a terminal Result
// (skip) or error.
func (d *Driver) selectDampTau(tr *topk.Tracker, k, precOrd int, msg *float64,
	marg, minThres, proposed float64) (float64, *Result, error) {
	kappa := tr.Max(k)
	if kappa <= 0.0 {
		return 0, &Result{Status: StatusNumericalError}, nil
	}
	eta := 1.0 - math.Min((marg-kappa-minThres)/(*msg-proposed), 1.0)
	if eta >= skipEta {
		return 0, &Result{Status: StatusCavCondSkipped, EffDamp: 1.0}, nil
	}
	if kappa == *msg {
		// The updating potential holds the maximum: probe and restore.
		old := *msg
		probe := eta*old + (1.0-eta)*proposed
		*msg = probe
		if err := tr.Update(k, precOrd, probe); err != nil {
			*msg = old
			return 0, nil, err
		}
		kappa = tr.Max(k)
		*msg = old
		if err := tr.Update(k, precOrd, old); err != nil {
			return 0, nil, err
		}
		if kappa <= 0.0 {
			return 0, &Result{Status: StatusCavCondSkipped, EffDamp: 1.0}, nil
		}
	}

	return eta, nil, nil
}
