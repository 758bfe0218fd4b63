// SPDX-License-Identifier: MIT

package ep

import "fmt"

// Options configures a RunUpdates sweep.
type Options struct {
	// DampFact is the caller damping factor applied to every update,
	// in [0, 1). Selective damping can only increase it per update.
	DampFact float64
}

// Validate checks the option combination.
func (o *Options) Validate() error {
	if o.DampFact < 0.0 || o.DampFact >= 1.0 {
		return ErrBadDamp
	}

	return nil
}

// Results collects the per-update outputs of a sweep, index-aligned
// with the update list. For non-Success updates Delta is 0 and EffDamp
// is 1. NumUpdates/NumRecomputes are the π tracker statistics
// accumulated over the sweep (0 without a tracker).
type Results struct {
	Status        []Status
	Delta         []float64
	EffDamp       []float64
	NumUpdates    int
	NumRecomputes int
}

// RunUpdates invokes the driver once per entry of updJInd (repeats
// allowed), threading statuses and deltas into the result arrays.
// Failed updates are recorded and the sweep continues; only argument
// errors abort it. The index list is validated up front so a bad entry
// fails before any state changes.
func RunUpdates(drv *Driver, updJInd []int, opts Options) (Results, error) {
	if err := opts.Validate(); err != nil {
		return Results{}, err
	}
	if len(updJInd) == 0 {
		return Results{}, fmt.Errorf("%w: empty update list", ErrBadIndex)
	}
	m := drv.NumPotentials()
	for _, j := range updJInd {
		if j < 0 || j >= m {
			return Results{}, fmt.Errorf("%w: %d", ErrBadIndex, j)
		}
	}

	res := Results{
		Status:  make([]Status, len(updJInd)),
		Delta:   make([]float64, len(updJInd)),
		EffDamp: make([]float64, len(updJInd)),
	}
	if drv.maxPi != nil {
		drv.maxPi.ResetStats()
	}
	for i, j := range updJInd {
		r, err := drv.Update(j, opts.DampFact)
		if err != nil {
			return Results{}, err
		}
		res.Status[i] = r.Status
		if r.Status == StatusSuccess {
			res.Delta[i] = r.Delta
			res.EffDamp[i] = r.EffDamp
		} else {
			res.Delta[i] = 0.0
			res.EffDamp[i] = 1.0
		}
	}
	if drv.maxPi != nil {
		res.NumUpdates, res.NumRecomputes = drv.maxPi.Stats()
	}

	return res, nil
}
