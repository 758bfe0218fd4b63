// SPDX-License-Identifier: MIT

package potential

import (
	"fmt"
	"math"
)

// Stable potential IDs. External interfaces address families by ID or
// by name; both are stable, the mapping lives in the registry below.
const (
	IDGaussian = iota
	IDLaplace
	IDProbit
	IDHeaviside
	IDExponential // reserved, not implemented
	IDQuantRegress
	IDGaussMixture
	IDSpikeSlab
	IDPoissonExpRate
	IDPoissonLogisticRate
	IDNegBinomExpRate
	IDGaussianPrec
	idLast = IDGaussianPrec
)

// entry describes one registered family.
type entry struct {
	name  string
	group Group
	// create builds from a full initial parameter vector.
	create func(pv []float64, ann any) (Potential, error)
	// createDefault builds from construction parameters only (pv may
	// hold just the construction-parameter prefix).
	createDefault func(pv []float64, ann any) (Potential, error)
}

// registry is the immutable ID-indexed table; ID resolves names by a
// linear scan. Process-wide, initialized once, never torn down.
var registry = [idLast + 1]entry{
	IDGaussian: {
		name:  "Gaussian",
		group: GroupUnivariate,
		create: func(pv []float64, _ any) (Potential, error) {
			if len(pv) < 2 {
				return nil, ErrBadPars
			}
			return NewGaussian(pv[0], pv[1])
		},
		createDefault: func(_ []float64, _ any) (Potential, error) {
			return NewGaussian(0.0, 1.0)
		},
	},
	IDLaplace: {
		name:  "Laplace",
		group: GroupUnivariate,
		create: func(pv []float64, _ any) (Potential, error) {
			if len(pv) < 2 {
				return nil, ErrBadPars
			}
			return NewLaplace(pv[0], pv[1])
		},
		createDefault: func(_ []float64, _ any) (Potential, error) {
			return NewLaplace(0.0, 1.0)
		},
	},
	IDProbit: {
		name:  "Probit",
		group: GroupUnivariate,
		create: func(pv []float64, _ any) (Potential, error) {
			if len(pv) < 2 {
				return nil, ErrBadPars
			}
			return NewProbit(pv[0], pv[1])
		},
		createDefault: func(_ []float64, _ any) (Potential, error) {
			return NewProbit(1.0, 0.0)
		},
	},
	IDHeaviside: {
		name:  "Heaviside",
		group: GroupUnivariate,
		create: func(pv []float64, _ any) (Potential, error) {
			if len(pv) < 2 {
				return nil, ErrBadPars
			}
			return NewHeaviside(pv[0], pv[1])
		},
		createDefault: func(_ []float64, _ any) (Potential, error) {
			return NewHeaviside(1.0, 0.0)
		},
	},
	IDExponential: {
		name:  "Exponential",
		group: GroupUnivariate,
		create: func(_ []float64, _ any) (Potential, error) {
			return nil, ErrNotImplemented
		},
		createDefault: func(_ []float64, _ any) (Potential, error) {
			return nil, ErrNotImplemented
		},
	},
	IDQuantRegress: {
		name:  "QuantRegress",
		group: GroupUnivariate,
		create: func(pv []float64, _ any) (Potential, error) {
			if len(pv) < 3 {
				return nil, ErrBadPars
			}
			return NewQuantRegress(pv[0], pv[1], pv[2])
		},
		createDefault: func(_ []float64, _ any) (Potential, error) {
			return NewQuantRegress(0.0, 1.0, 0.5)
		},
	},
	IDGaussMixture: {
		name:  "GaussMixture",
		group: GroupUnivariate,
		create: func(pv []float64, _ any) (Potential, error) {
			if len(pv) < 1 {
				return nil, ErrBadPars
			}
			g, err := NewGaussMixture(int(math.Ceil(pv[0])))
			if err != nil {
				return nil, err
			}
			if len(pv) < g.NumPars() {
				return nil, ErrBadPars
			}
			if err := g.SetPars(pv[:g.NumPars()]); err != nil {
				return nil, err
			}
			return g, nil
		},
		createDefault: func(pv []float64, _ any) (Potential, error) {
			if len(pv) < 1 {
				return nil, fmt.Errorf("%w: need construction parameters", ErrBadPars)
			}
			return NewGaussMixture(int(math.Ceil(pv[0])))
		},
	},
	IDSpikeSlab: {
		name:  "SpikeSlab",
		group: GroupUnivariate,
		create: func(pv []float64, _ any) (Potential, error) {
			if len(pv) < 2 {
				return nil, ErrBadPars
			}
			return NewSpikeSlab(pv[0], pv[1])
		},
		createDefault: func(_ []float64, _ any) (Potential, error) {
			return NewSpikeSlab(0.0, 1.0)
		},
	},
	IDPoissonExpRate: {
		name:  "PoissonExpRate",
		group: GroupUnivariate,
		create: func(pv []float64, ann any) (Potential, error) {
			if len(pv) < 1 {
				return nil, ErrBadPars
			}
			cfg, err := quadConfigOf(ann)
			if err != nil {
				return nil, err
			}
			return NewPoissonExpRate(pv[0], cfg)
		},
		createDefault: func(_ []float64, ann any) (Potential, error) {
			cfg, err := quadConfigOf(ann)
			if err != nil {
				return nil, err
			}
			return NewPoissonExpRate(0.0, cfg)
		},
	},
	IDPoissonLogisticRate: {
		name:  "PoissonLogisticRate",
		group: GroupUnivariate,
		create: func(pv []float64, ann any) (Potential, error) {
			if len(pv) < 1 {
				return nil, ErrBadPars
			}
			cfg, err := quadConfigOf(ann)
			if err != nil {
				return nil, err
			}
			return NewPoissonLogisticRate(pv[0], cfg)
		},
		createDefault: func(_ []float64, ann any) (Potential, error) {
			cfg, err := quadConfigOf(ann)
			if err != nil {
				return nil, err
			}
			return NewPoissonLogisticRate(0.0, cfg)
		},
	},
	IDNegBinomExpRate: {
		name:  "NegBinomExpRate",
		group: GroupUnivariate,
		create: func(pv []float64, ann any) (Potential, error) {
			if len(pv) < 2 {
				return nil, ErrBadPars
			}
			cfg, err := quadConfigOf(ann)
			if err != nil {
				return nil, err
			}
			return NewNegBinomExpRate(pv[0], pv[1], cfg)
		},
		createDefault: func(_ []float64, ann any) (Potential, error) {
			cfg, err := quadConfigOf(ann)
			if err != nil {
				return nil, err
			}
			return NewNegBinomExpRate(0.0, 1.0, cfg)
		},
	},
	IDGaussianPrec: {
		name:  "GaussianPrec",
		group: GroupBivarPrec,
		create: func(pv []float64, ann any) (Potential, error) {
			if len(pv) < 1 {
				return nil, ErrBadPars
			}
			cfg, err := quadConfigOf(ann)
			if err != nil {
				return nil, err
			}
			return NewGaussianPrec(pv[0], cfg)
		},
		createDefault: func(_ []float64, ann any) (Potential, error) {
			cfg, err := quadConfigOf(ann)
			if err != nil {
				return nil, err
			}
			return NewGaussianPrec(0.0, cfg)
		},
	},
}

// ValidID reports whether id addresses a registered family.
func ValidID(id int) bool { return id >= 0 && id <= idLast }

// Name returns the stable name for id, or "" when id is unknown.
func Name(id int) string {
	if !ValidID(id) {
		return ""
	}

	return registry[id].name
}

// ID returns the stable ID for name, or -1 when name is unknown.
func ID(name string) int {
	for id := 0; id <= idLast; id++ {
		if registry[id].name == name {
			return id
		}
	}

	return -1
}

// GroupOf returns the argument group of id; ok is false for unknown
// IDs.
func GroupOf(id int) (Group, bool) {
	if !ValidID(id) {
		return 0, false
	}

	return registry[id].group, true
}

// New creates a potential of family id from a full initial parameter
// vector. ann carries the annotation required by quadrature-backed
// families (ignored elsewhere).
func New(id int, pv []float64, ann any) (Potential, error) {
	if !ValidID(id) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownID, id)
	}

	return registry[id].create(pv, ann)
}

// NewDefault creates a default-configured potential of family id; pv
// needs to hold only the construction-parameter prefix (and may be nil
// for families without construction parameters).
func NewDefault(id int, pv []float64, ann any) (Potential, error) {
	if !ValidID(id) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownID, id)
	}

	return registry[id].createDefault(pv, ann)
}

// NewByName is the name-addressed variant of New.
func NewByName(name string, pv []float64, ann any) (Potential, error) {
	id := ID(name)
	if id < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownID, name)
	}

	return New(id, pv, ann)
}
