package topk

import "github.com/katalvlaran/epfact/factor"

// PiSource tracks the Gaussian π messages of a representation: the
// bipartite structure is B's sparsity pattern, producers are
// potentials.
type PiSource struct {
	Repr *factor.Representation
}

// NumVariables implements Source.
func (s PiSource) NumVariables() int { return s.Repr.NumVariables() }

// NumFactors implements Source.
func (s PiSource) NumFactors() int { return s.Repr.NumPotentials() }

// FactorValues implements Source.
func (s PiSource) FactorValues(i int) (prod, links []int, vals []float64) {
	col, err := s.Repr.AccessCol(i)
	if err != nil {
		return nil, nil, nil
	}

	return col.Support, col.Links, col.Pi
}

// ASource tracks the Gamma a messages of the precision extension:
// variables are the τ_k, producers are precision-potential ordinals.
// J_k doubles as both producer index and value index.
type ASource struct {
	Prec *factor.PrecRepresentation
}

// NumVariables implements Source.
func (s ASource) NumVariables() int { return s.Prec.NumPrecVariables() }

// NumFactors implements Source.
func (s ASource) NumFactors() int { return s.Prec.NumPrecPotentials() }

// FactorValues implements Source.
func (s ASource) FactorValues(k int) (prod, links []int, vals []float64) {
	col, err := s.Prec.AccessTauCol(k)
	if err != nil {
		return nil, nil, nil
	}

	return col.Js, col.Js, col.A
}

// CSource tracks the Gamma c messages; structure as ASource.
type CSource struct {
	Prec *factor.PrecRepresentation
}

// NumVariables implements Source.
func (s CSource) NumVariables() int { return s.Prec.NumPrecVariables() }

// NumFactors implements Source.
func (s CSource) NumFactors() int { return s.Prec.NumPrecPotentials() }

// FactorValues implements Source.
func (s CSource) FactorValues(k int) (prod, links []int, vals []float64) {
	col, err := s.Prec.AccessTauCol(k)
	if err != nil {
		return nil, nil, nil
	}

	return col.Js, col.Js, col.C
}
