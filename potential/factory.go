// SPDX-License-Identifier: MIT

package potential

import (
	"fmt"

	"github.com/katalvlaran/epfact/factor"
)

// BuildManager materializes a Manager from the flat block description
// used by host environments: ids and counts per block (K blocks),
// parVec / parShrd the concatenation of every block's parameter slabs
// and shared flags, anns one annotation per block (nil for families
// without one).
//
// Construction parameters must be shared and form the slab prefix of
// their block; BuildManager reads them to size the default object.
// Parameter values beyond construction parameters are NOT validated
// here — run CheckBlocks first when the description comes from an
// untrusted host.
func BuildManager(ids, counts []int, parVec []float64, parShrd []bool, anns []any) (Manager, error) {
	numK := len(ids)
	if numK == 0 || len(counts) != numK || len(anns) != numK {
		return nil, fmt.Errorf("%w: blocks=%d, counts=%d, anns=%d", ErrBadBlocks, numK, len(counts), len(anns))
	}
	for k := 0; k < numK; k++ {
		if !ValidID(ids[k]) {
			return nil, fmt.Errorf("%w: block %d", ErrUnknownID, k)
		}
		if counts[k] <= 0 {
			return nil, fmt.Errorf("%w: block %d count %d", ErrBadBlocks, k, counts[k])
		}
	}

	children := make([]Manager, 0, numK)
	pv := parVec
	shrd := parShrd
	for k := 0; k < numK; k++ {
		// The default object sizes the slabs; construction parameters
		// (if any) sit at the head of the remaining parVec.
		proto, err := NewDefault(ids[k], pv, anns[k])
		if err != nil {
			return nil, fmt.Errorf("block %d: cannot create potential object: %w", k, err)
		}
		np := proto.NumPars()
		ncp := proto.NumConstPars()
		if ncp > 0 {
			if np < ncp || len(shrd) < ncp {
				return nil, fmt.Errorf("%w: block %d construction parameters", ErrBadBlocks, k)
			}
			for i := 0; i < ncp; i++ {
				if !shrd[i] {
					return nil, fmt.Errorf("%w: block %d construction parameters must be shared", ErrBadBlocks, k)
				}
			}
		}
		var slabLen int
		if np > 0 {
			if len(shrd) < np {
				return nil, fmt.Errorf("%w: parShrd too short in block %d", ErrBadBlocks, k)
			}
			for i := 0; i < np; i++ {
				if shrd[i] {
					slabLen++
				} else {
					slabLen += counts[k]
				}
			}
			if len(pv) < slabLen {
				return nil, fmt.Errorf("%w: parVec too short in block %d", ErrBadBlocks, k)
			}
		}
		dm, err := NewDefaultManager(proto, counts[k], pv[:slabLen:slabLen], shrd[:np:np], false)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", k, err)
		}
		pv = pv[slabLen:]
		shrd = shrd[np:]
		children = append(children, dm)
	}
	if len(pv) != 0 || len(shrd) != 0 {
		return nil, fmt.Errorf("%w: trailing parameter data", ErrBadBlocks)
	}
	if numK == 1 {
		return children[0], nil
	}

	return NewContainerManager(children)
}

// CheckBlocks runs the exhaustive validity sweep over a block
// description, returning nil or an error whose message names the
// offending block and potential position. posOff is added to the
// positions in messages (pass 1 for hosts counting from 1).
//
// tauInd must be non-nil exactly when the description contains
// bivariate-precision potentials; it is then validated against their
// count via factor.CheckTauIndex.
func CheckBlocks(ids, counts []int, parVec []float64, parShrd []bool, anns []any, posOff int, tauInd []int) error {
	numK := len(ids)
	if numK == 0 || len(counts) != numK || len(anns) != numK {
		return fmt.Errorf("%w: blocks=%d, counts=%d, anns=%d", ErrBadBlocks, numK, len(counts), len(anns))
	}
	for k := 0; k < numK; k++ {
		if !ValidID(ids[k]) {
			return fmt.Errorf("%w: block %d: invalid potential ID", ErrUnknownID, k+posOff)
		}
		if counts[k] <= 0 {
			return fmt.Errorf("%w: block %d: count must be positive", ErrBadBlocks, k+posOff)
		}
	}

	nPrec := 0
	pv := parVec
	shrd := parShrd
	for k := 0; k < numK; k++ {
		proto, err := NewDefault(ids[k], pv, anns[k])
		if err != nil {
			return fmt.Errorf("block %d: cannot create potential object: %w", k+posOff, err)
		}
		if proto.Group() == GroupBivarPrec {
			nPrec += counts[k]
		}
		np := proto.NumPars()
		ncp := proto.NumConstPars()
		if ncp > 0 {
			if np < ncp {
				return fmt.Errorf("%w: block %d: need %d construction parameters", ErrBadBlocks, k+posOff, ncp)
			}
			if len(shrd) < ncp {
				return fmt.Errorf("%w: parShrd too short", ErrBadBlocks)
			}
			for i := 0; i < ncp; i++ {
				if !shrd[i] {
					return fmt.Errorf("%w: block %d: shared flags invalid for construction parameters", ErrBadBlocks, k+posOff)
				}
			}
		}
		if np == 0 {
			continue
		}
		if len(shrd) < np {
			return fmt.Errorf("%w: parShrd too short", ErrBadBlocks)
		}
		parOff := make([]int, np)
		slabLen := 0
		for i := 0; i < np; i++ {
			parOff[i] = slabLen
			if shrd[i] {
				slabLen++
			} else {
				slabLen += counts[k]
			}
		}
		if len(pv) < slabLen {
			return fmt.Errorf("%w: parVec too short", ErrBadBlocks)
		}
		tmp := make([]float64, np)
		for j := 0; j < counts[k]; j++ {
			for i := 0; i < np; i++ {
				if shrd[i] {
					tmp[i] = pv[parOff[i]]
				} else {
					tmp[i] = pv[parOff[i]+j]
				}
			}
			if !proto.IsValidPars(tmp) {
				if numK > 1 {
					return fmt.Errorf("%w: potential %d in block %d", ErrBadPars, j+posOff, k+posOff)
				}
				return fmt.Errorf("%w: potential %d", ErrBadPars, j+posOff)
			}
		}
		pv = pv[slabLen:]
		shrd = shrd[np:]
	}
	if len(pv) != 0 {
		return fmt.Errorf("%w: parVec too long", ErrBadBlocks)
	}
	if len(shrd) != 0 {
		return fmt.Errorf("%w: parShrd too long", ErrBadBlocks)
	}

	switch {
	case nPrec > 0 && tauInd == nil:
		return fmt.Errorf("%w: tauInd required for bivariate-precision potentials", ErrBadBlocks)
	case nPrec == 0 && tauInd != nil:
		return fmt.Errorf("%w: tauInd given without bivariate-precision potentials", ErrBadBlocks)
	case nPrec > 0:
		if _, err := factor.CheckTauIndex(tauInd, nPrec); err != nil {
			return err
		}
	}

	return nil
}
