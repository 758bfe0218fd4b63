// SPDX-License-Identifier: MIT

package potential

import "fmt"

// Manager serves the potential objects t_j(s_j) of a model, addressed
// by the global potential index j.
//
// GetPot returns a view backed by a single scratch object: it is valid
// only until the next GetPot call on the same manager, must not be
// reconfigured through SetPars by the caller, and managers are not
// safe for concurrent use. Drivers running on disjoint substructures
// need separate manager instances.
type Manager interface {
	// Size returns the number of potentials.
	Size() int
	// NumInGroup returns how many potentials belong to group g.
	NumInGroup(g Group) int
	// GetPot returns the potential view for index j.
	GetPot(j int) (Potential, error)
}

// DefaultManager represents N potentials of one family over flat
// parameter slabs. Each of the family's parameters is either shared by
// the whole block (one slab value) or individual (N slab values); the
// k-th parameter's slab starts at parOff[k].
type DefaultManager struct {
	proto   Potential
	num     int
	parVec  []float64
	parShrd []bool
	parOff  []int
	scratch []float64
}

// NewDefaultManager builds the manager. proto is the (default-
// constructed) family object reused for every GetPot. With checkValid,
// every potential's assembled parameter vector is validated now.
func NewDefaultManager(proto Potential, num int, parVec []float64, parShrd []bool, checkValid bool) (*DefaultManager, error) {
	np := proto.NumPars()
	if num <= 0 || len(parShrd) != np {
		return nil, fmt.Errorf("%w: num=%d, parShrd=%d, want %d", ErrBadBlocks, num, len(parShrd), np)
	}
	m := &DefaultManager{
		proto:   proto,
		num:     num,
		parVec:  parVec,
		parShrd: parShrd,
		parOff:  make([]int, np),
		scratch: make([]float64, np),
	}
	off := 0
	for k, shrd := range parShrd {
		m.parOff[k] = off
		if shrd {
			off++
		} else {
			off += num
		}
	}
	if len(parVec) != off {
		return nil, fmt.Errorf("%w: parVec length %d, want %d", ErrBadBlocks, len(parVec), off)
	}
	if checkValid && np > 0 {
		for j := 0; j < num; j++ {
			m.potPars(j)
			if !proto.IsValidPars(m.scratch) {
				return nil, fmt.Errorf("%w: potential %d", ErrBadPars, j)
			}
		}
	}

	return m, nil
}

// potPars assembles potential j's parameter vector into the scratch.
func (m *DefaultManager) potPars(j int) {
	for k, off := range m.parOff {
		if m.parShrd[k] {
			m.scratch[k] = m.parVec[off]
		} else {
			m.scratch[k] = m.parVec[off+j]
		}
	}
}

// Size implements Manager.
func (m *DefaultManager) Size() int { return m.num }

// NumInGroup implements Manager.
func (m *DefaultManager) NumInGroup(g Group) int {
	if m.proto.Group() == g {
		return m.num
	}

	return 0
}

// GetPot implements Manager: the scratch potential reconfigured to
// potential j's parameters. O(NumPars).
func (m *DefaultManager) GetPot(j int) (Potential, error) {
	if j < 0 || j >= m.num {
		return nil, fmt.Errorf("%w: %d", ErrIndexRange, j)
	}
	if len(m.parOff) > 0 {
		m.potPars(j)
		if err := m.proto.SetPars(m.scratch); err != nil {
			return nil, fmt.Errorf("potential %d: %w", j, err)
		}
	}

	return m.proto, nil
}

// ContainerManager concatenates child managers into one index space.
// Bivariate-precision potentials, if any, must form a contiguous
// suffix of the concatenation.
type ContainerManager struct {
	children []Manager
	startPos []int
	size     int
}

// NewContainerManager builds the container and enforces the suffix
// rule.
func NewContainerManager(children []Manager) (*ContainerManager, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: no children", ErrBadBlocks)
	}
	c := &ContainerManager{
		children: children,
		startPos: make([]int, len(children)),
	}
	havePrec := false
	off := 0
	for i, ch := range children {
		c.startPos[i] = off
		sz := ch.Size()
		off += sz
		nPrec := ch.NumInGroup(GroupBivarPrec)
		if havePrec && nPrec < sz {
			return nil, ErrGroupOrder
		}
		if nPrec > 0 && nPrec < sz {
			// A mixed child can only be legal if its own precision
			// part is a suffix, which a DefaultManager (single family)
			// never produces; reject outright.
			return nil, ErrGroupOrder
		}
		havePrec = havePrec || nPrec > 0
	}
	c.size = off

	return c, nil
}

// Size implements Manager.
func (c *ContainerManager) Size() int { return c.size }

// NumInGroup implements Manager.
func (c *ContainerManager) NumInGroup(g Group) int {
	total := 0
	for _, ch := range c.children {
		total += ch.NumInGroup(g)
	}

	return total
}

// GetPot implements Manager. O(children) lookup.
func (c *ContainerManager) GetPot(j int) (Potential, error) {
	if j < 0 || j >= c.size {
		return nil, fmt.Errorf("%w: %d", ErrIndexRange, j)
	}
	ic := len(c.children) - 1
	for i := 1; i < len(c.children); i++ {
		if j < c.startPos[i] {
			ic = i - 1
			break
		}
	}

	return c.children[ic].GetPot(j - c.startPos[ic])
}
