package potential_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epfact/potential"
)

func TestDefaultManager_SharedAndIndividual(t *testing.T) {
	// Three Gaussians: y individual, σ² shared.
	proto, err := potential.NewGaussian(0.0, 1.0)
	require.NoError(t, err)
	m, err := potential.NewDefaultManager(proto, 3,
		[]float64{1.0, 2.0, 3.0, 0.5}, []bool{false, true}, true)
	require.NoError(t, err)

	assert.Equal(t, 3, m.Size())
	assert.Equal(t, 3, m.NumInGroup(potential.GroupUnivariate))
	assert.Equal(t, 0, m.NumInGroup(potential.GroupBivarPrec))

	for j, wantY := range []float64{1.0, 2.0, 3.0} {
		p, err := m.GetPot(j)
		require.NoError(t, err)
		assert.Equal(t, []float64{wantY, 0.5}, p.Pars(nil))
	}

	_, err = m.GetPot(3)
	assert.ErrorIs(t, err, potential.ErrIndexRange)
}

func TestDefaultManager_Validation(t *testing.T) {
	proto, err := potential.NewGaussian(0.0, 1.0)
	require.NoError(t, err)

	// Slab length mismatch.
	_, err = potential.NewDefaultManager(proto, 3,
		[]float64{1.0, 0.5}, []bool{false, true}, false)
	assert.ErrorIs(t, err, potential.ErrBadBlocks)

	// checkValid spots a negative variance in the slab.
	_, err = potential.NewDefaultManager(proto, 2,
		[]float64{0.0, 0.0, 1.0, -1.0}, []bool{false, false}, true)
	assert.ErrorIs(t, err, potential.ErrBadPars)
}

func TestBuildManager_Blocks(t *testing.T) {
	// Block 0: two Gaussians (y individual, σ² shared).
	// Block 1: one Laplace.
	ids := []int{potential.IDGaussian, potential.IDLaplace}
	counts := []int{2, 1}
	parVec := []float64{ /* gauss y */ 1.0, 2.0 /* gauss ssq */, 0.5 /* lap y */, 0.0 /* lap tau */, 2.0}
	parShrd := []bool{false, true, true, true}
	m, err := potential.BuildManager(ids, counts, parVec, parShrd, []any{nil, nil})
	require.NoError(t, err)

	assert.Equal(t, 3, m.Size())
	assert.Equal(t, 3, m.NumInGroup(potential.GroupUnivariate))

	p, err := m.GetPot(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.0, 0.5}, p.Pars(nil))

	p, err = m.GetPot(2)
	require.NoError(t, err)
	assert.IsType(t, &potential.Laplace{}, p)
	assert.Equal(t, []float64{0.0, 2.0}, p.Pars(nil))

	// The view is a scratch object: the next GetPot reconfigures it.
	p0, err := m.GetPot(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0, 0.5}, p0.Pars(nil))
}

func TestBuildManager_SuffixRule(t *testing.T) {
	cfg := potential.DefaultQuadConfig()

	// BivarPrec block last: fine.
	ids := []int{potential.IDGaussian, potential.IDGaussianPrec}
	counts := []int{1, 2}
	parVec := []float64{0.0, 1.0, 0.5, 0.7}
	parShrd := []bool{true, true, false}
	m, err := potential.BuildManager(ids, counts, parVec, parShrd, []any{nil, cfg})
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumInGroup(potential.GroupBivarPrec))

	// BivarPrec block first: rejected.
	ids = []int{potential.IDGaussianPrec, potential.IDGaussian}
	counts = []int{2, 1}
	parVec = []float64{0.5, 0.7, 0.0, 1.0}
	parShrd = []bool{false, true, true}
	_, err = potential.BuildManager(ids, counts, parVec, parShrd, []any{cfg, nil})
	assert.ErrorIs(t, err, potential.ErrGroupOrder)
}

func TestBuildManager_Validation(t *testing.T) {
	_, err := potential.BuildManager(nil, nil, nil, nil, nil)
	assert.ErrorIs(t, err, potential.ErrBadBlocks)

	_, err = potential.BuildManager([]int{99}, []int{1}, nil, nil, []any{nil})
	assert.ErrorIs(t, err, potential.ErrUnknownID)

	// Trailing parameter data.
	_, err = potential.BuildManager([]int{potential.IDGaussian}, []int{1},
		[]float64{0.0, 1.0, 7.0}, []bool{true, true}, []any{nil})
	assert.ErrorIs(t, err, potential.ErrBadBlocks)
}

func TestCheckBlocks(t *testing.T) {
	// Valid single block.
	err := potential.CheckBlocks([]int{potential.IDGaussian}, []int{2},
		[]float64{1.0, 2.0, 0.5}, []bool{false, true}, []any{nil}, 0, nil)
	assert.NoError(t, err)

	// Second potential's individual variance is invalid; position is
	// reported with the offset.
	err = potential.CheckBlocks([]int{potential.IDGaussian}, []int{2},
		[]float64{1.0, 2.0, 0.5, -0.5}, []bool{false, false}, []any{nil}, 1, nil)
	require.ErrorIs(t, err, potential.ErrBadPars)
	assert.Contains(t, err.Error(), "potential 2")

	// GaussMixture construction parameter must be shared.
	err = potential.CheckBlocks([]int{potential.IDGaussMixture}, []int{2},
		[]float64{2, 2, 0.0, 1.0, 1.0}, []bool{false, true, true, true}, []any{nil}, 0, nil)
	assert.ErrorIs(t, err, potential.ErrBadBlocks)

	// tauInd demanded iff precision potentials present.
	cfg := potential.DefaultQuadConfig()
	err = potential.CheckBlocks([]int{potential.IDGaussianPrec}, []int{2},
		[]float64{0.0, 0.0}, []bool{false}, []any{cfg}, 0, nil)
	assert.ErrorIs(t, err, potential.ErrBadBlocks)

	err = potential.CheckBlocks([]int{potential.IDGaussianPrec}, []int{2},
		[]float64{0.0, 0.0}, []bool{false}, []any{cfg}, 0,
		[]int{0, 0, 1, 5, 7, 0, 1})
	assert.NoError(t, err)

	err = potential.CheckBlocks([]int{potential.IDGaussian}, []int{1},
		[]float64{0.0, 1.0}, []bool{true, true}, []any{nil}, 0,
		[]int{0, 1, 3, 4, 0})
	assert.ErrorIs(t, err, potential.ErrBadBlocks)
}
