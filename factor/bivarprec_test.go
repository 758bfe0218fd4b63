package factor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epfact/factor"
)

// Two precision potentials sharing one τ variable:
// tauInd = k(j) per ordinal, K, offsets, J_0.
func precFixture(t *testing.T) (*factor.PrecRepresentation, []float64, []float64) {
	t.Helper()
	rep, _, _ := buildRep(t, [][]float64{{1, 0}, {0, 1}, {1, 1}})
	a := []float64{1.5, 2.5}
	c := []float64{0.5, 1.0}
	tauInd := []int{0, 0, 1, 5, 7, 0, 1}
	prec, err := factor.NewPrec(rep, a, c, tauInd)
	require.NoError(t, err)

	return prec, a, c
}

func TestPrec_Access(t *testing.T) {
	prec, a, c := precFixture(t)
	assert.Equal(t, 2, prec.NumPrecPotentials())
	assert.Equal(t, 1, prec.NumPrecVariables())

	// Absolute potential indices 1 and 2 form the precision suffix.
	k, ap, cp, err := prec.AccessTauRow(1)
	require.NoError(t, err)
	assert.Equal(t, 0, k)
	*ap = 9.0
	assert.Equal(t, 9.0, a[0])
	assert.Equal(t, &c[0], cp)

	k, _, cp, err = prec.AccessTauRow(2)
	require.NoError(t, err)
	assert.Equal(t, 0, k)
	assert.Equal(t, &c[1], cp)

	// Potential 0 is univariate: not in the suffix.
	_, _, _, err = prec.AccessTauRow(0)
	assert.ErrorIs(t, err, factor.ErrIndexRange)

	col, err := prec.AccessTauCol(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, col.Js)

	_, err = prec.AccessTauCol(1)
	assert.ErrorIs(t, err, factor.ErrIndexRange)
}

func TestPrec_TauMarginals(t *testing.T) {
	prec, a, c := precFixture(t)
	a[0], a[1] = 1.5, 2.5
	c[0], c[1] = 0.5, 1.0

	margA := make([]float64, 1)
	margC := make([]float64, 1)
	require.NoError(t, prec.CompTauMarginals(margA, margC, false))
	assert.Equal(t, 4.0, margA[0])
	assert.Equal(t, 1.5, margC[0])

	require.NoError(t, prec.CompTauMarginals(margA, margC, true))
	assert.Equal(t, 8.0, margA[0])

	assert.ErrorIs(t, prec.CompTauMarginals(nil, margC, false), factor.ErrBadSize)
}

func TestCheckTauIndex(t *testing.T) {
	// Valid: the fixture index.
	k, err := factor.CheckTauIndex([]int{0, 0, 1, 5, 7, 0, 1}, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, k)

	// Two variables, one potential each.
	k, err = factor.CheckTauIndex([]int{0, 1, 2, 6, 7, 8, 0, 1}, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, k)

	// k(j) out of range.
	_, err = factor.CheckTauIndex([]int{0, 3, 1, 5, 7, 0, 1}, 2)
	assert.ErrorIs(t, err, factor.ErrBadTauIndex)

	// J list inconsistent with k(j).
	_, err = factor.CheckTauIndex([]int{0, 1, 2, 6, 7, 8, 1, 0}, 2)
	assert.ErrorIs(t, err, factor.ErrBadTauIndex)

	// Wrong total length.
	_, err = factor.CheckTauIndex([]int{0, 0, 1, 5, 7, 0}, 2)
	assert.ErrorIs(t, err, factor.ErrBadTauIndex)
}

func TestNewPrec_Validation(t *testing.T) {
	rep, _, _ := buildRep(t, [][]float64{{1, 0}, {0, 1}})

	// More precision potentials than potentials.
	_, err := factor.NewPrec(rep, make([]float64, 3), make([]float64, 3),
		[]int{0, 0, 0, 1, 6, 9, 0, 1, 2})
	assert.ErrorIs(t, err, factor.ErrBadSize)

	// a/c length mismatch.
	_, err = factor.NewPrec(rep, make([]float64, 2), make([]float64, 1),
		[]int{0, 0, 1, 5, 7, 0, 1})
	assert.ErrorIs(t, err, factor.ErrBadSize)
}
