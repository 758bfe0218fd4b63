package factor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epfact/factor"
)

// buildRep compiles a dense matrix into a fresh representation with
// zeroed messages.
func buildRep(t *testing.T, B [][]float64) (*factor.Representation, []float64, []float64) {
	t.Helper()
	n, rowInd, colInd, b, err := factor.FromDense(B)
	require.NoError(t, err)
	beta := make([]float64, len(b))
	pi := make([]float64, len(b))
	rep, err := factor.New(n, len(B), rowInd, colInd, b, beta, pi)
	require.NoError(t, err)

	return rep, beta, pi
}

func TestFromDense_Layout(t *testing.T) {
	// B = [[1,2,0],[0,1,3]].
	rep, _, _ := buildRep(t, [][]float64{{1, 2, 0}, {0, 1, 3}})
	assert.Equal(t, 3, rep.NumVariables())
	assert.Equal(t, 2, rep.NumPotentials())
	assert.Equal(t, 4, rep.NumNonzeros())
	assert.Equal(t, 2, rep.MaxRowSize())

	r0, err := rep.AccessRow(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, r0.Support)
	assert.Equal(t, []float64{1, 2}, r0.B)

	r1, err := rep.AccessRow(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, r1.Support)
	assert.Equal(t, []float64{1, 3}, r1.B)

	// Column 1 is shared by both potentials.
	c1, err := rep.AccessCol(1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, c1.Support)
	require.Len(t, c1.Links, 2)
	assert.Equal(t, 2.0, c1.B[c1.Links[0]])
	assert.Equal(t, 1.0, c1.B[c1.Links[1]])
}

func TestAccessRow_WritesThrough(t *testing.T) {
	rep, beta, pi := buildRep(t, [][]float64{{1, 2, 0}, {0, 1, 3}})
	r0, err := rep.AccessRow(0)
	require.NoError(t, err)
	r0.Pi[0] = 0.5
	r0.Beta[1] = -1.5
	assert.Equal(t, 0.5, pi[0])
	assert.Equal(t, -1.5, beta[1])
}

// Link params pi_{0,·}=[0.5,1.0], pi_{1,·}=[2.0,0.5] must sum
// to marginals [0.5, 3.0, 0.5] exactly.
func TestCompMarginals(t *testing.T) {
	rep, beta, pi := buildRep(t, [][]float64{{1, 2, 0}, {0, 1, 3}})
	copy(pi, []float64{0.5, 1.0, 2.0, 0.5})
	copy(beta, []float64{0.1, 0.2, 0.3, 0.4})

	margBeta := make([]float64, 3)
	margPi := make([]float64, 3)
	require.NoError(t, rep.CompMarginals(margBeta, margPi, false))
	assert.Equal(t, []float64{0.5, 3.0, 0.5}, margPi)
	assert.Equal(t, []float64{0.1, 0.5, 0.4}, margBeta)

	// Idempotence: a second overwrite run yields identical output.
	again := make([]float64, 3)
	againPi := make([]float64, 3)
	require.NoError(t, rep.CompMarginals(again, againPi, false))
	assert.Equal(t, margBeta, again)
	assert.Equal(t, margPi, againPi)

	// Incremental mode accumulates.
	require.NoError(t, rep.CompMarginals(margBeta, margPi, true))
	assert.Equal(t, []float64{1.0, 6.0, 1.0}, margPi)

	// Size mismatch is an argument error.
	assert.ErrorIs(t, rep.CompMarginals(make([]float64, 2), margPi, false), factor.ErrBadSize)
}

func TestCompMarginals_EmptyColumn(t *testing.T) {
	// Column 2 of B = [[1,1,0]] is empty: marginal must be 0.
	rep, _, pi := buildRep(t, [][]float64{{1, 1, 0}})
	pi[0], pi[1] = 1.0, 2.0
	margBeta := make([]float64, 3)
	margPi := make([]float64, 3)
	require.NoError(t, rep.CompMarginals(margBeta, margPi, false))
	assert.Equal(t, []float64{1.0, 2.0, 0.0}, margPi)
}

func TestNew_Validation(t *testing.T) {
	n, rowInd, colInd, b, err := factor.FromDense([][]float64{{1, 2}, {3, 0}})
	require.NoError(t, err)
	beta := make([]float64, len(b))
	pi := make([]float64, len(b))

	// Happy path.
	_, err = factor.New(n, 2, rowInd, colInd, b, beta, pi)
	require.NoError(t, err)

	// Wrong message length.
	_, err = factor.New(n, 2, rowInd, colInd, b, beta[:1], pi)
	assert.ErrorIs(t, err, factor.ErrBadSize)

	// Corrupt the row offsets.
	bad := append([]int(nil), rowInd...)
	bad[0] = 1
	_, err = factor.New(n, 2, bad, colInd, b, beta, pi)
	assert.ErrorIs(t, err, factor.ErrBadRowIndex)

	// Corrupt a column block to odd length.
	bad = append([]int(nil), colInd...)
	bad[1]++
	_, err = factor.New(n, 2, rowInd, bad, b, beta, pi)
	assert.ErrorIs(t, err, factor.ErrBadColIndex)

	// Empty row is rejected by the builder already.
	_, _, _, err = factor.FromRows(2, [][]int{{}}, [][]float64{{}})
	assert.ErrorIs(t, err, factor.ErrBadRowIndex)

	// Out-of-range accessors.
	rep, _, _ := buildRep(t, [][]float64{{1, 2}})
	_, err = rep.AccessRow(5)
	assert.ErrorIs(t, err, factor.ErrIndexRange)
	_, err = rep.AccessCol(-1)
	assert.ErrorIs(t, err, factor.ErrIndexRange)
}
