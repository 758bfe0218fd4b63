package ep_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epfact/ep"
	"github.com/katalvlaran/epfact/potential"
	"github.com/katalvlaran/epfact/topk"
)

func TestRunUpdates_RecordsOutputs(t *testing.T) {
	mo := buildModel(t, [][]float64{{1, 1}, {1, 0}, {0, 1}})
	mgr := gaussians(t, 1.0, []float64{0.5, 1.0, 2.0})
	drv, err := ep.NewDriver(mgr, mo.rep, mo.margBeta, mo.margPi, 1e-6)
	require.NoError(t, err)

	res, err := ep.RunUpdates(drv, []int{0, 1, 2, 0, 1, 2}, ep.Options{DampFact: 0.1})
	require.NoError(t, err)
	require.Len(t, res.Status, 6)
	for i, st := range res.Status {
		assert.Equal(t, ep.StatusSuccess, st, "update %d", i)
		assert.Greater(t, res.Delta[i], 0.0, "update %d", i)
		assert.InDelta(t, 0.1, res.EffDamp[i], 1e-15, "update %d", i)
	}
	// Repeated sweeps converge: the second pass moves far less.
	res2, err := ep.RunUpdates(drv, []int{0, 1, 2}, ep.Options{DampFact: 0.0})
	require.NoError(t, err)
	for i := range res2.Delta {
		assert.Less(t, res2.Delta[i], res.Delta[i])
	}
}

func TestRunUpdates_FailuresRecordedAndSkipped(t *testing.T) {
	// Potential 1 sits on a poisoned state: its link carries more π
	// than the marginal, so its cavity is negative; others succeed.
	mo := buildModel(t, [][]float64{{1, 0}, {1, 1}, {0, 1}})
	mo.pi[1] = 5.0 // row 1, first link (variable 0)
	mgr := gaussians(t, 1.0, []float64{0.5, 1.0, 2.0})
	drv, err := ep.NewDriver(mgr, mo.rep, mo.margBeta, mo.margPi, 1e-6)
	require.NoError(t, err)

	res, err := ep.RunUpdates(drv, []int{0, 1, 2}, ep.Options{})
	require.NoError(t, err)
	assert.Equal(t, ep.StatusSuccess, res.Status[0])
	assert.Equal(t, ep.StatusCavityInvalid, res.Status[1])
	assert.Equal(t, ep.StatusSuccess, res.Status[2])

	// Failure slots carry the sentinel outputs.
	assert.Equal(t, 0.0, res.Delta[1])
	assert.Equal(t, 1.0, res.EffDamp[1])
}

func TestRunUpdates_TrackerStats(t *testing.T) {
	mo := buildModel(t, [][]float64{{1, 1}, {1, 0}, {0, 1}})
	mgr := gaussians(t, 1.0, []float64{0.5, 1.0, 2.0})
	// No messages are seeded: the tracker builds over the cold model's
	// zeros, and maxima are 0 until the first commit.
	tr, err := topk.NewFor(topk.PiSource{Repr: mo.rep}, 2)
	require.NoError(t, err)
	drv, err := ep.NewDriver(mgr, mo.rep, mo.margBeta, mo.margPi, 1e-6,
		ep.WithMaxPi(tr))
	require.NoError(t, err)

	res, err := ep.RunUpdates(drv, []int{0, 1, 2}, ep.Options{})
	require.NoError(t, err)
	for i, st := range res.Status {
		require.Equal(t, ep.StatusSuccess, st, "update %d", i)
	}
	// Two links in row 0, one in rows 1 and 2.
	assert.Equal(t, 4, res.NumUpdates)
	assert.GreaterOrEqual(t, res.NumRecomputes, 0)
}

func TestRunUpdates_ArgumentErrors(t *testing.T) {
	mo := buildModel(t, [][]float64{{1.0}})
	mgr := gaussians(t, 1.0, []float64{0.5})
	drv, err := ep.NewDriver(mgr, mo.rep, mo.margBeta, mo.margPi, 1e-6)
	require.NoError(t, err)

	_, err = ep.RunUpdates(drv, nil, ep.Options{})
	assert.ErrorIs(t, err, ep.ErrBadIndex)

	_, err = ep.RunUpdates(drv, []int{0, 5}, ep.Options{})
	assert.ErrorIs(t, err, ep.ErrBadIndex)

	_, err = ep.RunUpdates(drv, []int{0}, ep.Options{DampFact: 1.0})
	assert.ErrorIs(t, err, ep.ErrBadDamp)
}

func TestServices_TrackersAndSingleUpdate(t *testing.T) {
	mo := buildModel(t, [][]float64{{1, 1}, {1, 0}, {0, 1}})
	mo.pi[0], mo.pi[1], mo.pi[2], mo.pi[3] = 0.5, 1.5, 2.5, 3.5

	// Caller-owned arrays filled by the one-shot service.
	n, K := 2, 2
	numValid := make([]int, n)
	topInd := make([]int, n*(K+1))
	topVal := make([]float64, n*(K+1))
	tr, err := ep.NewPiTracker(mo.rep, K, numValid, topInd, topVal)
	require.NoError(t, err)
	assert.Equal(t, 2.5, tr.Max(0))
	assert.Equal(t, 3.5, tr.Max(1))
	assert.Equal(t, []int{2, 2}, numValid)

	// SingleUpdate mirrors the potential's moment routine.
	g, err := potential.NewGaussian(2.0, 0.5)
	require.NoError(t, err)
	alpha, nu, logZ, ok := ep.SingleUpdate(g, 0.4, 1.2, 1.0)
	require.True(t, ok)
	wantAlpha, wantNu, wantLogZ, _ := g.Moments(0.4, 1.2, 1.0)
	assert.Equal(t, wantAlpha, alpha)
	assert.Equal(t, wantNu, nu)
	assert.Equal(t, wantLogZ, logZ)

	// NewMessage converts moments into link parameters; for a flat
	// prior message it reproduces the Gaussian observation exactly.
	beta, pi, ok := ep.NewMessage(alpha, nu, 0.4, 1.2, 1.0, 0.0, 0.0)
	require.True(t, ok)
	assert.InDelta(t, 2.0, pi, 1e-12)
	assert.InDelta(t, 4.0, beta, 1e-12)
}
