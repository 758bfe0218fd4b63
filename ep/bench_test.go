package ep_test

import (
	"testing"

	"github.com/katalvlaran/epfact/ep"
	"github.com/katalvlaran/epfact/factor"
	"github.com/katalvlaran/epfact/potential"
)

// BenchmarkUpdate measures one sequential update on a banded model
// (each potential couples three variables); the hot path must stay
// allocation-free.
func BenchmarkUpdate(b *testing.B) {
	const n = 256
	supports := make([][]int, n-2)
	vals := make([][]float64, n-2)
	for j := range supports {
		supports[j] = []int{j, j + 1, j + 2}
		vals[j] = []float64{1.0, 0.5, 0.25}
	}
	rowInd, colInd, bv, err := factor.FromRows(n, supports, vals)
	if err != nil {
		b.Fatal(err)
	}
	beta := make([]float64, len(bv))
	pi := make([]float64, len(bv))
	rep, err := factor.New(n, len(supports), rowInd, colInd, bv, beta, pi)
	if err != nil {
		b.Fatal(err)
	}
	proto, err := potential.NewGaussian(0.0, 1.0)
	if err != nil {
		b.Fatal(err)
	}
	mgr, err := potential.NewDefaultManager(proto, len(supports),
		[]float64{0.5, 1.0}, []bool{true, true}, true)
	if err != nil {
		b.Fatal(err)
	}
	margBeta := make([]float64, n)
	margPi := make([]float64, n)
	drv, err := ep.NewDriver(mgr, rep, margBeta, margPi, 1e-10)
	if err != nil {
		b.Fatal(err)
	}
	// Warm start; individual updates may still report failure
	// statuses, which is fine for throughput measurement.
	for j := 0; j < len(supports); j++ {
		if _, err := drv.Update(j, 0.0); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := drv.Update(i%len(supports), 0.2); err != nil {
			b.Fatal(err)
		}
	}
}
