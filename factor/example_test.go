package factor_test

import (
	"fmt"

	"github.com/katalvlaran/epfact/factor"
)

// ExampleRepresentation compiles a small coupling factor and sums its
// link messages into variable marginals.
func ExampleRepresentation() {
	n, rowInd, colInd, b, err := factor.FromDense([][]float64{
		{1, 2, 0},
		{0, 1, 3},
	})
	if err != nil {
		panic(err)
	}
	beta := make([]float64, len(b))
	pi := []float64{0.5, 1.0, 2.0, 0.5}
	rep, err := factor.New(n, 2, rowInd, colInd, b, beta, pi)
	if err != nil {
		panic(err)
	}

	margBeta := make([]float64, n)
	margPi := make([]float64, n)
	if err := rep.CompMarginals(margBeta, margPi, false); err != nil {
		panic(err)
	}
	fmt.Println(margPi)
	// Output:
	// [0.5 3 0.5]
}
