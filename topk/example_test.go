package topk_test

import (
	"fmt"

	"github.com/katalvlaran/epfact/topk"
)

// ExampleTracker tracks the running maximum of one variable's link
// values through a demotion that forces a recompute.
func ExampleTracker() {
	src := newSliceSource([][]float64{{5, 4, 3, 2, 1}})
	tr, err := topk.NewFor(src, 3)
	if err != nil {
		panic(err)
	}
	fmt.Println("max:", tr.Max(0), "producer:", tr.MaxProducer(0))

	// Producer 2 jumps to the top.
	src.flat[0][2] = 6.0
	if err := tr.Update(0, 2, 6.0); err != nil {
		panic(err)
	}
	fmt.Println("max:", tr.Max(0), "producer:", tr.MaxProducer(0))

	// Everything tracked drops away; the list rebuilds itself.
	for _, j := range []int{2, 0, 1} {
		src.flat[0][j] = 0.5
		if err := tr.Update(0, j, 0.5); err != nil {
			panic(err)
		}
	}
	fmt.Println("max:", tr.Max(0), "producer:", tr.MaxProducer(0))
	// Output:
	// max: 5 producer: 0
	// max: 6 producer: 2
	// max: 2 producer: 3
}
