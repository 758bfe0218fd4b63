package quadrature

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// Defaults for NewPanels.
const (
	// DefaultNodes is the Gauss–Legendre order per panel.
	DefaultNodes = 50

	// DefaultMaxDoublings bounds refinement at 2^6 = 64 panels per
	// segment.
	DefaultMaxDoublings = 6

	// DefaultRelTol is the relative agreement required between two
	// successive refinements of a segment.
	DefaultRelTol = 1e-10
)

// tailClip keeps the t/(1-t) tail transform away from the t=1 pole.
const tailClip = 1e-12

// Option configures a Panels integrator.
type Option func(*Panels)

// WithNodes sets the Gauss–Legendre order per panel (n ≥ 2; panics on
// nonsense, a programmer error).
func WithNodes(n int) Option {
	if n < 2 {
		panic("quadrature: WithNodes requires n >= 2")
	}
	return func(p *Panels) { p.nodes = n }
}

// WithRelTol sets the relative agreement tolerance (must be positive).
func WithRelTol(tol float64) Option {
	if tol <= 0.0 {
		panic("quadrature: WithRelTol requires tol > 0")
	}
	return func(p *Panels) { p.relTol = tol }
}

// WithMaxDoublings sets the refinement budget per segment (d ≥ 1).
func WithMaxDoublings(d int) Option {
	if d < 1 {
		panic("quadrature: WithMaxDoublings requires d >= 1")
	}
	return func(p *Panels) { p.maxDoublings = d }
}

// Panels is the default Integrator: way-point splitting, tail
// transforms, fixed Gauss–Legendre per panel, panel doubling.
type Panels struct {
	nodes        int
	maxDoublings int
	relTol       float64
	rule         quad.Legendre
}

// NewPanels returns a Panels integrator with the documented defaults,
// adjusted by opts.
func NewPanels(opts ...Option) *Panels {
	p := &Panels{
		nodes:        DefaultNodes,
		maxDoublings: DefaultMaxDoublings,
		relTol:       DefaultRelTol,
	}
	for _, o := range opts {
		o(p)
	}

	return p
}

// Quad implements Integrator. Complexity: O(nodes · 2^doublings) f
// evaluations per segment, segments = way-points + tails + 1.
func (p *Panels) Quad(f func(float64) float64, a, b float64, aInf, bInf bool, wayPts []float64) (float64, error) {
	// 1) Validate the interval and way-point ordering.
	if !aInf && !bInf && b <= a {
		return 0.0, ErrBadInterval
	}
	for i, w := range wayPts {
		if i > 0 && w <= wayPts[i-1] {
			return 0.0, ErrBadInterval
		}
		if (!aInf && w <= a) || (!bInf && w >= b) {
			return 0.0, ErrBadInterval
		}
	}

	// 2) Collect the finite split points in order.
	var fin []float64
	if !aInf {
		fin = append(fin, a)
	}
	fin = append(fin, wayPts...)
	if !bInf {
		fin = append(fin, b)
	}
	if len(fin) == 0 {
		// Doubly infinite with no way-points: anchor a core at [-1,1].
		fin = []float64{-1.0, 1.0}
	} else if len(fin) == 1 {
		// A single anchor; the tails attach on both sides of it.
		fin = []float64{fin[0], fin[0]}
	}

	// 3) Integrate the finite core segments.
	var total float64
	for i := 0; i+1 < len(fin); i++ {
		if fin[i+1] <= fin[i] {
			continue // collapsed anchor from step 2
		}
		v, err := p.segment(f, fin[i], fin[i+1])
		if err != nil {
			return 0.0, err
		}
		total += v
	}

	// 4) Map infinite tails onto (0,1): x = end ± t/(1-t),
	//    dx = dt/(1-t)².
	if bInf {
		b0 := fin[len(fin)-1]
		g := func(t float64) float64 {
			u := 1.0 - t
			return f(b0+t/u) / (u * u)
		}
		v, err := p.segment(g, 0.0, 1.0-tailClip)
		if err != nil {
			return 0.0, err
		}
		total += v
	}
	if aInf {
		a0 := fin[0]
		g := func(t float64) float64 {
			u := 1.0 - t
			return f(a0-t/u) / (u * u)
		}
		v, err := p.segment(g, 0.0, 1.0-tailClip)
		if err != nil {
			return 0.0, err
		}
		total += v
	}

	return total, nil
}

// segment integrates one smooth finite segment with panel doubling.
func (p *Panels) segment(f func(float64) float64, lo, hi float64) (float64, error) {
	prev := math.NaN()
	nPan := 1
	for d := 0; d <= p.maxDoublings; d++ {
		var sum float64
		h := (hi - lo) / float64(nPan)
		for i := 0; i < nPan; i++ {
			sum += quad.Fixed(f, lo+float64(i)*h, lo+float64(i+1)*h, p.nodes, p.rule, 0)
		}
		if d > 0 && math.Abs(sum-prev) <= p.relTol*math.Max(1.0, math.Abs(sum)) {
			return sum, nil
		}
		prev = sum
		nPan *= 2
	}

	return prev, ErrNotConverged
}
