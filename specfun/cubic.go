package specfun

import "math"

// RootsCubic returns the real roots of x³ + c2·x² + c1·x + c0 = 0 in
// ascending order. The result has length 3 (all roots real, possibly
// repeated) or 1.
//
// The depressed form t³ + pt + q (x = t - c2/3) is solved by the
// trigonometric method when the discriminant admits three real roots,
// and by Cardano's single-root formula otherwise.
func RootsCubic(c2, c1, c0 float64) []float64 {
	p := c1 - c2*c2/3.0
	q := 2.0*c2*c2*c2/27.0 - c2*c1/3.0 + c0
	shift := -c2 / 3.0
	disc := q*q/4.0 + p*p*p/27.0

	switch {
	case disc > 0.0:
		// One real root (Cardano).
		sq := math.Sqrt(disc)
		u := math.Cbrt(-q/2.0 + sq)
		v := math.Cbrt(-q/2.0 - sq)

		return []float64{u + v + shift}
	case p == 0.0 && q == 0.0:
		// Triple root.
		return []float64{shift, shift, shift}
	default:
		// Three real roots (trigonometric form). Guard the acos
		// argument against round-off just outside [-1,1].
		m := 2.0 * math.Sqrt(-p/3.0)
		arg := 3.0 * q / (p * m)
		if arg > 1.0 {
			arg = 1.0
		} else if arg < -1.0 {
			arg = -1.0
		}
		theta := math.Acos(arg) / 3.0
		r := make([]float64, 3)
		for k := 0; k < 3; k++ {
			r[k] = m*math.Cos(theta-2.0*math.Pi*float64(k)/3.0) + shift
		}
		// Only three values; sort by hand.
		if r[0] > r[1] {
			r[0], r[1] = r[1], r[0]
		}
		if r[1] > r[2] {
			r[1], r[2] = r[2], r[1]
		}
		if r[0] > r[1] {
			r[0], r[1] = r[1], r[0]
		}

		return r
	}
}
