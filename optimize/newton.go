package optimize

import (
	"errors"
	"math"
)

// Func is a scalar function together with its first derivative.
// Implementations must return both values at x.
type Func interface {
	Eval(x float64) (f, df float64)
}

// FuncOf adapts a closure to the Func interface.
type FuncOf func(x float64) (f, df float64)

// Eval implements Func.
func (fn FuncOf) Eval(x float64) (f, df float64) { return fn(x) }

// Bracket selects how the right bracket end of Newton is interpreted.
type Bracket int

const (
	// BracketRegular: r is a valid right end, f(l)·f(r) < 0 required.
	BracketRegular Bracket = iota
	// BracketBound: r is a first trial step; a true right end is
	// searched below the pole boundR.
	BracketBound
	// BracketInfinite: like BracketBound without an upper limit.
	BracketInfinite
)

// Sentinel errors for Newton.
var (
	// ErrBadBracket indicates an invalid initial bracket (l ≥ r, no
	// sign change, or a first step past boundR).
	ErrBadBracket = errors.New("optimize: invalid initial bracket")

	// ErrMaxIter indicates the iteration limit was exceeded, also
	// while searching for a right bracket end.
	ErrMaxIter = errors.New("optimize: maximum number of iterations exceeded")
)

// maxIter bounds both the bracket search and the main loop.
const maxIter = 100

func sign(x float64) int {
	if x >= 0.0 {
		return 1
	}

	return -1
}

// Newton solves f(x) = 0 on a bracket. l is the initial left end; the
// meaning of r depends on br (see Bracket). acc is the accuracy in the
// argument, facc in the function value; both must be positive. boundR
// is consulted only for BracketBound.
//
// The scheme follows the corrected rtsafe variant: start at l, attempt
// Newton steps, bisect when a step leaves [l,r] or when the previous
// Newton step shrank the bracket by less than 15%. During the right-end
// search, a quadratic fit through (l, x) is preferred over the plain
// Newton step when it brackets faster.
//
// Complexity: O(maxIter) evaluations of f.
func Newton(fn Func, l, r, acc, facc float64, br Bracket, boundR float64) (float64, error) {
	if acc <= 0.0 || facc <= 0.0 {
		return 0.0, ErrBadBracket
	}
	fl, df := fn.Eval(l)
	rat := fl / df
	lsgn := sign(fl)
	if math.Abs(fl) < facc {
		return l, nil
	}

	if br == BracketRegular {
		if l >= r {
			return 0.0, ErrBadBracket
		}
		f, _ := fn.Eval(r)
		if math.Abs(f) < facc {
			return r, nil
		}
		if lsgn == sign(f) {
			return 0.0, ErrBadBracket
		}
	} else {
		// Search a right bracket end: walk right until the sign flips.
		// l moves along but keeps its sign; fl/df/rat track f(l).
		isBound := br == BracketBound
		dx := r - l
		if dx <= 0.0 {
			dx = acc
		}
		if isBound && l+dx > boundR-acc {
			return 0.0, ErrBadBracket
		}
		var rts, f, df2, rat2 float64
		found := false
		for j := 0; j <= maxIter; j++ {
			rts = l + dx
			f, df2 = fn.Eval(rts)
			rat2 = f / df2
			if math.Abs(f) < facc {
				return rts, nil
			}
			if sign(f) != lsgn {
				found = true
				break
			}
			// Quadratic through (l, fl) and (rts, f, df2), else Newton.
			alpha := (fl-f)/(l-rts) - df2
			if sign(alpha) == lsgn && math.Abs(alpha) > 10.0*facc*(rts-l) {
				alpha /= l - rts
				if lsgn == -1 {
					dx = 0.5 * (math.Sqrt(df2*df2-4.0*alpha*f) - df2) / alpha
				} else {
					dx = -0.5 * (math.Sqrt(df2*df2-4.0*alpha*f) + df2) / alpha
				}
			} else if rat2 < 0.0 {
				dx = -rat2
			}
			if isBound {
				if lim := 0.9 * (boundR - acc - rts); dx > lim {
					dx = lim
				}
			}
			if dx < acc {
				dx = acc
				if isBound && rts+dx > boundR-acc {
					return 0.0, ErrMaxIter
				}
			}
			l = rts
			fl, df, rat = f, df2, rat2
		}
		if !found {
			return 0.0, ErrMaxIter
		}
		r = rts
	}

	// Bracket [l,r] established; f(l) carries lsgn. Walk it down.
	olds := r - l
	if olds < acc {
		return l, nil
	}
	rts := l
	nextBisect := false
	for j := 0; j <= maxIter; j++ {
		var didNewton bool
		step := rts - rat
		if nextBisect || step <= l || step >= r {
			rts = 0.5 * (l + r)
		} else {
			rts = step
			didNewton = true
		}
		var f float64
		f, df = fn.Eval(rts)
		rat = f / df
		if math.Abs(f) < facc {
			return rts, nil
		}
		if sign(f) == lsgn {
			l = rts
		} else {
			r = rts
		}
		width := r - l
		if width < acc {
			return rts, nil
		}
		nextBisect = didNewton && width > 0.85*olds
		olds = width
	}

	return 0.0, ErrMaxIter
}
