package specfun

import "math"

// Mathematical constants shared across the EP moment code.
const (
	// Ln2Pi is log(2π).
	Ln2Pi = 1.83787706640934533908193770913
	// Ln2 is log(2).
	Ln2 = 0.69314718055994530941723212146
	// SqrtPi is √π.
	SqrtPi = 1.77245385090551602729816748334
	// Sqrt2 is √2.
	Sqrt2 = 1.41421356237309504880168872421
)

// Cody's approximation switches between three regimes at these points.
const (
	erfCodyLimit1 = 0.6629
	erfCodyLimit2 = 5.6569
)

// LogPdfNormal returns log N(z|0,1).
func LogPdfNormal(z float64) float64 {
	return -0.5 * (Ln2Pi + z*z)
}

// CdfNormal returns Φ(z), the c.d.f. of the standard normal.
//
// For |z| < 0.6629 the R_3 rational form is used; outside, the tail
// form Φ(z) ≈ N(z)·Q(-z)/(-z) (z<0), mirrored for z>0.
func CdfNormal(z float64) float64 {
	if math.Abs(z) < erfCodyLimit1 {
		// Φ(z) ≈ (1 + y R_3(y²))/2, y = z/√2
		return 0.5 * (1.0 + (z/Sqrt2)*erfRationalR3(0.5*z*z))
	}
	if z < 0.0 {
		return math.Exp(LogPdfNormal(z)) * erfRational(-z) / (-z)
	}

	return 1.0 - math.Exp(LogPdfNormal(z))*erfRational(z)/z
}

// LogCdfNormal returns log Φ(z). Accurate in the left tail where Φ(z)
// underflows: there log Φ(z) = log N(z) - log(-z) + log Q(-z).
func LogCdfNormal(z float64) float64 {
	if math.Abs(z) < erfCodyLimit1 {
		return math.Log1p((z/Sqrt2)*erfRationalR3(0.5*z*z)) - Ln2
	}
	if z < 0.0 {
		return LogPdfNormal(z) - math.Log(-z) + math.Log(erfRational(-z))
	}

	return math.Log1p(-math.Exp(LogPdfNormal(z)) * erfRational(z) / z)
}

// DerivLogCdfNormal returns (d/dz) log Φ(z) = N(z)/Φ(z). The value at
// -z is the hazard function of the standard normal.
func DerivLogCdfNormal(z float64) float64 {
	if math.Abs(z) < erfCodyLimit1 {
		return 2.0 * math.Exp(LogPdfNormal(z)) /
			(1.0 + (z/Sqrt2)*erfRationalR3(0.5*z*z))
	}
	if z < 0.0 {
		return -z / erfRational(-z)
	}
	temp := math.Exp(LogPdfNormal(z))

	return temp / (1.0 - temp*erfRational(z)/z)
}

// LogGamma returns log Γ(z) for z > 0.
func LogGamma(z float64) float64 {
	if z <= 0.0 {
		return math.NaN()
	}
	v, _ := math.Lgamma(z)

	return v
}

// LogSumExp returns log Σ exp(a[k]) without overflow. Returns 0 for an
// empty slice.
func LogSumExp(a []float64) float64 {
	if len(a) == 0 {
		return 0.0
	}
	mx := a[0]
	sum := 1.0
	for _, v := range a[1:] {
		if v <= mx {
			sum += math.Exp(v - mx)
		} else {
			sum = sum*math.Exp(mx-v) + 1.0
			mx = v
		}
	}

	return mx + math.Log(sum)
}

// erfRational computes Q(x) for x ≥ erfCodyLimit1, where
// 1 - Φ(x) ≈ N(x) x⁻¹ Q(x). Q(x) → 1 as x → ∞.
func erfRational(x float64) float64 {
	if x >= erfCodyLimit2 {
		// Q(x) = 1 + √π y R_1(y), y = 2/x², R_1 = poly(p)/poly(q).
		// Coefficient ordering: 4,3,2,1,0,5 for p (q_5 = 1); the p_j
		// enter negated.
		p := [6]float64{
			3.05326634961232344e-1, 3.60344899949804439e-1,
			1.25781726111229246e-1, 1.60837851487422766e-2,
			6.58749161529837803e-4, 1.63153871373020978e-2,
		}
		q := [5]float64{
			2.56852019228982242, 1.87295284992346047,
			5.27905102951428412e-1, 6.05183413124413191e-2,
			2.33520497626869185e-3,
		}
		y := 2.0 / x / x
		res := y * p[5]
		den := y
		for i := 0; i < 4; i++ {
			res = (res + p[i]) * y
			den = (den + q[i]) * y
		}

		return 1.0 - SqrtPi*y*(res+p[4])/(den+q[4])
	}
	// Q(x) = √π y R_2(y), y = x/√2. Ordering: 7..0,8 for p (q_8 = 1).
	p := [9]float64{
		5.64188496988670089e-1, 8.88314979438837594,
		6.61191906371416295e+1, 2.98635138197400131e+2,
		8.81952221241769090e+2, 1.71204761263407058e+3,
		2.05107837782607147e+3, 1.23033935479799725e+3,
		2.15311535474403846e-8,
	}
	q := [8]float64{
		1.57449261107098347e+1, 1.17693950891312499e+2,
		5.37181101862009858e+2, 1.62138957456669019e+3,
		3.29079923573345963e+3, 4.36261909014324716e+3,
		3.43936767414372164e+3, 1.23033935480374942e+3,
	}
	y := x / Sqrt2
	res := y * p[8]
	den := y
	for i := 0; i < 7; i++ {
		res = (res + p[i]) * y
		den = (den + q[i]) * y
	}

	return SqrtPi * y * (res + p[7]) / (den + q[7])
}

// erfRationalR3 computes R_3(y), y = x²/2, used for |x| < erfCodyLimit1
// where Φ(x) ≈ (1 + (x/√2) R_3(x²/2))/2.
func erfRationalR3(y float64) float64 {
	// Ordering: 3,2,1,0,4 for p (q_4 = 1).
	p := [5]float64{
		3.16112374387056560, 1.13864154151050156e+2,
		3.77485237685302021e+2, 3.20937758913846947e+3,
		1.85777706184603153e-1,
	}
	q := [4]float64{
		2.36012909523441209e+1, 2.44024637934444173e+2,
		1.28261652607737228e+3, 2.84423683343917062e+3,
	}
	nom := y * p[4]
	den := y
	for i := 0; i < 3; i++ {
		nom = (nom + p[i]) * y
		den = (den + q[i]) * y
	}

	return (nom + p[3]) / (den + q[3])
}
