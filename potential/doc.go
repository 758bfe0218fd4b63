// Package potential implements the site potentials t_j(s) of
// factorized EP: the typed moment-computation interfaces, the built-in
// families, the stable ID ↔ name registry, and the potential manager
// that materializes per-potential views from flat block descriptions.
//
// 🚀 Potentials and argument groups
//
//	A potential computes the moments of its tilted distribution
//	Z⁻¹ t(s)^η N(s|μ⁻,ρ⁻): Moments returns (α, ν, log Z) such that
//	the tilted mean is μ⁻ + αρ⁻ and the variance ρ⁻(1 − νρ⁻).
//	Bivariate-precision potentials t(s,τ) additionally take a cavity
//	Gamma(a⁻,c⁻) on the precision τ and return (â, ĉ) matching the
//	tilted τ marginal. The argument group (GroupUnivariate vs
//	GroupBivarPrec) fixes this signature per family.
//
// ✨ Families
//
//	Gaussian, Laplace, Probit, Heaviside, QuantRegress, GaussMixture,
//	SpikeSlab have closed-form moments; PoissonExpRate,
//	PoissonLogisticRate, NegBinomExpRate and GaussianPrec integrate
//	numerically through the quadrature package, locating the integrand
//	(by a proximal map; GaussianPrec by the roots of a cubic mode
//	equation) and standardizing it with a Laplace
//	approximation first. Quadrature-backed families require a
//	*QuadConfig annotation at construction.
//
// ⚙️ Managers
//
//	A Manager serves per-index potential views over flat parameter
//	slabs (each parameter shared across the block or individual per
//	potential). Views reuse one scratch object: a view is valid only
//	until the next GetPot call on the same manager, and managers are
//	not safe for concurrent use.
//
// Numerical failure inside a moment computation is reported through
// the ok=false return, never as an error or panic: the EP driver
// treats it as a status and skips the update.
package potential
