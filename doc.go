// Package epfact is approximate Bayesian inference by Expectation
// Propagation over a factorized Gaussian backbone.
//
// 🚀 What is epfact?
//
//	A pure-Go library for EP in large sparse factor graphs: real
//	variables x_i (plus optional precision variables τ_k) coupled to
//	potentials t_j through scalar projections s_j = Σ_i B_{j,i} x_i of
//	a sparse coupling factor B. Messages are Gaussians on the links of
//	B (and Gammas on precision links); inference refines one message
//	per step by cavity computation, tilted-moment matching, damped
//	update and marginal write-back.
//
// ✨ Why choose epfact?
//
//   - Host-friendly state  — all arrays are flat and caller-owned
//   - Guarded updates      — selective damping keeps marginals positive
//   - Typed failures       — numerics are status codes, bugs are errors
//   - Extensible           — potentials register behind stable IDs/names
//
// Everything is organized under these subpackages:
//
//	factor/     — sparse representation of B, link messages, marginals
//	potential/  — site potentials, ID↔name registry, potential manager
//	topk/       — top-K maximum tracker driving selective damping
//	ep/         — the sequential update driver and orchestrator
//	quadrature/ — numerical integration engine for hard potentials
//	specfun/    — Φ, log Φ, log Γ and friends
//	optimize/   — guarded one-dimensional Newton root finder
//
// Start with ep.NewDriver and ep.RunUpdates; see the example in
// package ep for an end-to-end fit.
//
//	go get github.com/katalvlaran/epfact
package epfact
