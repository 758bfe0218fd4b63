// Package ep drives Expectation Propagation over the factorized
// Gaussian backbone: one sequential update per potential, scheduled by
// the caller.
//
// 🚀 One update, seven phases
//
//	Cavity formation → projection onto s_j → tilted moment matching →
//	undamped proposal → selective damping → post-check → commit. The
//	phases up to the post-check only read persistent state, except the
//	max-producer probe of selective damping, which writes one link,
//	notifies the π tracker and then restores the link; the commit is
//	the sole lasting writer. Any non-Success status therefore leaves
//	links and marginals bit-identical to before the call. Trackers keep
//	their maxima, but a list the probe touched may come back shorter or
//	with another producer at its head, and the probe's Update calls
//	stay counted.
//
// ✨ Selective damping
//
//	With a topk tracker attached, a proposal that would shrink the
//	currently maximal π (or a, c) link of a variable is damped just
//	enough to keep the post-update margin π_i − max_j π_{j,i} ≥ ε; if
//	that requires a damping factor of 0.98 or more the update is
//	skipped outright (StatusCavCondSkipped).
//
// ⚙️ Orchestration and services
//
//	RunUpdates iterates the driver over a caller-supplied index list,
//	recording per-update status, delta and effective damping — failed
//	updates are recorded and skipped, never retried. ComputeMarginals,
//	ComputeTauMarginals, NewPiTracker, NewACTrackers and SingleUpdate
//	cover initialization and host-style one-shot services.
//
// Numerical failures are status codes; errors are reserved for caller
// bugs (sizes, ranges, thresholds, damping outside [0,1)).
package ep
