// Package factor owns the sparse state of factorized-backbone EP: the
// coupling factor B (pattern and values) and the Gaussian message
// parameters (β, π) living on its nonzeros, with an optional extension
// for Gamma messages (a, c) of bivariate precision potentials.
//
// 🚀 Layout
//
//	Everything is flat, caller-owned arrays; the representation only
//	indexes into them and never copies or reallocates. The row index
//	has two parts: offsets for each potential j followed by the
//	concatenated supports V_j. The column index likewise stores, per
//	variable i, the support W_i followed by a permutation J_i
//	mapping column entries back to global link ordinals. Row access
//	and column access are therefore O(1) slicing.
//
// ✨ Key operations
//   - AccessRow(j): aligned (V_j, B, β, π) slices, β/π writable
//   - AccessCol(i): (W_i, J_i) plus the flat value arrays
//   - CompMarginals: sum link parameters into variable marginals
//   - precision extension: k(j) assignment, J_k lists, (a, c) messages
//
// Construction validates structural consistency (offsets monotone and
// terminated, rows nonempty, column blocks even) and returns sentinel
// errors; it never panics on user input. Mutation during inference is
// confined to the message arrays through the accessors.
package factor
