// Package topk maintains, for every variable of a bipartite structure,
// the top-K largest link values together with their producers. The EP
// driver consults it for selective damping: Max(i) is the current
// max_j π_{j,i} (or a_{j,k}, c_{j,k}) in O(1), and Update keeps the
// lists consistent after each message write-back.
//
// Storage is three caller-owned flat arrays (numValid, topInd, topVal);
// each variable owns K+1 slots of topInd/topVal, the last being a dummy
// slot the insertion shift runs through. Lists are sorted descending
// and hold between 1 and K valid entries. When a removal empties a
// list, it is rebuilt from the source in one column scan (counted in
// the recompute statistic).
//
// A producer-subset filter restricts which producers are tracked; the
// subset must be sorted ascending (membership is a binary search) and
// must leave every variable at least one eligible producer — a list
// that recomputes to empty is a construction-time error.
package topk
