package orthtree

import "iter"

// Iterators over nodes and leaves. All of them walk the backing arrays
// directly and must not be used across mutations of the tree (see the
// handle-invalidation contract in the package documentation).

// Nodes iterates over all nodes in pre-order.
func (t *Tree[L, N]) Nodes() iter.Seq[NodeHandle] {
	return func(yield func(NodeHandle) bool) {
		for n := range t.nodes {
			if !yield(NodeHandle(n)) {
				return
			}
		}
	}
}

// Leaves iterates over all leaves, grouped by owning node in pre-order.
func (t *Tree[L, N]) Leaves() iter.Seq[LeafHandle] {
	return func(yield func(LeafHandle) bool) {
		for leaf := range t.leaves {
			if !yield(LeafHandle(leaf)) {
				return
			}
		}
	}
}

// Children iterates over the children of n as (orthant index, node) pairs.
// A childless node yields nothing.
func (t *Tree[L, N]) Children(n NodeHandle) iter.Seq2[int, NodeHandle] {
	t.checkNode(n)
	return func(yield func(int, NodeHandle) bool) {
		rec := &t.nodes[n]
		if !rec.hasChildren {
			return
		}
		for k := 0; k < t.degree; k++ {
			if !yield(k, n+NodeHandle(rec.childOffsets[k])) {
				return
			}
		}
	}
}

// Descendants iterates over all descendants of n in pre-order, excluding n
// itself. The descendants are one contiguous run of the node array.
func (t *Tree[L, N]) Descendants(n NodeHandle) iter.Seq[NodeHandle] {
	t.checkNode(n)
	return func(yield func(NodeHandle) bool) {
		end := n + NodeHandle(t.nodes[n].childOffsets[t.degree])
		for d := n + 1; d < end; d++ {
			if !yield(d) {
				return
			}
		}
	}
}

// NodeLeaves iterates over the leaves of n's subtree, one contiguous run of
// the leaf array.
func (t *Tree[L, N]) NodeLeaves(n NodeHandle) iter.Seq[LeafHandle] {
	t.checkNode(n)
	return func(yield func(LeafHandle) bool) {
		rec := &t.nodes[n]
		end := LeafHandle(rec.leafIndex + rec.leafCount)
		for leaf := LeafHandle(rec.leafIndex); leaf < end; leaf++ {
			if !yield(leaf) {
				return
			}
		}
	}
}
