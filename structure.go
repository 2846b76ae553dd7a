package orthtree

import "github.com/gladekit/orthtree/vec"

// This file holds the structural mutator: creation and destruction of a
// node's 2^D children, and the offset repair that keeps the relative
// parent/child references of the whole tree consistent across splices of
// the node array.

// overCapacity reports whether node n holds more leaves than a childless
// node may, i.e. whether the split policy requires children. Nodes at the
// depth limit never split.
func (t *Tree[L, N]) overCapacity(n int) bool {
	rec := &t.nodes[n]
	return rec.leafCount > t.capacity && rec.depth < t.maxDepth
}

// mergeable reports whether node n's children have become redundant: all
// leaves of the subtree would fit into n directly.
func (t *Tree[L, N]) mergeable(n int) bool {
	rec := &t.nodes[n]
	return rec.hasChildren && rec.leafCount <= t.capacity
}

// createChildren splits node n: its 2^D children are spliced into the node
// array right after it and n's leaves are redistributed among them. Node
// and leaf indices after n are invalidated.
func (t *Tree[L, N]) createChildren(n int) {
	T().Debugf("orthtree: splitting node %d (%d leaves at depth %d)",
		n, t.nodes[n].leafCount, t.nodes[n].depth)
	t.allocChildren(n)
	t.updateNodeChildData(n, true)
	t.distributeLeafs(n)
}

// destroyChildren merges node n: its entire descendant block is removed
// from the node array. The subtree's leaves are already contiguous in n's
// range, so the leaf array is untouched and leaf handles stay valid.
func (t *Tree[L, N]) destroyChildren(n int) {
	T().Debugf("orthtree: merging node %d (%d descendants, %d leaves)",
		n, t.nodes[n].descendants(), t.nodes[n].leafCount)
	t.freeChildren(n)
	t.updateNodeChildData(n, false)
}

// allocChildren splices 2^D fresh childless node records into the array
// right after n. Each child covers one orthant of n's region and starts
// with an empty leaf range at the end of n's range, where distributeLeafs
// will grow it. The new records' own offsets are complete; n's childOffsets
// and the offsets of everything after the splice are repaired by
// updateNodeChildData.
func (t *Tree[L, N]) allocChildren(n int) {
	rec := t.nodes[n] // copied: the splice below moves records around
	assert(!rec.hasChildren, "orthtree: allocChildren on node with children")

	children := make([]nodeRecord[N], t.degree)
	for k := 0; k < t.degree; k++ {
		origin, extent := vec.Orthant(rec.origin, rec.extent, k)
		child := newNodeRecord[N](origin, extent, t.degree)
		child.depth = rec.depth + 1
		child.hasParent = true
		child.parentOffset = -(k + 1)
		child.siblingIndex = k
		child.leafIndex = rec.leafIndex + rec.leafCount
		children[k] = child
	}
	t.nodes = append(t.nodes, children...)
	copy(t.nodes[n+1+t.degree:], t.nodes[n+1:])
	copy(t.nodes[n+1:], children)
}

// freeChildren splices node n's whole descendant block out of the array.
func (t *Tree[L, N]) freeChildren(n int) {
	rec := &t.nodes[n]
	assert(rec.hasChildren, "orthtree: freeChildren on childless node")
	end := n + rec.childOffsets[t.degree]
	t.nodes = append(t.nodes[:n+1], t.nodes[end:]...)
}

// updateNodeChildData rewrites n's childOffsets after children were created
// or destroyed, propagates the descendant-block size change to all
// ancestors, and returns that signed change.
func (t *Tree[L, N]) updateNodeChildData(n int, created bool) int {
	rec := &t.nodes[n]
	oldEnd := rec.childOffsets[t.degree]
	if created {
		for k := 0; k <= t.degree; k++ {
			rec.childOffsets[k] = 1 + k
		}
	} else {
		for k := 0; k <= t.degree; k++ {
			rec.childOffsets[k] = 1
		}
	}
	rec.hasChildren = created
	delta := rec.childOffsets[t.degree] - oldEnd
	t.updateAncestorChildData(n, delta)
	return delta
}

// updateAncestorChildData repairs all relative offsets after the descendant
// block of node n changed size by delta (nodes were spliced in or out
// inside n's subtree region, with n itself staying put).
//
// At every ancestor level, the branches after n's branch have physically
// shifted by delta while the ancestor itself has not: the ancestor's
// offsets to them (and its block sentinel) change by delta, and each
// shifted branch root's parentOffset changes by -delta. Nodes deeper
// inside a shifted branch moved together with their parents, so their
// relative offsets are untouched. This is the payoff of relative
// addressing: a splice anywhere in the tree costs O(2^D * depth) repairs.
func (t *Tree[L, N]) updateAncestorChildData(n int, delta int) {
	if delta == 0 {
		return
	}
	child := n
	for t.nodes[child].hasParent {
		parent := child + t.nodes[child].parentOffset
		rec := &t.nodes[parent]
		for k := t.nodes[child].siblingIndex + 1; k <= t.degree; k++ {
			rec.childOffsets[k] += delta
			if k < t.degree {
				sibling := parent + rec.childOffsets[k]
				t.nodes[sibling].parentOffset -= delta
			}
		}
		child = parent
	}
}

// distributeLeafs moves every leaf of the just-split node n into the child
// whose orthant contains it. The undistributed leaves form a shrinking
// prefix of n's range; each move rotates one of them into its child's
// sub-range at the tail. Distribution is stable: leaves that end up in the
// same child keep their relative order.
func (t *Tree[L, N]) distributeLeafs(n int) {
	count := t.nodes[n].leafCount
	for i := 0; i < count; i++ {
		rec := &t.nodes[n]
		leaf := rec.leafIndex
		k := vec.OrthantIndex(rec.origin, rec.extent, t.leaves[leaf].position)
		t.moveLeafAt(n, n+rec.childOffsets[k], leaf)
	}
}
