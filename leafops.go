package orthtree

import "github.com/gladekit/orthtree/vec"

// This file holds the physical leaf-array edits. Each primitive keeps every
// node's leaf range contiguous and repairs the leafIndex/leafCount
// bookkeeping of exactly the nodes whose ranges are affected.

// addToAncestors adds delta to the leaf count of n and of every ancestor
// of n up to the root.
func (t *Tree[L, N]) addToAncestors(n int, delta int) {
	for {
		t.nodes[n].leafCount += delta
		if !t.nodes[n].hasParent {
			return
		}
		n += t.nodes[n].parentOffset
	}
}

// insertLeafAt appends one leaf at the end of node n's range. n must be
// childless. Returns the new leaf's index.
//
// Nodes after n in pre-order own ranges past the insertion point, so their
// leafIndex moves up by one; ancestors of n (including n) gain one leaf.
func (t *Tree[L, N]) insertLeafAt(n int, value L, position vec.Vector) int {
	rec := &t.nodes[n]
	assert(!rec.hasChildren, "orthtree: leaf insert into node with children")
	at := rec.leafIndex + rec.leafCount
	var zero leafRecord[L]
	t.leaves = append(t.leaves, zero)
	copy(t.leaves[at+1:], t.leaves[at:])
	t.leaves[at] = leafRecord[L]{position: position.Clone(), value: value}
	for i := n + 1; i < len(t.nodes); i++ {
		t.nodes[i].leafIndex++
	}
	t.addToAncestors(n, +1)
	return at
}

// eraseLeafAt removes one leaf from node n's range. n must be childless and
// must own the leaf.
func (t *Tree[L, N]) eraseLeafAt(n int, leaf int) {
	rec := &t.nodes[n]
	assert(!rec.hasChildren, "orthtree: leaf erase from node with children")
	assert(leaf >= rec.leafIndex && leaf < rec.leafIndex+rec.leafCount,
		"orthtree: erased leaf not owned by node")
	t.leaves = append(t.leaves[:leaf], t.leaves[leaf+1:]...)
	for i := n + 1; i < len(t.nodes); i++ {
		t.nodes[i].leafIndex--
	}
	t.addToAncestors(n, -1)
}

// moveLeafAt relocates one leaf from src's range to the end of dst's range
// and returns its new index. src must own the leaf; dst must be childless
// (src may have children: during a split, leaves move out of the parent's
// undistributed prefix into its fresh children).
//
// The relocation is a block rotation of the leaves between the two spots,
// so every other node's range stays contiguous. Nodes strictly between src
// and dst in pre-order own ranges inside the rotated span and have their
// leafIndex shifted by one; dst's own range boundary shifts the same way.
// Leaf counts move along the two ancestor chains, destination first, so a
// shared ancestor never sees a transient underflow.
func (t *Tree[L, N]) moveLeafAt(src, dst int, leaf int) int {
	srcRec := &t.nodes[src]
	dstRec := &t.nodes[dst]
	assert(leaf >= srcRec.leafIndex && leaf < srcRec.leafIndex+srcRec.leafCount,
		"orthtree: moved leaf not owned by source node")
	assert(!dstRec.hasChildren, "orthtree: leaf move into node with children")

	at := dstRec.leafIndex + dstRec.leafCount
	moved := t.leaves[leaf]
	var to int
	if leaf < at {
		// Destination at or after the source in pre-order: rotate the span
		// (leaf, at) left by one and drop the moved leaf at the far end.
		copy(t.leaves[leaf:at-1], t.leaves[leaf+1:at])
		to = at - 1
		for i := src + 1; i <= dst; i++ {
			t.nodes[i].leafIndex--
		}
	} else {
		// Destination before the source: rotate [at, leaf) right by one and
		// place the moved leaf at the front.
		copy(t.leaves[at+1:leaf+1], t.leaves[at:leaf])
		to = at
		for i := dst + 1; i <= src; i++ {
			t.nodes[i].leafIndex++
		}
	}
	t.leaves[to] = moved
	t.addToAncestors(dst, +1)
	t.addToAncestors(src, -1)
	return to
}
