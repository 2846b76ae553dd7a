package orthtree

import "github.com/gladekit/orthtree/vec"

// The rebalancer. The canonical structure of a subtree is fully determined
// by its leaf multiset together with capacity and depth limit, so instead
// of replaying deferred edits, adjustSubtree rebuilds the subtree from its
// leaves and splices the result over the old node block. Node payloads of
// nodes that exist in both the old and the new structure are carried over.

// adjustSubtree rebuilds the subtree of n into canonical form and reports
// whether the structure changed. Leaves are regrouped in place; their number
// is unchanged, so all bookkeeping outside the subtree stays valid except
// for the node-offset repair handled here.
func (t *Tree[L, N]) adjustSubtree(n int) bool {
	rec := &t.nodes[n]
	oldBlock := rec.childOffsets[t.degree]
	base := rec.leafIndex
	count := rec.leafCount

	b := subtreeBuilder[L, N]{
		t:        t,
		leafBase: base,
		leaves:   append([]leafRecord[L](nil), t.leaves[base:base+count]...),
		scratch:  make([]leafRecord[L], count),
	}
	b.nodes = make([]nodeRecord[N], 0, oldBlock)
	b.build(n, rec.origin, rec.extent, rec.depth, 0, count)

	newBlock := len(b.nodes)
	if newBlock == oldBlock && !b.differs(n) {
		return false
	}
	T().Debugf("orthtree: adjusted subtree of node %d, %d -> %d nodes",
		n, oldBlock, newBlock)

	// The new subtree root replaces n and inherits its place in the
	// surrounding structure.
	b.nodes[0].hasParent = rec.hasParent
	b.nodes[0].parentOffset = rec.parentOffset
	b.nodes[0].siblingIndex = rec.siblingIndex

	copy(t.leaves[base:base+count], b.leaves)
	spliced := make([]nodeRecord[N], 0, len(t.nodes)+newBlock-oldBlock)
	spliced = append(spliced, t.nodes[:n]...)
	spliced = append(spliced, b.nodes...)
	spliced = append(spliced, t.nodes[n+oldBlock:]...)
	t.nodes = spliced

	t.updateAncestorChildData(n, newBlock-oldBlock)
	return true
}

type subtreeBuilder[L, N any] struct {
	t        *Tree[L, N]
	nodes    []nodeRecord[N] // new subtree, pre-order
	leaves   []leafRecord[L] // working copy of the subtree's leaves
	scratch  []leafRecord[L]
	leafBase int // absolute index of leaves[0]
}

// build appends the canonical subtree over leaves[lo:hi] for the given
// region and returns its size in nodes. old is the pre-order index of the
// region's node in the current tree, or -1 if the current tree has no node
// for this region; payloads are copied from old counterparts.
func (b *subtreeBuilder[L, N]) build(old int, origin, extent vec.Vector, depth, lo, hi int) int {
	t := b.t
	self := len(b.nodes)
	rec := newNodeRecord[N](origin, extent, t.degree)
	rec.depth = depth
	rec.leafIndex = b.leafBase + lo
	rec.leafCount = hi - lo
	if old >= 0 {
		rec.value = t.nodes[old].value
	}
	b.nodes = append(b.nodes, rec)
	if hi-lo <= t.capacity || depth >= t.maxDepth {
		return 1
	}

	// Stable partition of leaves[lo:hi] into the 2^D orthant buckets, via
	// one counting pass and one scatter through scratch.
	counts := make([]int, t.degree)
	for _, leaf := range b.leaves[lo:hi] {
		counts[vec.OrthantIndex(origin, extent, leaf.position)]++
	}
	cursors := make([]int, t.degree)
	at := lo
	for k := 0; k < t.degree; k++ {
		cursors[k] = at
		at += counts[k]
	}
	copy(b.scratch[lo:hi], b.leaves[lo:hi])
	for _, leaf := range b.scratch[lo:hi] {
		k := vec.OrthantIndex(origin, extent, leaf.position)
		b.leaves[cursors[k]] = leaf
		cursors[k]++
	}

	b.nodes[self].hasChildren = true
	offset := 1
	childLo := lo
	for k := 0; k < t.degree; k++ {
		childHi := childLo + counts[k]
		oldChild := -1
		if old >= 0 && t.nodes[old].hasChildren {
			oldChild = old + t.nodes[old].childOffsets[k]
		}
		b.nodes[self].childOffsets[k] = offset
		childOrigin, childExtent := vec.Orthant(origin, extent, k)
		size := b.build(oldChild, childOrigin, childExtent, depth+1, childLo, childHi)
		child := &b.nodes[self+offset]
		child.hasParent = true
		child.parentOffset = -offset
		child.siblingIndex = k
		offset += size
		childLo = childHi
	}
	b.nodes[self].childOffsets[t.degree] = offset
	return offset
}

// differs compares the rebuilt subtree against the equally-sized old block
// at n. Matching shape implies matching leaf regrouping (the partition is
// stable), so comparing the per-node structure fields suffices.
func (b *subtreeBuilder[L, N]) differs(n int) bool {
	for i, rec := range b.nodes {
		old := &b.t.nodes[n+i]
		if rec.hasChildren != old.hasChildren ||
			rec.leafIndex != old.leafIndex ||
			rec.leafCount != old.leafCount {
			return true
		}
		for k, off := range rec.childOffsets {
			if off != old.childOffsets[k] {
				return true
			}
		}
	}
	return false
}
