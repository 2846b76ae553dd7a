package orthtree

import (
	"fmt"

	"github.com/gladekit/orthtree/vec"
)

// Insert adds a leaf with the given payload and position and returns the
// owning node and the new leaf. If the position lies outside the tree's
// region or is not ordered, nothing is inserted and (NoNode, NoLeaf) is
// returned.
//
// All previously obtained handles are invalidated.
func (t *Tree[L, N]) Insert(value L, position vec.Vector) (NodeHandle, LeafHandle) {
	return t.InsertNear(t.Root(), value, position)
}

// InsertNear is Insert with a search hint; see FindNear.
func (t *Tree[L, N]) InsertNear(hint NodeHandle, value L, position vec.Vector) (NodeHandle, LeafHandle) {
	n := t.FindNear(hint, position)
	if n == NoNode {
		return NoNode, NoLeaf
	}
	owner := int(n)
	leaf := t.insertLeafAt(owner, value, position)
	if t.autoAdjust {
		owner = t.splitToCapacity(owner, position)
		rec := &t.nodes[owner]
		// The new leaf was appended at the end of its node's range and
		// distribution is stable, so it stays last after every split.
		leaf = rec.leafIndex + rec.leafCount - 1
	}
	return NodeHandle(owner), LeafHandle(leaf)
}

// splitToCapacity re-establishes the split policy after node n gained a
// leaf at the given position: n is split while it is over capacity, and the
// walk follows the child that receives the position (the only child that
// can be over capacity in turn, when many leaves are coincident). Returns
// the final owner of the position.
func (t *Tree[L, N]) splitToCapacity(n int, position vec.Vector) int {
	for t.overCapacity(n) {
		t.createChildren(n)
		rec := &t.nodes[n]
		k := vec.OrthantIndex(rec.origin, rec.extent, position)
		n += rec.childOffsets[k]
	}
	return n
}

// mergeUp re-establishes the merge policy after node n lost a leaf: the
// ancestors of n are merged while their subtree's leaves fit under
// capacity. Returns the deepest surviving node of the chain.
func (t *Tree[L, N]) mergeUp(n int) int {
	for t.nodes[n].hasParent {
		parent := n + t.nodes[n].parentOffset
		if !t.mergeable(parent) {
			break
		}
		t.destroyChildren(parent)
		n = parent
	}
	return n
}

// Erase removes a leaf and returns the node it was removed from and the
// handle of the leaf after it (NoLeaf if the erased leaf was the last).
// The leaf handle must be live.
//
// All previously obtained handles are invalidated.
func (t *Tree[L, N]) Erase(leaf LeafHandle) (NodeHandle, LeafHandle) {
	return t.EraseNear(t.Root(), leaf)
}

// EraseNear is Erase with a search hint; see FindNear.
func (t *Tree[L, N]) EraseNear(hint NodeHandle, leaf LeafHandle) (NodeHandle, LeafHandle) {
	t.checkLeaf(leaf)
	n := int(t.FindLeafNear(hint, leaf))
	t.eraseLeafAt(n, int(leaf))
	if t.autoAdjust {
		n = t.mergeUp(n)
	}
	next := leaf
	if int(next) >= len(t.leaves) {
		next = NoLeaf
	}
	return NodeHandle(n), next
}

// Move changes the position of a leaf, relocating it to the node containing
// the new position. It returns the node the leaf was removed from, the node
// it now belongs to, and the leaf's new handle. If the new position lies
// outside the tree's region or is not ordered, nothing changes and
// (NoNode, NoNode, NoLeaf) is returned. The leaf handle must be live.
//
// All previously obtained handles are invalidated.
func (t *Tree[L, N]) Move(leaf LeafHandle, position vec.Vector) (NodeHandle, NodeHandle, LeafHandle) {
	return t.MoveNear(t.Root(), leaf, position)
}

// MoveNear is Move with a search hint; see FindNear.
func (t *Tree[L, N]) MoveNear(hint NodeHandle, leaf LeafHandle, position vec.Vector) (NodeHandle, NodeHandle, LeafHandle) {
	t.checkLeaf(leaf)
	src := int(t.FindLeafNear(hint, leaf))
	dst := t.FindNear(NodeHandle(src), position)
	if dst == NoNode {
		return NoNode, NoNode, NoLeaf
	}
	to := t.moveLeafAt(src, int(dst), int(leaf))
	t.leaves[to].position = position.Clone()
	if !t.autoAdjust {
		return NodeHandle(src), dst, LeafHandle(to)
	}

	// Eager mode: first split the destination down to capacity, then merge
	// up from the source. Destination splits splice nodes after dst, so the
	// source index moves when it lies beyond the splice; source merges can
	// swallow the destination when the two share a freshly-redundant
	// ancestor.
	d := int(dst)
	s := src
	for t.overCapacity(d) {
		t.createChildren(d)
		if s > d {
			s += t.degree
		}
		rec := &t.nodes[d]
		k := vec.OrthantIndex(rec.origin, rec.extent, position)
		d += rec.childOffsets[k]
	}
	rec := &t.nodes[d]
	to = rec.leafIndex + rec.leafCount - 1

	for t.nodes[s].hasParent {
		parent := s + t.nodes[s].parentOffset
		if !t.mergeable(parent) {
			break
		}
		blockEnd := parent + t.nodes[parent].childOffsets[t.degree]
		t.destroyChildren(parent)
		switch {
		case d > parent && d < blockEnd:
			d = parent
		case d >= blockEnd:
			d -= blockEnd - (parent + 1)
		}
		s = parent
	}
	return NodeHandle(s), NodeHandle(d), LeafHandle(to)
}

// InsertSlice bulk-inserts parallel slices of payloads and positions. The
// tree is rebalanced once at the end instead of after every insert;
// out-of-region pairs are skipped like single inserts. The result is
// structurally identical to inserting the pairs one at a time.
func (t *Tree[L, N]) InsertSlice(values []L, positions []vec.Vector) error {
	if len(values) != len(positions) {
		return fmt.Errorf("%w: %d values, %d positions",
			ErrMismatchedSlices, len(values), len(positions))
	}
	t.bulk(func() {
		hint := t.Root()
		for i := range values {
			if n, _ := t.InsertNear(hint, values[i], positions[i]); n != NoNode {
				hint = n
			}
		}
	})
	return nil
}

// InsertRepeated bulk-inserts one payload at many positions.
func (t *Tree[L, N]) InsertRepeated(value L, positions []vec.Vector) {
	t.bulk(func() {
		hint := t.Root()
		for _, position := range positions {
			if n, _ := t.InsertNear(hint, value, position); n != NoNode {
				hint = n
			}
		}
	})
}

// EraseRange bulk-erases the contiguous leaf range [begin, end), with a
// single rebalance at the end. The range must be live.
func (t *Tree[L, N]) EraseRange(begin, end LeafHandle) {
	assert(begin >= 0 && begin <= end && int(end) <= len(t.leaves),
		"orthtree: stale or invalid leaf range")
	count := int(end - begin)
	if count == 0 {
		return
	}
	t.bulk(func() {
		for i := 0; i < count; i++ {
			// Erasing shifts the remaining range down onto begin.
			t.Erase(begin)
		}
	})
}

// MoveSlice bulk-moves the contiguous leaf range [begin, end) to the given
// positions, with a single rebalance at the end. The range must be live;
// positions must have one entry per leaf in the range.
func (t *Tree[L, N]) MoveSlice(begin, end LeafHandle, positions []vec.Vector) error {
	assert(begin >= 0 && begin <= end && int(end) <= len(t.leaves),
		"orthtree: stale or invalid leaf range")
	count := int(end - begin)
	if len(positions) != count {
		return fmt.Errorf("%w: %d leaves, %d positions",
			ErrMismatchedSlices, count, len(positions))
	}
	t.bulk(func() {
		// Each move rotates its leaf to the end of the destination node's
		// range, which may lie anywhere in the leaf array, including among
		// the leaves still waiting to be moved. Track every pending leaf
		// explicitly and repair the indices caught in the rotated span:
		// moving a leaf from h to a later index `to` shifts (h, to] down by
		// one, moving it to an earlier index shifts [to, h) up by one.
		pending := make([]LeafHandle, count)
		for i := range pending {
			pending[i] = begin + LeafHandle(i)
		}
		for i := 0; i < count; i++ {
			h := pending[i]
			_, _, to := t.Move(h, positions[i])
			if to == NoLeaf {
				continue
			}
			for j := i + 1; j < count; j++ {
				switch p := pending[j]; {
				case p > h && p <= to:
					pending[j] = p - 1
				case p >= to && p < h:
					pending[j] = p + 1
				}
			}
		}
	})
	return nil
}

// bulk runs edit with eager adjustment suspended, then rebalances the whole
// tree in one pass. On a tree in deferred mode, edit runs as-is and the
// rebalance is left to the caller's explicit Adjust.
func (t *Tree[L, N]) bulk(edit func()) {
	if !t.autoAdjust {
		edit()
		return
	}
	t.autoAdjust = false
	edit()
	t.adjustSubtree(0)
	t.autoAdjust = true
}

// Adjust rebuilds the whole tree to match the split/merge policy and
// reports whether any structural change was made. On a tree that is kept
// adjusted eagerly this never changes anything.
//
// All previously obtained handles are invalidated when Adjust returns true.
func (t *Tree[L, N]) Adjust() bool {
	return t.AdjustNode(t.Root())
}

// AdjustNode is Adjust restricted to the subtree of n.
func (t *Tree[L, N]) AdjustNode(n NodeHandle) bool {
	t.checkNode(n)
	return t.adjustSubtree(int(n))
}
