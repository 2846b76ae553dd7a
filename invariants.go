package orthtree

import (
	"fmt"

	"github.com/gladekit/orthtree/vec"
)

// Check validates the complete representation of the tree: the pre-order
// layout of the node array, every relative offset, the contiguous grouping
// of the leaf array, the geometric region arithmetic, and the split/merge
// policy. It returns nil for a healthy tree and an error wrapping ErrCorrupt
// describing the first violation found.
//
// Check is an O(nodes + leaves * depth) debugging aid, intended for tests
// and for narrowing down misuse of the deferred-adjustment mode (a deferred
// tree legitimately fails the policy checks until Adjust is called).
func (t *Tree[L, N]) Check() error {
	if len(t.nodes) == 0 {
		return fmt.Errorf("%w: tree has no root node", ErrCorrupt)
	}
	root := &t.nodes[0]
	if root.hasParent {
		return fmt.Errorf("%w: root node has a parent", ErrCorrupt)
	}
	if root.depth != 0 {
		return fmt.Errorf("%w: root node at depth %d", ErrCorrupt, root.depth)
	}
	if root.leafIndex != 0 || root.leafCount != len(t.leaves) {
		return fmt.Errorf("%w: root leaf range [%d, %d) does not cover the %d leaves",
			ErrCorrupt, root.leafIndex, root.leafIndex+root.leafCount, len(t.leaves))
	}
	size, err := t.checkSubtree(0)
	if err != nil {
		return err
	}
	if size != len(t.nodes) {
		return fmt.Errorf("%w: %d nodes beyond the root's subtree",
			ErrCorrupt, len(t.nodes)-size)
	}
	return nil
}

// checkSubtree validates the subtree of n and returns its size in nodes.
func (t *Tree[L, N]) checkSubtree(n int) (int, error) {
	rec := &t.nodes[n]
	if rec.leafIndex < 0 || rec.leafCount < 0 || rec.leafIndex+rec.leafCount > len(t.leaves) {
		return 0, fmt.Errorf("%w: node %d leaf range [%d, %d) out of bounds",
			ErrCorrupt, n, rec.leafIndex, rec.leafIndex+rec.leafCount)
	}
	for _, leaf := range t.leaves[rec.leafIndex : rec.leafIndex+rec.leafCount] {
		if !vec.Contains(rec.origin, rec.extent, leaf.position) {
			return 0, fmt.Errorf("%w: node %d holds leaf at %v outside its region %v + %v",
				ErrCorrupt, n, leaf.position, rec.origin, rec.extent)
		}
	}
	if rec.depth > t.maxDepth {
		return 0, fmt.Errorf("%w: node %d at depth %d exceeds the depth limit %d",
			ErrCorrupt, n, rec.depth, t.maxDepth)
	}

	if !rec.hasChildren {
		for k, off := range rec.childOffsets {
			if off != 1 {
				return 0, fmt.Errorf("%w: childless node %d has child offset [%d] = %d",
					ErrCorrupt, n, k, off)
			}
		}
		if rec.leafCount > t.capacity && rec.depth < t.maxDepth {
			return 0, fmt.Errorf("%w: childless node %d holds %d leaves over capacity %d",
				ErrCorrupt, n, rec.leafCount, t.capacity)
		}
		return 1, nil
	}

	if rec.depth >= t.maxDepth {
		return 0, fmt.Errorf("%w: node %d at the depth limit has children", ErrCorrupt, n)
	}
	if rec.leafCount <= t.capacity {
		return 0, fmt.Errorf("%w: node %d has children but only %d leaves under capacity %d",
			ErrCorrupt, n, rec.leafCount, t.capacity)
	}
	offset := 1
	leafCursor := rec.leafIndex
	for k := 0; k < t.degree; k++ {
		if rec.childOffsets[k] != offset {
			return 0, fmt.Errorf("%w: node %d child offset [%d] is %d, pre-order demands %d",
				ErrCorrupt, n, k, rec.childOffsets[k], offset)
		}
		child := n + offset
		if child >= len(t.nodes) {
			return 0, fmt.Errorf("%w: node %d child %d beyond the node array", ErrCorrupt, n, k)
		}
		crec := &t.nodes[child]
		if !crec.hasParent || crec.parentOffset != -offset {
			return 0, fmt.Errorf("%w: node %d does not point back to its parent %d",
				ErrCorrupt, child, n)
		}
		if crec.siblingIndex != k {
			return 0, fmt.Errorf("%w: node %d has sibling index %d, expected %d",
				ErrCorrupt, child, crec.siblingIndex, k)
		}
		if crec.depth != rec.depth+1 {
			return 0, fmt.Errorf("%w: node %d at depth %d under parent at depth %d",
				ErrCorrupt, child, crec.depth, rec.depth)
		}
		origin, extent := vec.Orthant(rec.origin, rec.extent, k)
		if !origin.Equal(crec.origin) || !extent.Equal(crec.extent) {
			return 0, fmt.Errorf("%w: node %d region %v + %v is not orthant %d of its parent",
				ErrCorrupt, child, crec.origin, crec.extent, k)
		}
		if crec.leafIndex != leafCursor {
			return 0, fmt.Errorf("%w: node %d leaf range starts at %d, contiguity demands %d",
				ErrCorrupt, child, crec.leafIndex, leafCursor)
		}
		size, err := t.checkSubtree(child)
		if err != nil {
			return 0, err
		}
		leafCursor += crec.leafCount
		offset += size
	}
	if rec.childOffsets[t.degree] != offset {
		return 0, fmt.Errorf("%w: node %d block sentinel is %d, subtree has %d nodes",
			ErrCorrupt, n, rec.childOffsets[t.degree], offset)
	}
	if leafCursor != rec.leafIndex+rec.leafCount {
		return 0, fmt.Errorf("%w: node %d children own %d leaves, node claims %d",
			ErrCorrupt, n, leafCursor-rec.leafIndex, rec.leafCount)
	}
	return offset, nil
}
