package orthtree

import "github.com/gladekit/orthtree/vec"

// Contains reports whether the node's region contains the point. A point
// with a NaN component, or of the wrong dimension, is contained by no node.
func (t *Tree[L, N]) Contains(n NodeHandle, point vec.Vector) bool {
	t.checkNode(n)
	if point.Dim() != t.dim {
		return false
	}
	rec := &t.nodes[n]
	return vec.Contains(rec.origin, rec.extent, point)
}

// ContainsLeaf reports whether the leaf belongs to the node's subtree.
//
// Because a subtree's leaves occupy one contiguous range of the leaf array,
// this is a constant-time index check, not a geometric test.
func (t *Tree[L, N]) ContainsLeaf(n NodeHandle, leaf LeafHandle) bool {
	t.checkNode(n)
	t.checkLeaf(leaf)
	rec := &t.nodes[n]
	return int(leaf) >= rec.leafIndex && int(leaf) < rec.leafIndex+rec.leafCount
}

// ContainsNode reports whether node n lies in the subtree of ancestor.
// A node contains itself.
func (t *Tree[L, N]) ContainsNode(ancestor, n NodeHandle) bool {
	t.checkNode(ancestor)
	t.checkNode(n)
	for t.nodes[n].depth > t.nodes[ancestor].depth {
		n += NodeHandle(t.nodes[n].parentOffset)
	}
	return n == ancestor
}

// Find returns the deepest node whose region contains the point, or NoNode
// if the point lies outside the tree's region or is not ordered.
func (t *Tree[L, N]) Find(point vec.Vector) NodeHandle {
	return t.FindNear(t.Root(), point)
}

// FindNear is Find starting at a hint node instead of the root.
//
// The search first climbs from the hint to the nearest ancestor containing
// the point, then descends to the deepest containing node. For sequences of
// operations with spatial locality this costs O(displacement in the tree)
// rather than O(depth) from the root.
func (t *Tree[L, N]) FindNear(hint NodeHandle, point vec.Vector) NodeHandle {
	t.checkNode(hint)
	n := hint
	for !t.Contains(n, point) {
		rec := &t.nodes[n]
		if !rec.hasParent {
			return NoNode
		}
		n += NodeHandle(rec.parentOffset)
	}
	for t.nodes[n].hasChildren {
		n = t.FindChild(n, point)
	}
	return n
}

// FindLeaf returns the deepest node owning the leaf.
func (t *Tree[L, N]) FindLeaf(leaf LeafHandle) NodeHandle {
	return t.FindLeafNear(t.Root(), leaf)
}

// FindLeafNear is FindLeaf starting at a hint node. It walks like FindNear
// but substitutes the constant-time leaf-range check for the geometric
// containment test.
func (t *Tree[L, N]) FindLeafNear(hint NodeHandle, leaf LeafHandle) NodeHandle {
	t.checkNode(hint)
	t.checkLeaf(leaf)
	n := hint
	for !t.ContainsLeaf(n, leaf) {
		rec := &t.nodes[n]
		assert(rec.hasParent, "orthtree: leaf not owned by any node")
		n += NodeHandle(rec.parentOffset)
	}
	for t.nodes[n].hasChildren {
		n = t.FindChildLeaf(n, leaf)
	}
	return n
}

// FindChild returns the child of n whose orthant contains the point. The
// orthant is determined closed-form from the midpoint of every axis, so a
// child is found even for points outside the node's region (the orthant
// extends to infinity). The node must have children.
func (t *Tree[L, N]) FindChild(n NodeHandle, point vec.Vector) NodeHandle {
	t.checkNode(n)
	rec := &t.nodes[n]
	assert(rec.hasChildren, "orthtree: FindChild called on childless node")
	k := vec.OrthantIndex(rec.origin, rec.extent, point)
	return n + NodeHandle(rec.childOffsets[k])
}

// FindChildLeaf returns the child of n whose subtree owns the leaf. The
// node must have children and the leaf must lie in the node's range.
func (t *Tree[L, N]) FindChildLeaf(n NodeHandle, leaf LeafHandle) NodeHandle {
	t.checkNode(n)
	t.checkLeaf(leaf)
	rec := &t.nodes[n]
	assert(rec.hasChildren, "orthtree: FindChildLeaf called on childless node")
	for k := 0; k < t.degree; k++ {
		child := n + NodeHandle(rec.childOffsets[k])
		if t.ContainsLeaf(child, leaf) {
			return child
		}
	}
	assert(false, "orthtree: leaf not owned by any child")
	return NoNode
}
