package orthtree

import "github.com/gladekit/orthtree/vec"

// NodeHandle addresses a node by its index in the node array. Handles are
// invalidated by every mutating tree operation.
type NodeHandle int

// LeafHandle addresses a leaf by its index in the leaf array. Handles are
// invalidated by every mutating tree operation.
type LeafHandle int

const (
	// NoNode is returned by searches that find no containing node and by
	// mutators that performed no mutation.
	NoNode NodeHandle = -1
	// NoLeaf is returned alongside NoNode by mutators that performed no
	// mutation, and by Erase when the erased leaf was the last one.
	NoLeaf LeafHandle = -1
)

// nodeRecord is one element of the node array.
//
// The node array is a depth-first pre-order traversal: a node's descendants
// occupy the contiguous block immediately following it. All node-to-node
// references are signed offsets relative to the record's own index, so that
// splicing a block of records elsewhere in the array leaves references
// inside the block intact.
type nodeRecord[N any] struct {
	// origin and extent describe the half-open region
	// [origin[i], origin[i]+extent[i]) covered by the node.
	origin vec.Vector
	extent vec.Vector

	// depth is the distance from the root (root = 0).
	depth int

	// parentOffset is the relative index of the parent; meaningless while
	// hasParent is false.
	parentOffset int
	hasParent    bool

	// childOffsets holds the relative indices of the 2^D children plus one
	// sentinel entry pointing just past the last child's subtree. The
	// sentinel doubles as the size of the whole descendant block. Without
	// children, all entries are 1 (empty block).
	childOffsets []int
	hasChildren  bool

	// siblingIndex is which of the parent's 2^D children this node is;
	// bit i is set iff the node covers the upper half of axis i.
	siblingIndex int

	// The node owns the contiguous leaf range
	// [leafIndex, leafIndex+leafCount). For a node with children the range
	// spans the whole subtree's leaves, grouped by child in child order.
	leafIndex int
	leafCount int

	value N
}

// leafRecord is one element of the leaf array.
type leafRecord[L any] struct {
	position vec.Vector
	value    L
}

// newNodeRecord creates a childless node record covering the given region.
func newNodeRecord[N any](origin, extent vec.Vector, degree int) nodeRecord[N] {
	offsets := make([]int, degree+1)
	for i := range offsets {
		offsets[i] = 1
	}
	return nodeRecord[N]{
		origin:       origin,
		extent:       extent,
		childOffsets: offsets,
	}
}

// descendants returns the size of the node's descendant block.
func (n *nodeRecord[N]) descendants() int {
	return n.childOffsets[len(n.childOffsets)-1] - 1
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

// checkNode asserts that n is a live node handle.
func (t *Tree[L, N]) checkNode(n NodeHandle) {
	assert(n >= 0 && int(n) < len(t.nodes), "orthtree: stale or invalid node handle")
}

// checkLeaf asserts that l is a live leaf handle.
func (t *Tree[L, N]) checkLeaf(l LeafHandle) {
	assert(l >= 0 && int(l) < len(t.leaves), "orthtree: stale or invalid leaf handle")
}

// Origin returns the "lower-left" corner of the node's region. The returned
// vector is a copy and may be retained.
func (t *Tree[L, N]) Origin(n NodeHandle) vec.Vector {
	t.checkNode(n)
	return t.nodes[n].origin.Clone()
}

// Extent returns the size of the node's region along every axis. The
// returned vector is a copy and may be retained.
func (t *Tree[L, N]) Extent(n NodeHandle) vec.Vector {
	t.checkNode(n)
	return t.nodes[n].extent.Clone()
}

// Depth returns the node's distance from the root.
func (t *Tree[L, N]) Depth(n NodeHandle) int {
	t.checkNode(n)
	return t.nodes[n].depth
}

// Parent returns the node's parent. The second result is false for the
// root, which has no parent.
func (t *Tree[L, N]) Parent(n NodeHandle) (NodeHandle, bool) {
	t.checkNode(n)
	rec := &t.nodes[n]
	if !rec.hasParent {
		return NoNode, false
	}
	return n + NodeHandle(rec.parentOffset), true
}

// HasChildren reports whether the node currently has its 2^D children.
func (t *Tree[L, N]) HasChildren(n NodeHandle) bool {
	t.checkNode(n)
	return t.nodes[n].hasChildren
}

// Child returns child k of the node, where bit i of k selects the upper
// half of axis i. The node must have children.
func (t *Tree[L, N]) Child(n NodeHandle, k int) NodeHandle {
	t.checkNode(n)
	rec := &t.nodes[n]
	assert(rec.hasChildren, "orthtree: Child called on childless node")
	assert(k >= 0 && k < t.degree, "orthtree: child index out of range")
	return n + NodeHandle(rec.childOffsets[k])
}

// SiblingIndex returns which of its parent's children the node is. The
// result is 0 for the root.
func (t *Tree[L, N]) SiblingIndex(n NodeHandle) int {
	t.checkNode(n)
	return t.nodes[n].siblingIndex
}

// NumNodeLeaves returns the number of leaves in the node's subtree.
func (t *Tree[L, N]) NumNodeLeaves(n NodeHandle) int {
	t.checkNode(n)
	return t.nodes[n].leafCount
}

// LeafRange returns the contiguous range [begin, end) of leaf handles owned
// by the node's subtree.
func (t *Tree[L, N]) LeafRange(n NodeHandle) (begin, end LeafHandle) {
	t.checkNode(n)
	rec := &t.nodes[n]
	return LeafHandle(rec.leafIndex), LeafHandle(rec.leafIndex + rec.leafCount)
}

// NodeValue returns the payload stored at the node.
func (t *Tree[L, N]) NodeValue(n NodeHandle) N {
	t.checkNode(n)
	return t.nodes[n].value
}

// SetNodeValue replaces the payload stored at the node.
func (t *Tree[L, N]) SetNodeValue(n NodeHandle, value N) {
	t.checkNode(n)
	t.nodes[n].value = value
}

// LeafPosition returns the position of a leaf. The returned vector is a
// copy and may be retained.
func (t *Tree[L, N]) LeafPosition(l LeafHandle) vec.Vector {
	t.checkLeaf(l)
	return t.leaves[l].position.Clone()
}

// LeafValue returns the payload stored at a leaf.
func (t *Tree[L, N]) LeafValue(l LeafHandle) L {
	t.checkLeaf(l)
	return t.leaves[l].value
}

// SetLeafValue replaces the payload stored at a leaf.
func (t *Tree[L, N]) SetLeafValue(l LeafHandle, value L) {
	t.checkLeaf(l)
	t.leaves[l].value = value
}
