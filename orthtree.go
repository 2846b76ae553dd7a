package orthtree

import (
	"fmt"

	"github.com/gladekit/orthtree/vec"
)

// Tree is an orthtree over D-dimensional points, holding a payload of type
// L at every leaf and a payload of type N at every node.
//
// The tree is backed by two flat arrays; see the package documentation for
// the layout and the handle-invalidation contract. The bounding region is
// fixed at construction: points outside it are never stored, and mutations
// referring to such points are no-ops.
type Tree[L, N any] struct {
	nodes  []nodeRecord[N]
	leaves []leafRecord[L]

	dim    int // spatial dimension D
	degree int // children per split node, 2^D

	capacity   int // max leaves per childless node below maxDepth
	maxDepth   int
	autoAdjust bool
}

// New creates an empty orthtree covering the half-open region
// [origin[i], origin[i]+extent[i]) on every axis. The root node is the only
// node of a fresh tree.
func New[L, N any](origin, extent vec.Vector, cfg Config) (*Tree[L, N], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	dim := origin.Dim()
	if dim < 1 || dim > MaxDim {
		return nil, fmt.Errorf("%w: dimension %d outside [1, %d]", ErrInvalidRegion, dim, MaxDim)
	}
	if extent.Dim() != dim {
		return nil, fmt.Errorf("%w: origin is %d-dimensional, extent %d-dimensional",
			ErrInvalidRegion, dim, extent.Dim())
	}
	if !origin.Finite() || !extent.Finite() || !extent.Positive() {
		return nil, fmt.Errorf("%w: region %v + %v", ErrInvalidRegion, origin, extent)
	}
	t := &Tree[L, N]{
		dim:        dim,
		degree:     1 << dim,
		capacity:   cfg.Capacity,
		maxDepth:   cfg.MaxDepth,
		autoAdjust: !cfg.Deferred,
	}
	t.nodes = append(t.nodes, newNodeRecord[N](origin.Clone(), extent.Clone(), t.degree))
	return t, nil
}

// NewFromSlices creates an orthtree bulk-loaded from parallel slices of
// leaf values and positions. The result is structurally identical to
// inserting the pairs one at a time, but is built with a single rebalancing
// pass instead of eager per-insert splits. Pairs whose position is outside
// the region, or not ordered, are skipped, like the corresponding single
// inserts would be.
func NewFromSlices[L, N any](origin, extent vec.Vector, values []L, positions []vec.Vector, cfg Config) (*Tree[L, N], error) {
	if len(values) != len(positions) {
		return nil, fmt.Errorf("%w: %d values, %d positions",
			ErrMismatchedSlices, len(values), len(positions))
	}
	t, err := New[L, N](origin, extent, cfg)
	if err != nil {
		return nil, err
	}
	root := &t.nodes[0]
	for i, pos := range positions {
		if pos.Dim() != t.dim || !vec.Contains(root.origin, root.extent, pos) {
			continue
		}
		t.leaves = append(t.leaves, leafRecord[L]{position: pos.Clone(), value: values[i]})
		root.leafCount++
	}
	t.adjustSubtree(0)
	return t, nil
}

// Dim returns the spatial dimension D of the tree.
func (t *Tree[L, N]) Dim() int {
	return t.dim
}

// Capacity returns the number of leaves a childless node may hold before it
// is split.
func (t *Tree[L, N]) Capacity() int {
	return t.capacity
}

// MaxDepth returns the depth limit of the tree.
func (t *Tree[L, N]) MaxDepth() int {
	return t.maxDepth
}

// AutoAdjust reports whether the tree rebalances eagerly after every
// mutation.
func (t *Tree[L, N]) AutoAdjust() bool {
	return t.autoAdjust
}

// SetAutoAdjust switches eager rebalancing on or off. Switching it on does
// not rebalance retroactively; call Adjust for that.
func (t *Tree[L, N]) SetAutoAdjust(autoAdjust bool) {
	t.autoAdjust = autoAdjust
}

// Root returns the root node. The root exists for the lifetime of the tree
// and always has handle 0.
func (t *Tree[L, N]) Root() NodeHandle {
	return 0
}

// NumNodes returns the total number of nodes.
func (t *Tree[L, N]) NumNodes() int {
	return len(t.nodes)
}

// NumLeaves returns the total number of leaves.
func (t *Tree[L, N]) NumLeaves() int {
	return len(t.leaves)
}

// Reserve pre-allocates approximately the space needed for the given number
// of leaves. The node estimate has been measured empirically with uniformly
// distributed points at capacity 1, padded by a factor of two to cover most
// other distributions.
func (t *Tree[L, N]) Reserve(leafCount int) {
	nodeCount := (3.8*float64(leafCount) + 400) * float64(int(1)<<t.dim) / 8.0
	t.leaves = growCap(t.leaves, leafCount)
	t.nodes = growCap(t.nodes, int(2.0*nodeCount))
}

func growCap[E any](s []E, capacity int) []E {
	if cap(s) >= capacity {
		return s
	}
	grown := make([]E, len(s), capacity)
	copy(grown, s)
	return grown
}
