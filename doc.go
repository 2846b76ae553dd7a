/*
Package orthtree implements a pointer-free spatial partitioning tree for
arbitrary-dimensional point data.

# Orthtrees

An orthtree generalizes the quadtree (2D) and octree (3D) to D orthogonal
axes: every internal node covers a hyper-rectangular region of space and has
exactly 2^D children, one per orthant of the region's midpoint. Point-value
pairs ("leaves") are stored at the deepest node whose region contains them.

Unlike the conventional representation, where nodes are heap records linked
by pointers, this implementation keeps the entire tree in two contiguous
arrays: nodes in depth-first pre-order, and leaves grouped by owning node.
All cross-references between nodes (parent, children) are signed offsets
relative to the referencing node's own array index, so that splicing a block
of nodes in or out of the array only requires repairing offsets in the nodes
bordering the splice, never a full rewrite. For workloads that iterate over
many leaves or nodes (n-body simulation steps, batched spatial queries) the
contiguous layout is worth the extra bookkeeping.

# Structure policy

A node without children holds at most Capacity leaves, unless its depth has
reached MaxDepth, in which case it may hold any number. A node acquires its
2^D children the moment it would exceed capacity, and loses them the moment
all of its descendants' leaves would fit into it directly. With the
AutoAdjust flag on (the default), this policy is enforced eagerly after
every mutation; with it off, mutations only edit the leaf array and a later
Adjust call restores the policy in a single linear pass over the affected
subtree. Bulk operations use the deferred mode internally.

# Handles

Nodes and leaves are addressed by integer handles (NodeHandle, LeafHandle)
which are plain indices into the backing arrays. Every mutating call
(Insert, Erase, Move, their batch variants, and Adjust) may shift array
elements and therefore invalidates all outstanding handles. Callers must
re-acquire handles after any mutation; the handles returned by the mutating
call itself are valid until the next one. This is a documented aliasing
contract, not an error the package can detect in general, although many
stale-handle uses will fail an internal assertion.

The tree is not safe for concurrent use. Even read-only operations may not
be interleaved with a writer, since structural edits rewrite offsets across
arbitrarily many ancestor nodes.
*/
package orthtree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
