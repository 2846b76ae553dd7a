package orthtree

import (
	"errors"
	"math"
	"testing"

	"github.com/gladekit/orthtree/vec"
)

// assertSameShape compares two trees structurally through the public API:
// node-for-node in pre-order with regions, children, and leaf ranges, and
// leaf-for-leaf with positions and payloads.
func assertSameShape(t *testing.T, got, want *Tree[int, string]) {
	t.Helper()
	if got.NumNodes() != want.NumNodes() {
		t.Fatalf("node count: got=%d want=%d", got.NumNodes(), want.NumNodes())
	}
	if got.NumLeaves() != want.NumLeaves() {
		t.Fatalf("leaf count: got=%d want=%d", got.NumLeaves(), want.NumLeaves())
	}
	for n := range got.Nodes() {
		if !got.Origin(n).Equal(want.Origin(n)) || !got.Extent(n).Equal(want.Extent(n)) {
			t.Fatalf("node %d region: got=%v + %v want=%v + %v", n,
				got.Origin(n), got.Extent(n), want.Origin(n), want.Extent(n))
		}
		if got.Depth(n) != want.Depth(n) {
			t.Fatalf("node %d depth: got=%d want=%d", n, got.Depth(n), want.Depth(n))
		}
		if got.HasChildren(n) != want.HasChildren(n) {
			t.Fatalf("node %d children: got=%v want=%v", n, got.HasChildren(n), want.HasChildren(n))
		}
		gb, ge := got.LeafRange(n)
		wb, we := want.LeafRange(n)
		if gb != wb || ge != we {
			t.Fatalf("node %d leaf range: got=[%d, %d) want=[%d, %d)", n, gb, ge, wb, we)
		}
	}
	for leaf := range got.Leaves() {
		if !got.LeafPosition(leaf).Equal(want.LeafPosition(leaf)) {
			t.Fatalf("leaf %d position: got=%v want=%v", leaf,
				got.LeafPosition(leaf), want.LeafPosition(leaf))
		}
		if got.LeafValue(leaf) != want.LeafValue(leaf) {
			t.Fatalf("leaf %d value: got=%d want=%d", leaf,
				got.LeafValue(leaf), want.LeafValue(leaf))
		}
	}
}

func eagerReference(t *testing.T, positions []vec.Vector, cfg Config) *Tree[int, string] {
	t.Helper()
	tree := newOctree(t, cfg)
	for i, p := range positions {
		tree.Insert(i, p)
	}
	return tree
}

func TestDeferredInsertsStayInRootUntilAdjust(t *testing.T) {
	tree := newOctree(t, Config{Deferred: true})
	for i, p := range octantPoints {
		n, leaf := tree.Insert(i, p)
		if n != tree.Root() || leaf == NoLeaf {
			t.Fatalf("deferred insert %v: got node=%d leaf=%d", p, n, leaf)
		}
	}
	if tree.NumNodes() != 1 {
		t.Fatalf("deferred inserts split the tree: %d nodes", tree.NumNodes())
	}
	// The overfull root is exactly what Check is meant to flag.
	if err := tree.Check(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected a capacity violation before Adjust, got %v", err)
	}
	if !tree.Adjust() {
		t.Fatalf("Adjust reported no change")
	}
	mustCheck(t, tree)
	if tree.NumNodes() != 9 {
		t.Fatalf("node count after Adjust: got=%d want=9", tree.NumNodes())
	}
	if tree.Adjust() {
		t.Fatalf("second Adjust reported a change on an adjusted tree")
	}
}

func TestDeferredMatchesEagerShape(t *testing.T) {
	points := append([]vec.Vector{}, octantPoints...)
	points = append(points, vec.New(13, 13, 13), vec.New(13.5, 13.5, 13.5), vec.New(4, 8, 15))
	eager := eagerReference(t, points, Config{MaxDepth: 6})

	deferred := newOctree(t, Config{MaxDepth: 6, Deferred: true})
	for i, p := range points {
		deferred.Insert(i, p)
	}
	deferred.Adjust()
	assertSameShape(t, deferred, eager)
}

func TestAdjustAfterDeferredErase(t *testing.T) {
	tree := eagerReference(t, octantPoints, Config{})
	tree.SetAutoAdjust(false)
	for tree.NumLeaves() > 1 {
		tree.Erase(0)
	}
	// Children are now redundant but still present.
	if !tree.HasChildren(tree.Root()) {
		t.Fatalf("deferred erase merged the tree")
	}
	if err := tree.Check(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected an under-capacity violation before Adjust, got %v", err)
	}
	if !tree.Adjust() {
		t.Fatalf("Adjust reported no change")
	}
	if tree.NumNodes() != 1 {
		t.Fatalf("node count after Adjust: got=%d want=1", tree.NumNodes())
	}
	mustCheck(t, tree)
}

func TestAdjustNodeRestrictsToSubtree(t *testing.T) {
	tree := eagerReference(t, octantPoints, Config{Capacity: 1})
	tree.SetAutoAdjust(false)
	// Overfill the low corner child only.
	tree.Insert(8, vec.New(1, 1, 1))
	tree.Insert(9, vec.New(7, 7, 7))
	low := tree.Child(tree.Root(), 0)
	if !tree.AdjustNode(low) {
		t.Fatalf("AdjustNode reported no change")
	}
	tree.SetAutoAdjust(true)
	mustCheck(t, tree)
	if tree.NumLeaves() != 10 {
		t.Fatalf("leaf count: got=%d want=10", tree.NumLeaves())
	}
}

func TestAdjustPreservesNodeValues(t *testing.T) {
	tree := eagerReference(t, octantPoints, Config{})
	root := tree.Root()
	tree.SetNodeValue(root, "root")
	tree.SetNodeValue(tree.Child(root, 3), "child three")
	tree.SetAutoAdjust(false)
	tree.Insert(8, vec.New(1, 1, 1)) // splits child 0 on adjust
	tree.Adjust()
	mustCheck(t, tree)
	if tree.NodeValue(root) != "root" {
		t.Fatalf("root value: got=%q", tree.NodeValue(root))
	}
	if tree.NodeValue(tree.Child(root, 3)) != "child three" {
		t.Fatalf("surviving child value: got=%q", tree.NodeValue(tree.Child(root, 3)))
	}
}

func TestNewFromSlices(t *testing.T) {
	values := make([]int, len(octantPoints))
	for i := range values {
		values[i] = i
	}
	tree, err := NewFromSlices[int, string](cubeOrigin, cubeExtent, values, octantPoints, Config{})
	if err != nil {
		t.Fatalf("NewFromSlices failed: %v", err)
	}
	mustCheck(t, tree)
	assertSameShape(t, tree, eagerReference(t, octantPoints, Config{}))
}

func TestNewFromSlicesSkipsOutOfRegionPairs(t *testing.T) {
	positions := []vec.Vector{
		vec.New(4, 4, 4),
		vec.New(1000, 0, 0),
		vec.New(12, 12, 12),
		vec.New(8, math.NaN(), 8),
	}
	tree, err := NewFromSlices[int, string](cubeOrigin, cubeExtent,
		[]int{0, 1, 2, 3}, positions, Config{})
	if err != nil {
		t.Fatalf("NewFromSlices failed: %v", err)
	}
	if tree.NumLeaves() != 2 {
		t.Fatalf("leaf count: got=%d want=2", tree.NumLeaves())
	}
	mustCheck(t, tree)
}

func TestNewFromSlicesRejectsMismatchedInput(t *testing.T) {
	_, err := NewFromSlices[int, string](cubeOrigin, cubeExtent,
		[]int{1, 2}, []vec.Vector{vec.New(4, 4, 4)}, Config{})
	if !errors.Is(err, ErrMismatchedSlices) {
		t.Fatalf("expected ErrMismatchedSlices, got %v", err)
	}
}

func TestInsertSliceMatchesSingleInserts(t *testing.T) {
	points := append([]vec.Vector{}, octantPoints...)
	points = append(points, vec.New(2, 2, 2), vec.New(14, 2, 2))
	values := make([]int, len(points))
	for i := range values {
		values[i] = i
	}
	tree := newOctree(t, Config{})
	if err := tree.InsertSlice(values, points); err != nil {
		t.Fatalf("InsertSlice failed: %v", err)
	}
	mustCheck(t, tree)
	assertSameShape(t, tree, eagerReference(t, points, Config{}))

	if err := tree.InsertSlice(values, points[:1]); !errors.Is(err, ErrMismatchedSlices) {
		t.Fatalf("expected ErrMismatchedSlices, got %v", err)
	}
}

func TestInsertRepeated(t *testing.T) {
	tree := newOctree(t, Config{MaxDepth: 2})
	tree.InsertRepeated(7, octantPoints)
	mustCheck(t, tree)
	if tree.NumLeaves() != len(octantPoints) {
		t.Fatalf("leaf count: got=%d want=%d", tree.NumLeaves(), len(octantPoints))
	}
	for leaf := range tree.Leaves() {
		if tree.LeafValue(leaf) != 7 {
			t.Fatalf("leaf %d value: got=%d want=7", leaf, tree.LeafValue(leaf))
		}
	}
}

func TestEraseRange(t *testing.T) {
	tree := eagerReference(t, octantPoints, Config{})
	tree.EraseRange(2, 6)
	mustCheck(t, tree)
	if tree.NumLeaves() != 4 {
		t.Fatalf("leaf count: got=%d want=4", tree.NumLeaves())
	}
	wantValues := map[int]bool{0: true, 1: true, 6: true, 7: true}
	for leaf := range tree.Leaves() {
		if !wantValues[tree.LeafValue(leaf)] {
			t.Fatalf("unexpected surviving value %d", tree.LeafValue(leaf))
		}
	}
	tree.EraseRange(1, 1) // empty range is a no-op
	if tree.NumLeaves() != 4 {
		t.Fatalf("empty EraseRange changed the tree")
	}
}

// leafPositionsByValue collects the tree's leaves keyed by their payload,
// which the tests keep unique.
func leafPositionsByValue(t *testing.T, tree *Tree[int, string]) map[int]vec.Vector {
	t.Helper()
	byValue := make(map[int]vec.Vector, tree.NumLeaves())
	for leaf := range tree.Leaves() {
		value := tree.LeafValue(leaf)
		if _, dup := byValue[value]; dup {
			t.Fatalf("value %d stored twice", value)
		}
		byValue[value] = tree.LeafPosition(leaf)
	}
	return byValue
}

func TestMoveSlice(t *testing.T) {
	tree := eagerReference(t, octantPoints, Config{})
	// Send the first four leaves into the opposite corners of their octants.
	targets := []vec.Vector{
		vec.New(13, 13, 13), vec.New(3, 13, 13), vec.New(13, 3, 13), vec.New(3, 3, 13),
	}
	if err := tree.MoveSlice(0, 4, targets); err != nil {
		t.Fatalf("MoveSlice failed: %v", err)
	}
	mustCheck(t, tree)
	if tree.NumLeaves() != 8 {
		t.Fatalf("leaf count changed: got=%d", tree.NumLeaves())
	}
	// Every leaf must sit at exactly its own target, not just any target.
	byValue := leafPositionsByValue(t, tree)
	for v, want := range targets {
		if !byValue[v].Equal(want) {
			t.Fatalf("value %d at %v, want its own target %v", v, byValue[v], want)
		}
	}
	for v := 4; v < 8; v++ {
		if !byValue[v].Equal(octantPoints[v]) {
			t.Fatalf("unmoved value %d drifted to %v", v, byValue[v])
		}
	}

	if err := tree.MoveSlice(0, 4, targets[:2]); !errors.Is(err, ErrMismatchedSlices) {
		t.Fatalf("expected ErrMismatchedSlices, got %v", err)
	}
}

func TestMoveSliceDestinationInsidePendingRange(t *testing.T) {
	tree := eagerReference(t, octantPoints, Config{})
	// Send every leaf to the diagonally opposite octant. The very first move
	// drops its leaf at the tail of the leaf array, inside the stretch the
	// remaining moves still have to work through; later moves toward
	// low-index octants rotate already-moved leaves back across it. Each
	// value must nevertheless end up at its own target.
	targets := make([]vec.Vector, len(octantPoints))
	for k := range octantPoints {
		opposite := octantPoints[len(octantPoints)-1-k]
		targets[k] = vec.New(opposite[0]+1, opposite[1]+1, opposite[2]+1)
	}
	if err := tree.MoveSlice(0, 8, targets); err != nil {
		t.Fatalf("MoveSlice failed: %v", err)
	}
	mustCheck(t, tree)
	byValue := leafPositionsByValue(t, tree)
	for v, want := range targets {
		if !byValue[v].Equal(want) {
			t.Fatalf("value %d at %v, want its own target %v", v, byValue[v], want)
		}
	}
	assertCanonicalShape(t, tree, Config{})
}

func TestMoveSliceSkipsInvalidTargets(t *testing.T) {
	tree := eagerReference(t, octantPoints, Config{})
	targets := []vec.Vector{
		vec.New(13, 13, 13),
		vec.New(1000, 0, 0), // rejected, leaf keeps its position
		vec.New(3, 13, 13),
	}
	if err := tree.MoveSlice(0, 3, targets); err != nil {
		t.Fatalf("MoveSlice failed: %v", err)
	}
	mustCheck(t, tree)
	byValue := leafPositionsByValue(t, tree)
	if !byValue[0].Equal(targets[0]) || !byValue[2].Equal(targets[2]) {
		t.Fatalf("valid targets not applied: value 0 at %v, value 2 at %v",
			byValue[0], byValue[2])
	}
	if !byValue[1].Equal(octantPoints[1]) {
		t.Fatalf("leaf with rejected target drifted to %v", byValue[1])
	}
}
