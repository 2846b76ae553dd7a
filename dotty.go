package orthtree

import (
	"fmt"
	"io"
)

// Tree2Dot prints a graphviz dot representation of an orthtree to w.
// Nodes are drawn as records with their region and leaf tally; leaves hang
// off their owning node with position and payload. Useful for debugging.
func Tree2Dot[L, N any](t *Tree[L, N], w io.Writer) {
	write := func(format string, args ...interface{}) {
		if _, err := fmt.Fprintf(w, format, args...); err != nil {
			T().Errorf("orthtree: error writing dot output: %v", err)
		}
	}
	write("digraph orthtree {\n")
	write("  node [fontname=Helvetica fontsize=10];\n")
	for n := range t.nodes {
		rec := &t.nodes[n]
		write("  n%d [shape=record label=\"{#%d d%d|%v + %v|%d leaves}\"];\n",
			n, n, rec.depth, rec.origin, rec.extent, rec.leafCount)
		if rec.hasChildren {
			for k := 0; k < t.degree; k++ {
				write("  n%d -> n%d [label=\"%d\" fontsize=8];\n",
					n, n+rec.childOffsets[k], k)
			}
			continue
		}
		for leaf := rec.leafIndex; leaf < rec.leafIndex+rec.leafCount; leaf++ {
			write("  l%d [shape=ellipse style=filled fillcolor=lightgray label=\"%v\\n%v\"];\n",
				leaf, t.leaves[leaf].position, t.leaves[leaf].value)
			write("  n%d -> l%d [style=dotted arrowhead=none];\n", n, leaf)
		}
	}
	write("}\n")
}
