package orthtree

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var sketchColors = []*color.Color{
	color.New(color.FgCyan, color.Bold),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgMagenta),
	color.New(color.FgBlue),
	color.New(color.FgRed),
}

// Sketch prints an indented console outline of the tree to w, nodes colored
// by depth, leaves in faint gray. Intended for eyeballing small trees during
// debugging; large trees produce a lot of output.
func (t *Tree[L, N]) Sketch(w io.Writer) {
	faint := color.New(color.Faint)
	for n := range t.nodes {
		rec := &t.nodes[n]
		c := sketchColors[rec.depth%len(sketchColors)]
		indent := spaces(2 * rec.depth)
		fmt.Fprintf(w, "%s%s\n", indent, c.Sprintf("▪ #%d  %v + %v  (%d leaves)",
			n, rec.origin, rec.extent, rec.leafCount))
		if rec.hasChildren {
			continue
		}
		for leaf := rec.leafIndex; leaf < rec.leafIndex+rec.leafCount; leaf++ {
			fmt.Fprintf(w, "%s  %s\n", indent, faint.Sprintf("· %v  %v",
				t.leaves[leaf].position, t.leaves[leaf].value))
		}
	}
}

func spaces(n int) string {
	const blanks = "                                                                "
	if n > len(blanks) {
		n = len(blanks)
	}
	return blanks[:n]
}
