package quadtree

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/wordcloud/pkg/render"
)

// ToDOT returns a Graphviz DOT representation of the tree structure.
//
// Internal nodes are drawn as ellipses labelled with their quadrant and
// bounds; leaves are rounded boxes listing the reference points they hold.
// Empty leaves are drawn dashed so sparse regions stand out.
func (t *Tree) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph QuadTree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	ids := make(map[string]int)
	next := 0
	t.Walk(func(n Node) bool {
		id := next
		ids[n.Path] = id
		next++

		name := n.Quadrant.String()
		bounds := fmt.Sprintf("[%.0f,%.0f %.0fx%.0f]", n.Bounds.X, n.Bounds.Y, n.Bounds.Width, n.Bounds.Height)
		switch {
		case !n.Leaf:
			fmt.Fprintf(&buf, "  n%d [label=%q, shape=ellipse];\n", id, name+"\n"+bounds)
		case len(n.Boxes) == 0:
			fmt.Fprintf(&buf, "  n%d [label=%q, shape=box, style=\"rounded,dashed\"];\n", id, name)
		default:
			label := name + " " + bounds
			for _, b := range n.Boxes {
				label += fmt.Sprintf("\n(%.1f, %.1f)", b.X, b.Y)
			}
			fmt.Fprintf(&buf, "  n%d [label=%q, shape=box, style=\"filled,rounded\"];\n", id, label)
		}

		if n.Path != "" {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", ids[parentPath(n.Path)], id)
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

func parentPath(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return ""
}

// RenderSVG renders the tree structure as an SVG image via Graphviz.
//
// Errors are returned if Graphviz cannot initialize, the DOT is malformed, or
// rendering fails.
func (t *Tree) RenderSVG(ctx context.Context) ([]byte, error) {
	dot := t.ToDOT()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return render.NormalizeViewBox(buf.Bytes()), nil
}
