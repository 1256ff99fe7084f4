package citylayout

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"math"

	"github.com/goccy/go-graphviz"
	"github.com/pkg/errors"
)

// BorderGraphDOT describes traced borders as an undirected graphviz graph.
// Junctions are nodes (named "x,y" & pinned at their pixel position),
// borders are edges labelled with their approximate length.
func BorderGraphDOT(borders []*Border) string {
	var buf bytes.Buffer
	buf.WriteString("graph borders {\n")
	buf.WriteString("  node [shape=point, width=0.05];\n")
	buf.WriteString("  edge [fontsize=8];\n")

	seen := map[image.Point]bool{}
	node := func(p image.Point) string {
		name := fmt.Sprintf("%d,%d", p.X, p.Y)
		if !seen[p] {
			seen[p] = true
			// y is flipped so the graph reads the same way up as the image
			fmt.Fprintf(&buf, "  %q [pos=\"%d,%d!\"];\n", name, p.X, -p.Y)
		}
		return name
	}

	for _, b := range borders {
		from, to := node(b.Start), node(b.End)
		fmt.Fprintf(&buf, "  %q -- %q [label=\"%.0f\"];\n", from, to, polylineLength(b))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// BorderGraphSVG renders borders (see BorderGraphDOT) to SVG.
func BorderGraphSVG(ctx context.Context, borders []*Border) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(BorderGraphDOT(borders)))
	if err != nil {
		return nil, errors.Wrap(err, "parse dot")
	}
	defer g.Close()

	gv.SetLayout(graphviz.NEATO)

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(err, "render")
	}
	return buf.Bytes(), nil
}

// polylineLength sums the straight line distances along a border
func polylineLength(b *Border) float64 {
	pts := b.Polyline()
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += math.Hypot(float64(pts[i].X-pts[i-1].X), float64(pts[i].Y-pts[i-1].Y))
	}
	return total
}
