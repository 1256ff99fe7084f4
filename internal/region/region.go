// Package region finds connected areas of a single label in a raster.Map.
package region

import (
	"image"

	"github.com/voidshard/citylayout/internal/raster"
)

// Extract returns every 4-connected component of equally labelled interior
// pixels. Any pixel within `inset` pixels (chessboard distance) of a border
// or outside pixel is dropped first, which keeps later strokes / lots away
// from partition edges. An inset of 0 keeps every interior pixel.
//
// Regions are numbered in the row-major order their first pixel is found.
func Extract(m *raster.Map, inset int) []*raster.Region {
	size := m.Size()
	dist := edgeDistance(m)

	seen := raster.NewPixelSet(size)
	regions := []*raster.Region{}
	stack := []image.Point{}

	usable := func(p image.Point) bool {
		return m.IsInterior(p.X, p.Y) && dist[m.Index(p.X, p.Y)] > inset && !seen.Has(p)
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			start := image.Pt(x, y)
			if !usable(start) {
				continue
			}

			label := m.At(x, y)
			r := raster.NewRegion(len(regions), label)
			seen.Add(start)
			stack = append(stack[:0], start)

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				r.Add(p)

				for _, d := range raster.Neighbours4 {
					n := p.Add(d)
					if !m.In(n.X, n.Y) || !usable(n) || m.At(n.X, n.Y) != label {
						continue
					}
					seen.Add(n)
					stack = append(stack, n)
				}
			}

			regions = append(regions, r)
		}
	}

	return regions
}

// edgeDistance returns, per pixel, the chessboard distance to the nearest
// border / outside pixel (off grid counts as outside). It's a standard two
// pass distance transform so costs O(size^2) regardless of inset.
func edgeDistance(m *raster.Map) []int {
	size := m.Size()
	far := 2*size + 2
	dist := make([]int, size*size)

	get := func(x, y int) int {
		if !m.In(x, y) {
			return 0
		}
		return dist[m.Index(x, y)]
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := m.Index(x, y)
			if !m.IsInterior(x, y) {
				dist[i] = 0
				continue
			}
			d := far
			for _, n := range [][2]int{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}} {
				d = minint(d, get(x+n[0], y+n[1])+1)
			}
			dist[i] = d
		}
	}

	for y := size - 1; y >= 0; y-- {
		for x := size - 1; x >= 0; x-- {
			i := m.Index(x, y)
			if dist[i] == 0 {
				continue
			}
			d := dist[i]
			for _, n := range [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}} {
				d = minint(d, get(x+n[0], y+n[1])+1)
			}
			dist[i] = d
		}
	}

	return dist
}

func minint(a, b int) int {
	if a < b {
		return a
	}
	return b
}
