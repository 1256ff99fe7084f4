package raster

import (
	"image"
)

var (
	// Neighbours4 are the orthogonal offsets
	Neighbours4 = []image.Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

	// Neighbours8 are all offsets around a pixel, orthogonal ones first so
	// that walkers prefer straight steps over diagonal ones.
	Neighbours8 = []image.Point{
		{0, -1}, {1, 0}, {0, 1}, {-1, 0},
		{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
	}
)

// Adjacent8 returns if a & b are distinct & touch (including diagonally)
func Adjacent8(a, b image.Point) bool {
	if a == b {
		return false
	}
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}
