package line

import (
	"image"
)

// PointsBetween returns all points on a line between a,b (inclusive)
func PointsBetween(a, b image.Point) []image.Point {
	pts := make([]image.Point, 0, maxint(absint(b.X-a.X), absint(b.Y-a.Y))+1)
	Walk(a, b, func(p image.Point) {
		pts = append(pts, p)
	})
	return pts
}

// Chebyshev returns the chessboard distance between a & b, which is also the
// number of steps bresenham takes between them.
func Chebyshev(a, b image.Point) int {
	return maxint(absint(b.X-a.X), absint(b.Y-a.Y))
}

func maxint(a, b int) int {
	if a > b {
		return a
	}
	return b
}
