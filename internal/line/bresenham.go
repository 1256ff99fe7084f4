package line

import (
	"image"
)

// Plotter receives each point along a rasterised line, in order from the
// start of the line to the end.
type Plotter func(p image.Point)

// Walk rasterises the line a->b with integer bresenham, calling plot for each
// pixel starting at a and finishing at b (both inclusive).
// Unlike the usual sort-by-x trick we keep the direction of travel since
// callers (the turtle in lsystem) care where a stroke starts.
func Walk(a, b image.Point, plot Plotter) {
	dx := absint(b.X - a.X)
	dy := -absint(b.Y - a.Y)

	sx := 1
	if a.X > b.X {
		sx = -1
	}
	sy := 1
	if a.Y > b.Y {
		sy = -1
	}

	err := dx + dy
	x, y := a.X, a.Y
	for {
		plot(image.Pt(x, y))
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func absint(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
