// Package raster holds the labelled square grid shared by every stage of a
// generation pass, along with a few helpers to move between grid pixels and
// world coordinates.
package raster

import (
	"image"
	"math"
)

const (
	// Border marks a pixel sitting between two differently labelled areas
	// (or a rasterised street).
	Border = -1

	// Outside marks a pixel outside of the boundary disk. Anything off the
	// grid reads as Outside too.
	Outside = -2
)

// Map is a square raster of side `size`. Each cell holds a district id (>= 0),
// Border or Outside.
type Map struct {
	size   int
	labels []int
}

// New returns a Map with every cell set to Outside.
func New(size int) *Map {
	labels := make([]int, size*size)
	for i := range labels {
		labels[i] = Outside
	}
	return &Map{size: size, labels: labels}
}

// Size is the length of one side of the grid
func (m *Map) Size() int {
	return m.size
}

// Bounds returns the grid as a rectangle
func (m *Map) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.size, m.size)
}

// In returns if x,y is on the grid
func (m *Map) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.size && y < m.size
}

// Index returns the flat index of x,y. The caller must check In first.
func (m *Map) Index(x, y int) int {
	return y*m.size + x
}

// At returns the label at x,y
func (m *Map) At(x, y int) int {
	if !m.In(x, y) {
		return Outside
	}
	return m.labels[m.Index(x, y)]
}

// Set the label at x,y. Off-grid writes are ignored.
func (m *Map) Set(x, y, label int) {
	if !m.In(x, y) {
		return
	}
	m.labels[m.Index(x, y)] = label
}

// IsBorder returns if x,y is a border pixel
func (m *Map) IsBorder(x, y int) bool {
	return m.At(x, y) == Border
}

// IsInterior returns if x,y belongs to some district (ie. not border / outside)
func (m *Map) IsInterior(x, y int) bool {
	return m.At(x, y) >= 0
}

// Clone returns a deep copy of the map
func (m *Map) Clone() *Map {
	labels := make([]int, len(m.labels))
	copy(labels, m.labels)
	return &Map{size: m.size, labels: labels}
}

// Count returns how many cells hold the given label
func (m *Map) Count(label int) int {
	n := 0
	for _, l := range m.labels {
		if l == label {
			n++
		}
	}
	return n
}

// Transform maps grid pixels onto the square enclosing a boundary disk.
// Pixel (0,0) covers the top left of the square (cx - r, cy - r).
type Transform struct {
	Size    int
	CenterX float64
	CenterY float64
	Radius  float64
}

// scale is the world width of one pixel
func (t Transform) scale() float64 {
	return 2 * t.Radius / float64(t.Size)
}

// World returns the world coordinate of the centre of pixel x,y
func (t Transform) World(x, y int) (float64, float64) {
	s := t.scale()
	return t.CenterX - t.Radius + (float64(x)+0.5)*s, t.CenterY - t.Radius + (float64(y)+0.5)*s
}

// Pixel returns the pixel holding world coordinate wx,wy
func (t Transform) Pixel(wx, wy float64) image.Point {
	s := t.scale()
	return image.Pt(
		int(math.Floor((wx-(t.CenterX-t.Radius))/s)),
		int(math.Floor((wy-(t.CenterY-t.Radius))/s)),
	)
}

// InDisk returns if the centre of pixel x,y lies within the boundary disk
func (t Transform) InDisk(x, y int) bool {
	wx, wy := t.World(x, y)
	return math.Hypot(wx-t.CenterX, wy-t.CenterY) <= t.Radius
}
