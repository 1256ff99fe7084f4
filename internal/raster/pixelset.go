package raster

import (
	"image"

	"github.com/boljen/go-bitmap"
)

// PixelSet is a membership set over a square grid, backed by a bitmap so
// large regions don't cost a map entry per pixel.
type PixelSet struct {
	size  int
	bits  bitmap.Bitmap
	count int
}

// NewPixelSet returns an empty set over a size x size grid
func NewPixelSet(size int) *PixelSet {
	return &PixelSet{size: size, bits: bitmap.New(size * size)}
}

// Add p to the set, returning false if it was already present or off grid.
func (s *PixelSet) Add(p image.Point) bool {
	if !s.in(p) {
		return false
	}
	i := p.Y*s.size + p.X
	if s.bits.Get(i) {
		return false
	}
	s.bits.Set(i, true)
	s.count++
	return true
}

// Has returns if p is in the set
func (s *PixelSet) Has(p image.Point) bool {
	if !s.in(p) {
		return false
	}
	return s.bits.Get(p.Y*s.size + p.X)
}

// Len returns the number of pixels in the set
func (s *PixelSet) Len() int {
	return s.count
}

// Points returns all set pixels in row-major order
func (s *PixelSet) Points() []image.Point {
	pts := make([]image.Point, 0, s.count)
	for y := 0; y < s.size; y++ {
		for x := 0; x < s.size; x++ {
			if s.bits.Get(y*s.size + x) {
				pts = append(pts, image.Pt(x, y))
			}
		}
	}
	return pts
}

func (s *PixelSet) in(p image.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < s.size && p.Y < s.size
}
