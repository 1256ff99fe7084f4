package raster

import (
	"image"
	"math"
)

// Region is one connected set of pixels sharing a label.
type Region struct {
	ID     int
	Label  int
	Pixels []image.Point

	set *PixelSet
}

// NewRegion returns an empty region
func NewRegion(id, label int) *Region {
	return &Region{ID: id, Label: label, Pixels: []image.Point{}}
}

// Add appends p to the region
func (r *Region) Add(p image.Point) {
	r.Pixels = append(r.Pixels, p)
	if r.set != nil {
		r.set.Add(p)
	}
}

// Len returns the pixel count
func (r *Region) Len() int {
	return len(r.Pixels)
}

// Bounds returns the smallest rectangle holding every pixel
func (r *Region) Bounds() image.Rectangle {
	if len(r.Pixels) == 0 {
		return image.Rectangle{}
	}
	b := image.Rectangle{Min: r.Pixels[0], Max: r.Pixels[0].Add(image.Pt(1, 1))}
	for _, p := range r.Pixels[1:] {
		b = b.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return b
}

// Index builds (once) a membership set over a grid of the given size so
// Contains is O(1).
func (r *Region) Index(size int) {
	if r.set != nil {
		return
	}
	r.set = NewPixelSet(size)
	for _, p := range r.Pixels {
		r.set.Add(p)
	}
}

// Contains returns if p is part of the region. Index must have been called.
func (r *Region) Contains(p image.Point) bool {
	if r.set == nil {
		for _, q := range r.Pixels {
			if q == p {
				return true
			}
		}
		return false
	}
	return r.set.Has(p)
}

// Centroid returns the region pixel closest to the mean of all pixels.
func (r *Region) Centroid() image.Point {
	if len(r.Pixels) == 0 {
		return image.Point{}
	}
	var sx, sy float64
	for _, p := range r.Pixels {
		sx += float64(p.X)
		sy += float64(p.Y)
	}
	mx, my := sx/float64(len(r.Pixels)), sy/float64(len(r.Pixels))

	best := r.Pixels[0]
	bestDist := math.Inf(1)
	for _, p := range r.Pixels {
		d := math.Hypot(float64(p.X)-mx, float64(p.Y)-my)
		if d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}
