// Package lsystem grows street patterns inside a region by rewriting a small
// grammar & walking the result with a turtle.
package lsystem

import (
	"image"
	"math"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"
	"github.com/pkg/errors"

	"github.com/voidshard/citylayout/internal/line"
	"github.com/voidshard/citylayout/internal/raster"
)

const (
	// DefaultMaxIterations stops runaway expansion on huge regions.
	// Each iteration multiplies the string length by ~4
	DefaultMaxIterations = 6
)

var (
	// ErrEmptyRegion is returned when asked to draw into a region with no pixels
	ErrEmptyRegion = errors.New("region has no pixels")

	productions = map[rune]string{
		'A': "A+B++B-A--AA-B+",
		'B': "-A+BB++B+A--A-B",
	}
)

// Settings for one run of the grammar
type Settings struct {
	Axiom         string
	Angle         float64 // degrees turned by each + or -
	SegmentLength int     // pixels walked by each A or B
	RoadWidth     int     // chebyshev radius added around each stroke pixel
	MaxIterations int
}

// Iterations returns the smallest k for which the expanded string's path
// (axiomLen * 4^k * segmentLength) covers the region size, capped at limit.
func Iterations(axiomLen, segmentLength, regionSize, limit int) int {
	if axiomLen <= 0 || segmentLength <= 0 {
		return 0
	}
	if limit <= 0 {
		limit = DefaultMaxIterations
	}

	k := 0
	length := axiomLen * segmentLength
	for length < regionSize && k < limit {
		length *= 4
		k++
	}
	return k
}

// Expand rewrites axiom k times. Symbols with no production pass through.
func Expand(axiom string, k int) string {
	current := axiom
	for i := 0; i < k; i++ {
		var b strings.Builder
		for _, r := range current {
			if next, ok := productions[r]; ok {
				b.WriteString(next)
			} else {
				b.WriteRune(r)
			}
		}
		current = b.String()
	}
	return current
}

// Generate expands the grammar for the given region & walks it from start,
// returning every pixel (inside the region) that should become road.
// Regions too small to need any rewriting get no roads.
func Generate(region *raster.Region, size int, start image.Point, cfg Settings) ([]image.Point, error) {
	if region == nil || region.Len() == 0 {
		return nil, ErrEmptyRegion
	}
	region.Index(size)

	k := Iterations(len(cfg.Axiom), cfg.SegmentLength, region.Len(), cfg.MaxIterations)
	if k == 0 {
		return []image.Point{}, nil
	}

	program := Expand(cfg.Axiom, k)

	strokes := raster.NewPixelSet(size)
	t := &turtle{pos: r2.Point{X: float64(start.X), Y: float64(start.Y)}}
	turn := s1.Angle(cfg.Angle) * s1.Degree

	for _, r := range program {
		switch r {
		case 'A', 'B':
			from := t.pixel()
			t.forward(float64(cfg.SegmentLength))
			line.Walk(from, t.pixel(), func(p image.Point) {
				if region.Contains(p) {
					strokes.Add(p)
				}
			})
		case '+':
			t.heading += turn
		case '-':
			t.heading -= turn
		}
	}

	return widen(region, size, strokes, cfg.RoadWidth), nil
}

// widen adds all region pixels within `width` of a stroke pixel
func widen(region *raster.Region, size int, strokes *raster.PixelSet, width int) []image.Point {
	if width <= 0 {
		return strokes.Points()
	}

	out := raster.NewPixelSet(size)
	for _, p := range strokes.Points() {
		for dy := -width; dy <= width; dy++ {
			for dx := -width; dx <= width; dx++ {
				q := image.Pt(p.X+dx, p.Y+dy)
				if region.Contains(q) {
					out.Add(q)
				}
			}
		}
	}
	return out.Points()
}

type turtle struct {
	pos     r2.Point
	heading s1.Angle
}

func (t *turtle) forward(dist float64) {
	rad := t.heading.Radians()
	t.pos = t.pos.Add(r2.Point{X: math.Cos(rad), Y: math.Sin(rad)}.Mul(dist))
}

func (t *turtle) pixel() image.Point {
	return image.Pt(int(math.Round(t.pos.X)), int(math.Round(t.pos.Y)))
}
