// Package sample throws darts at a disk to produce a well spread set of
// candidate points (poisson-disk / blue-noise style).
package sample

import (
	"math"
	"math/rand"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"
)

// Disk is the circular area we sample within.
type Disk struct {
	Center model2d.Coord
	Radius float64
}

// Contains returns if p is strictly inside the disk
func (d Disk) Contains(p model2d.Coord) bool {
	return p.Dist(d.Center) < d.Radius
}

// Area of the disk
func (d Disk) Area() float64 {
	return math.Pi * d.Radius * d.Radius
}

// Sample returns points inside the disk that are at least minSep apart.
// attempts is how many darts we throw around an active point before giving
// up on it.
func Sample(rng *rand.Rand, disk Disk, minSep float64, attempts int) []model2d.Coord {
	return newSampler(rng, disk, minSep, attempts).run(-1)
}

// SampleN is like Sample but derives its own separation from the disk area
// and the number of points wanted, and stops once it has `target` points.
//
// If the darts fall short the separation is shrunk and the disk sampled
// again, so asking for a sensible number of points gets exactly that many.
func SampleN(rng *rand.Rand, disk Disk, target, attempts int) []model2d.Coord {
	pts, _ := sampleN(rng, disk, target, attempts)
	return pts
}

// Separation is the packing distance SampleN starts from. A dart thrower
// fills roughly 0.7 * area / sep^2 points, so this aims slightly over target.
func Separation(disk Disk, target int) float64 {
	return 0.8 * math.Sqrt(disk.Area()/float64(target))
}

const (
	// shrink is applied to the separation each time a pass falls short
	shrink = 0.8

	// maxPasses before SampleN settles for whatever it has
	maxPasses = 24
)

// sampleN returns the points & the separation they were sampled with
func sampleN(rng *rand.Rand, disk Disk, target, attempts int) ([]model2d.Coord, float64) {
	if target <= 0 {
		return []model2d.Coord{}, 0
	}

	sep := Separation(disk, target)
	best := []model2d.Coord{}
	bestSep := sep
	for pass := 0; pass < maxPasses; pass++ {
		pts := newSampler(rng, disk, sep, attempts).run(target)
		if len(pts) > len(best) {
			best, bestSep = pts, sep
		}
		if len(best) >= target {
			break
		}
		sep *= shrink
	}
	return best, bestSep
}

// sampler holds the acceleration grid.
// Each grid cell is minSep/sqrt(2) wide so it can hold at most one point.
type sampler struct {
	rng      *rand.Rand
	disk     Disk
	minSep   float64
	attempts int

	cell   float64
	width  int
	origin model2d.Coord
	grid   []int // index into points, -1 if empty
	points []model2d.Coord
}

func newSampler(rng *rand.Rand, disk Disk, minSep float64, attempts int) *sampler {
	if attempts < 1 {
		attempts = 1
	}
	cell := minSep / math.Sqrt2
	width := int(math.Ceil(2*disk.Radius/cell)) + 1
	grid := make([]int, width*width)
	for i := range grid {
		grid[i] = -1
	}
	return &sampler{
		rng:      rng,
		disk:     disk,
		minSep:   minSep,
		attempts: attempts,
		cell:     cell,
		width:    width,
		origin:   model2d.Coord{X: disk.Center.X - disk.Radius, Y: disk.Center.Y - disk.Radius},
		grid:     grid,
		points:   []model2d.Coord{},
	}
}

// run samples until the active list is empty, or we hit limit (if > 0)
func (s *sampler) run(limit int) []model2d.Coord {
	if s.minSep <= 0 || s.disk.Radius <= 0 {
		return s.points
	}

	active := []model2d.Coord{s.disk.Center}
	s.accept(s.disk.Center)

	for len(active) > 0 {
		if limit > 0 && len(s.points) >= limit {
			break
		}

		i := s.rng.Intn(len(active))
		from := active[i]

		found := false
		for a := 0; a < s.attempts; a++ {
			angle := s.rng.Float64() * 2 * math.Pi
			dist := s.minSep * (1 + s.rng.Float64()) // [minSep, 2*minSep)
			candidate := model2d.Coord{
				X: from.X + math.Cos(angle)*dist,
				Y: from.Y + math.Sin(angle)*dist,
			}
			if !s.fits(candidate) {
				continue
			}
			s.accept(candidate)
			active = append(active, candidate)
			found = true
			break
		}

		if !found {
			essentials.UnorderedDelete(&active, i)
		}
	}

	return s.points
}

// cellOf returns the grid cell for p
func (s *sampler) cellOf(p model2d.Coord) (int, int) {
	return int((p.X - s.origin.X) / s.cell), int((p.Y - s.origin.Y) / s.cell)
}

// fits returns if p is inside the disk & has no accepted point too close
// within the 5x5 block of grid cells around it
func (s *sampler) fits(p model2d.Coord) bool {
	if !s.disk.Contains(p) {
		return false
	}
	cx, cy := s.cellOf(p)
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			x, y := cx+dx, cy+dy
			if x < 0 || y < 0 || x >= s.width || y >= s.width {
				continue
			}
			idx := s.grid[y*s.width+x]
			if idx < 0 {
				continue
			}
			if s.points[idx].Dist(p) < s.minSep {
				return false
			}
		}
	}
	return true
}

func (s *sampler) accept(p model2d.Coord) {
	cx, cy := s.cellOf(p)
	s.grid[cy*s.width+cx] = len(s.points)
	s.points = append(s.points, p)
}
