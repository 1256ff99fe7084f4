package voronoi

import (
	"math"
	"math/rand"

	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/citylayout/internal/raster"
)

// Seed is a nearest-neighbour anchor. Every pixel nearest to Pos gets Label.
type Seed struct {
	Pos   model2d.Coord
	Label int
}

// Builder makes managing a set of seeds inside the boundary disk easier.
// We're interested in adding seeds with some structure (filters) to where
// they may land.
type Builder struct {
	tr    raster.Transform
	seeds []Seed
	rng   *rand.Rand
	sfilt []SiteFilter
	cfilt []CandidateFilter
}

// NewBuilder returns a new seed builder over the disk described by tr
func NewBuilder(tr raster.Transform, rng *rand.Rand) *Builder {
	return &Builder{
		tr:    tr,
		seeds: []Seed{},
		rng:   rng,
	}
}

// SiteCount returns how many seeds we've currently got configured
func (b *Builder) SiteCount() int {
	return len(b.seeds)
}

// Seeds returns all accepted seeds
func (b *Builder) Seeds() []Seed {
	return b.seeds
}

// SetCandidateFilters sets filters that accept / reject a proposed seed without
// reference to other currently set seed(s).
func (b *Builder) SetCandidateFilters(f ...CandidateFilter) {
	b.cfilt = f
}

// SetSiteFilters sets filters that compare proposed seeds to all current seeds.
func (b *Builder) SetSiteFilters(f ...SiteFilter) {
	b.sfilt = f
}

// RandomPoint returns a point drawn uniformly inside the disk
func (b *Builder) RandomPoint() model2d.Coord {
	r := b.tr.Radius * math.Sqrt(b.rng.Float64())
	theta := b.rng.Float64() * 2 * math.Pi
	return model2d.Coord{
		X: b.tr.CenterX + r*math.Cos(theta),
		Y: b.tr.CenterY + r*math.Sin(theta),
	}
}

// AddRandomSite places a seed at random, assuming it obeys all currently set
// filters. The label for the seed is decided by labelFor; a negative label
// rejects the point.
func (b *Builder) AddRandomSite(labelFor func(p model2d.Coord) int) (Seed, bool) {
	p := b.RandomPoint()
	return b.AddSite(p, labelFor(p))
}

// AddSite places a seed at the given location, assuming it obeys currently set filters.
func (b *Builder) AddSite(p model2d.Coord, label int) (Seed, bool) {
	if label < 0 || !b.accepted(p) {
		return Seed{}, false
	}
	s := Seed{Pos: p, Label: label}
	b.seeds = append(b.seeds, s)
	return s, true
}

// accepted returns if the proposed seed location is acceptable to our filters.
// We run CandidateFilter(s) first so we can hopefully reject candidates early.
func (b *Builder) accepted(p model2d.Coord) bool {
	for _, fn := range b.cfilt {
		if !fn(p) {
			return false
		}
	}
	for _, s := range b.seeds {
		for _, fn := range b.sfilt {
			if !fn(p, s.Pos) {
				return false
			}
		}
	}
	return true
}
