package voronoi

import (
	"github.com/unixpickle/model3d/model2d"
)

// CandidateFilter accepts or rejects a candidate point based purely on the
// point itself.
// These filters are run before SiteFilter(s) which naturally require
// us to iterate each seed.
type CandidateFilter func(p model2d.Coord) bool

// SiteFilter is a filter for a candidate point that is run against every
// current seed in the builder.
type SiteFilter func(candidate, seed model2d.Coord) bool

// MinDistance ensures that a candidate point is at least `dist`
// distance away from every other seed.
func MinDistance(dist float64) SiteFilter {
	return func(candidate, seed model2d.Coord) bool {
		return candidate.Dist(seed) >= dist
	}
}

// WithinDisk rejects candidates outside of radius r around centre
func WithinDisk(centre model2d.Coord, r float64) CandidateFilter {
	return func(p model2d.Coord) bool {
		return p.Dist(centre) <= r
	}
}
