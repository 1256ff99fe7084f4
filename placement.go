package citylayout

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
)

// distanceFloor is the smallest scaled distance (0-10 scale) used when
// dividing neighbour scores, so coincident points score high rather than
// blowing up.
const distanceFloor = 0.1

// place assigns a district type to candidate locations in order until the
// (clamped) desired number of districts exist.
// Slots for each type's minimum are filled before any optional slots are
// considered. For each location every type still holding a slot is scored
// & the first highest scoring type wins.
func (g *generation) place(candidates []model2d.Coord) []*District {
	lo, hi := g.cat.Bounds()
	target := g.cfg.Districts
	if target < lo {
		g.warn(StagePlace, "desired districts %d below sum of minimums %d, using %d", target, lo, lo)
		target = lo
	} else if target > hi {
		g.warn(StagePlace, "desired districts %d above sum of maximums %d, using %d", target, hi, hi)
		target = hi
	}

	required := []*DistrictType{}
	optional := []*DistrictType{}
	for _, t := range g.cat.Types() {
		for i := 0; i < t.Min; i++ {
			required = append(required, t)
		}
		for i := t.Min; i < t.Max; i++ {
			optional = append(optional, t)
		}
	}

	placed := []*District{}
	floorHits := 0

	for _, loc := range candidates {
		if len(placed) >= target {
			break
		}

		queue := &required
		if len(required) == 0 {
			queue = &optional
		}

		best := -1
		bestScore := math.Inf(-1)
		scored := map[int]bool{}
		for i, t := range *queue {
			if scored[t.ID] {
				continue
			}
			scored[t.ID] = true

			s, hits := g.score(t, loc, placed)
			floorHits += hits
			if s > bestScore {
				best = i
				bestScore = s
			}
		}

		t := (*queue)[best]
		*queue = append((*queue)[:best], (*queue)[best+1:]...)

		d := &District{
			ID:    g.newID(),
			Type:  t,
			Site:  loc,
			Pixel: g.tr.Pixel(loc.X, loc.Y),
		}
		placed = append(placed, d)
		g.log.Debug("placed district", "id", d.ID, "type", t.Name, "x", loc.X, "y", loc.Y, "score", bestScore)
	}

	if len(placed) < target {
		g.warn(StagePlace, "only %d candidate points for %d desired districts", len(candidates), target)
	}
	if floorHits > 0 {
		g.warn(StagePlace, "%d neighbour distances below %.1f were clamped", floorHits, distanceFloor)
	}

	g.placed = true
	return placed
}

// score returns how suitable loc is for type t given what is already placed,
// along with how many distances had to be clamped.
func (g *generation) score(t *DistrictType, loc model2d.Coord, placed []*District) (float64, int) {
	neighbour := 0.0
	hits := 0
	for _, d := range placed {
		rel := g.cat.Relation(t.ID, d.Type.ID)
		if rel.Attraction == 0 && rel.Repulsion == 0 {
			continue
		}
		dist := g.scaled(loc.Dist(d.Site))
		if dist < distanceFloor {
			dist = distanceFloor
			hits++
		}
		neighbour += (rel.Attraction - rel.Repulsion) / dist
	}

	position := positionScore(g.scaled(loc.Dist(g.centre())), t.Distance)
	return g.cfg.NeighbourWeight*neighbour + g.cfg.CentreWeight*position, hits
}

// scaled maps a world distance in [0, radius] to [0, 10]
func (g *generation) scaled(dist float64) float64 {
	return dist / g.cfg.Boundary.Radius * 10
}

// positionScore is 10 if a location is at the preferred distance from the
// centre, 5 if it's closer in & 0 if further out. Both are rounded first.
func positionScore(scaled, preferred float64) float64 {
	s, p := math.Round(scaled), math.Round(preferred)
	switch {
	case s == p:
		return 10
	case s < p:
		return 5
	}
	return 0
}
