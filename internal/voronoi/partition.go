// Package voronoi rasterises a nearest-seed partition of the boundary disk
// onto a square grid & marks the borders between differing labels.
package voronoi

import (
	"image"
	"math"
	"math/rand"
	"runtime"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"golang.org/x/sync/errgroup"

	"github.com/voidshard/citylayout/internal/raster"
)

var (
	// ErrNoSeeds is returned when asked to partition without any seeds
	ErrNoSeeds = errors.New("voronoi partition requires at least one seed")
)

// Partition labels every pixel of a tr.Size square grid with the label of its
// nearest seed (pixels outside of the disk become raster.Outside) then marks
// borders.
//
// If distortion > 0 we draw that many extra seeds uniformly in the disk, each
// inheriting the label of whichever undistorted cell it falls in, & partition
// again with the combined set. This wobbles cell edges without changing who
// owns the bulk of an area.
//
// Returned regions are keyed by label & hold every non-border pixel with that
// label.
func Partition(rng *rand.Rand, tr raster.Transform, seeds []Seed, distortion int) (*raster.Map, map[int]*raster.Region, error) {
	if len(seeds) == 0 {
		return nil, nil, ErrNoSeeds
	}
	if tr.Size <= 0 || tr.Radius <= 0 {
		return nil, nil, errors.Errorf("invalid grid size %d / radius %f", tr.Size, tr.Radius)
	}

	m := Assign(tr, seeds)

	if distortion > 0 {
		jitter := distortionSeeds(rng, tr, m, distortion)
		all := make([]Seed, 0, len(seeds)+len(jitter))
		all = append(all, seeds...)
		all = append(all, jitter...)
		m = Assign(tr, all)
	}

	m = MarkBorders(m)
	return m, Regions(m), nil
}

// attemptsPerSeed caps how many draws distortionSeeds makes per seed wanted
const attemptsPerSeed = 30

// distortionSeeds draws n seeds spread over the disk, each labelled with
// whatever m holds under it. Draws landing outside (or too near an earlier
// draw) are retried, up to attemptsPerSeed * n draws in total.
func distortionSeeds(rng *rand.Rand, tr raster.Transform, m *raster.Map, n int) []Seed {
	b := NewBuilder(tr, rng)
	b.SetCandidateFilters(WithinDisk(model2d.Coord{X: tr.CenterX, Y: tr.CenterY}, tr.Radius))
	b.SetSiteFilters(MinDistance(distortionSpacing(tr.Radius, n)))

	labelFor := func(p model2d.Coord) int {
		px := tr.Pixel(p.X, p.Y)
		return m.At(px.X, px.Y) // outside (negative) is rejected by the builder
	}
	for i := 0; i < n*attemptsPerSeed && b.SiteCount() < n; i++ {
		b.AddRandomSite(labelFor)
	}
	return b.Seeds()
}

// distortionSpacing keeps distortion seeds from clumping. Half the mean
// spacing of n points in the disk leaves room for many more than n.
func distortionSpacing(radius float64, n int) float64 {
	return 0.5 * radius / math.Sqrt(float64(n))
}

// Assign labels each pixel with the label of the nearest seed.
// Rows are handed out to workers; each pixel is written by exactly one worker.
func Assign(tr raster.Transform, seeds []Seed) *raster.Map {
	coords := make([]model2d.Coord, len(seeds))
	labels := make(map[model2d.Coord]int, len(seeds))
	for i, s := range seeds {
		coords[i] = s.Pos
		if _, ok := labels[s.Pos]; !ok { // first seed at a position wins
			labels[s.Pos] = s.Label
		}
	}
	tree := model2d.NewCoordTree(coords)

	m := raster.New(tr.Size)
	forRows(tr.Size, func(y int) {
		for x := 0; x < tr.Size; x++ {
			if !tr.InDisk(x, y) {
				continue // already Outside
			}
			wx, wy := tr.World(x, y)
			nearest := tree.KNN(1, model2d.Coord{X: wx, Y: wy})
			m.Set(x, y, labels[nearest[0]])
		}
	})
	return m
}

// MarkBorders returns a copy of m where any interior pixel whose right or
// lower neighbour is interior with a different label becomes raster.Border.
// Only checking two of the four neighbours keeps borders one pixel thick.
func MarkBorders(m *raster.Map) *raster.Map {
	out := m.Clone()
	size := m.Size()
	forRows(size, func(y int) {
		for x := 0; x < size; x++ {
			me := m.At(x, y)
			if me < 0 {
				continue
			}
			for _, d := range []image.Point{{1, 0}, {0, 1}} {
				other := m.At(x+d.X, y+d.Y)
				if other >= 0 && other != me {
					out.Set(x, y, raster.Border)
					break
				}
			}
		}
	})
	return out
}

// Regions collects every interior pixel of m by label.
// Workers gather rows into their own lists which we merge in row order
// afterwards, so pixel order is row-major & deterministic.
func Regions(m *raster.Map) map[int]*raster.Region {
	size := m.Size()
	rows := make([]map[int][]image.Point, size)
	forRows(size, func(y int) {
		local := map[int][]image.Point{}
		for x := 0; x < size; x++ {
			l := m.At(x, y)
			if l < 0 {
				continue
			}
			local[l] = append(local[l], image.Pt(x, y))
		}
		rows[y] = local
	})

	regions := map[int]*raster.Region{}
	for _, row := range rows {
		for label, pts := range row {
			r, ok := regions[label]
			if !ok {
				r = raster.NewRegion(label, label)
				regions[label] = r
			}
			r.Pixels = append(r.Pixels, pts...)
		}
	}
	return regions
}

// forRows runs fn for every row in [0, size) across GOMAXPROCS workers.
func forRows(size int, fn func(y int)) {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < size; y++ {
		y := y
		g.Go(func() error {
			fn(y)
			return nil
		})
	}
	_ = g.Wait() // fn can't fail
}
