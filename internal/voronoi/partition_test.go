package voronoi

import (
	"math"
	"math/rand"
	"testing"

	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/citylayout/internal/raster"
)

func twoSeeds() (raster.Transform, []Seed) {
	tr := raster.Transform{Size: 100, CenterX: 50, CenterY: 50, Radius: 50}
	seeds := []Seed{
		{Pos: model2d.Coord{X: 25, Y: 50}, Label: 0},
		{Pos: model2d.Coord{X: 75, Y: 50}, Label: 1},
	}
	return tr, seeds
}

func TestPartition_TwoSeeds(t *testing.T) {
	tr, seeds := twoSeeds()

	m, regions, err := Partition(rand.New(rand.NewSource(1)), tr, seeds, 0)
	if err != nil {
		t.Fatalf("Partition() error = %v", err)
	}

	inDisk := 0
	for y := 0; y < tr.Size; y++ {
		for x := 0; x < tr.Size; x++ {
			if tr.InDisk(x, y) {
				inDisk++
			}
			if m.IsBorder(x, y) && x != 49 {
				t.Fatalf("border pixel at (%d,%d), want only column 49", x, y)
			}
		}
	}

	borders := m.Count(raster.Border)
	if borders == 0 {
		t.Fatalf("no border pixels")
	}
	if got := regions[0].Len() + regions[1].Len() + borders; got != inDisk {
		t.Errorf("regions + borders = %d, want %d", got, inDisk)
	}
	if got := 100*100 - m.Count(raster.Outside); got != inDisk {
		t.Errorf("non outside = %d, want %d", got, inDisk)
	}
}

func TestAssign_NearestSeed(t *testing.T) {
	tr := raster.Transform{Size: 64, CenterX: 0, CenterY: 0, Radius: 100}
	rng := rand.New(rand.NewSource(4))
	seeds := make([]Seed, 9)
	for i := range seeds {
		seeds[i] = Seed{
			Pos:   model2d.Coord{X: rng.Float64()*160 - 80, Y: rng.Float64()*160 - 80},
			Label: i,
		}
	}

	m := Assign(tr, seeds)
	for y := 0; y < tr.Size; y++ {
		for x := 0; x < tr.Size; x++ {
			if !tr.InDisk(x, y) {
				if m.At(x, y) != raster.Outside {
					t.Fatalf("(%d,%d) outside disk but labelled %d", x, y, m.At(x, y))
				}
				continue
			}
			wx, wy := tr.World(x, y)
			p := model2d.Coord{X: wx, Y: wy}
			best := math.Inf(1)
			for _, s := range seeds {
				best = math.Min(best, s.Pos.Dist(p))
			}
			got := seeds[m.At(x, y)].Pos.Dist(p)
			if got-best > 1e-9 {
				t.Fatalf("(%d,%d) labelled %d at dist %f, nearest is %f", x, y, m.At(x, y), got, best)
			}
		}
	}
}

func TestAssign_Idempotent(t *testing.T) {
	tr, seeds := twoSeeds()
	a := Assign(tr, seeds)
	b := Assign(tr, seeds)
	for y := 0; y < tr.Size; y++ {
		for x := 0; x < tr.Size; x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatalf("(%d,%d) differs between runs", x, y)
			}
		}
	}
}

func TestPartition_DistortionKeepsLabels(t *testing.T) {
	tr, seeds := twoSeeds()

	m, regions, err := Partition(rand.New(rand.NewSource(9)), tr, seeds, 40)
	if err != nil {
		t.Fatalf("Partition() error = %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(regions))
	}
	// the seed pixels still belong to their own district
	for _, s := range seeds {
		p := tr.Pixel(s.Pos.X, s.Pos.Y)
		if l := m.At(p.X, p.Y); l != s.Label && l != raster.Border {
			t.Errorf("seed %d pixel labelled %d", s.Label, l)
		}
	}
}

func TestPartition_NoSeeds(t *testing.T) {
	tr, _ := twoSeeds()
	if _, _, err := Partition(rand.New(rand.NewSource(1)), tr, nil, 0); err != ErrNoSeeds {
		t.Errorf("error = %v, want ErrNoSeeds", err)
	}
}

func TestBuilder_Filters(t *testing.T) {
	tr, _ := twoSeeds()
	b := NewBuilder(tr, rand.New(rand.NewSource(2)))
	b.SetCandidateFilters(WithinDisk(model2d.Coord{X: 50, Y: 50}, 50))
	b.SetSiteFilters(MinDistance(10))

	if _, ok := b.AddSite(model2d.Coord{X: 50, Y: 50}, 0); !ok {
		t.Fatalf("centre rejected")
	}
	if _, ok := b.AddSite(model2d.Coord{X: 55, Y: 50}, 0); ok {
		t.Errorf("too close seed accepted")
	}
	if _, ok := b.AddSite(model2d.Coord{X: 200, Y: 50}, 0); ok {
		t.Errorf("seed outside disk accepted")
	}
	if _, ok := b.AddSite(model2d.Coord{X: 70, Y: 50}, -1); ok {
		t.Errorf("negative label accepted")
	}
	for i := 0; i < 50; i++ {
		p := b.RandomPoint()
		if p.Dist(model2d.Coord{X: 50, Y: 50}) > 50 {
			t.Fatalf("random point %v outside disk", p)
		}
	}
}

func TestDistortionSeeds(t *testing.T) {
	tr, seeds := twoSeeds()
	m := Assign(tr, seeds)

	for _, n := range []int{1, 10, 40, 120} {
		jitter := distortionSeeds(rand.New(rand.NewSource(int64(n))), tr, m, n)
		if len(jitter) != n {
			t.Fatalf("n=%d: got %d seeds", n, len(jitter))
		}

		spacing := distortionSpacing(tr.Radius, n)
		for i, s := range jitter {
			p := tr.Pixel(s.Pos.X, s.Pos.Y)
			if s.Label < 0 || s.Label != m.At(p.X, p.Y) {
				t.Errorf("n=%d: seed at %v labelled %d, map has %d", n, p, s.Label, m.At(p.X, p.Y))
			}
			for _, o := range jitter[i+1:] {
				if d := s.Pos.Dist(o.Pos); d < spacing {
					t.Fatalf("n=%d: seeds %v %v only %f apart, want >= %f", n, s.Pos, o.Pos, d, spacing)
				}
			}
		}
	}
}
