package sample

import (
	"math/rand"
	"testing"

	"github.com/unixpickle/model3d/model2d"
)

func checkSpread(t *testing.T, disk Disk, pts []model2d.Coord, minSep float64) {
	t.Helper()
	for i, p := range pts {
		if !disk.Contains(p) {
			t.Fatalf("point %v outside disk", p)
		}
		for _, q := range pts[i+1:] {
			if d := p.Dist(q); d < minSep-1e-9 {
				t.Fatalf("points %v and %v only %f apart, want >= %f", p, q, d, minSep)
			}
		}
	}
}

func TestSample_Spread(t *testing.T) {
	tests := []struct {
		name     string
		disk     Disk
		minSep   float64
		attempts int
	}{
		{"Small", Disk{Center: model2d.Coord{X: 0, Y: 0}, Radius: 50}, 5, 30},
		{"Offset", Disk{Center: model2d.Coord{X: 450, Y: 450}, Radius: 450}, 40, 20},
		{"SingleAttempt", Disk{Center: model2d.Coord{X: 10, Y: -10}, Radius: 30}, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := Sample(rand.New(rand.NewSource(1)), tt.disk, tt.minSep, tt.attempts)
			if len(pts) < 2 {
				t.Fatalf("got %d points, want a spread", len(pts))
			}
			if pts[0] != tt.disk.Center {
				t.Errorf("first point = %v, want disk centre", pts[0])
			}
			checkSpread(t, tt.disk, pts, tt.minSep)
		})
	}
}

func TestSample_Deterministic(t *testing.T) {
	disk := Disk{Center: model2d.Coord{X: 0, Y: 0}, Radius: 100}
	a := Sample(rand.New(rand.NewSource(7)), disk, 10, 30)
	b := Sample(rand.New(rand.NewSource(7)), disk, 10, 30)

	if len(a) != len(b) {
		t.Fatalf("len %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSampleN_Caps(t *testing.T) {
	disk := Disk{Center: model2d.Coord{X: 450, Y: 450}, Radius: 450}

	pts, sep := sampleN(rand.New(rand.NewSource(3)), disk, 12, 30)
	if len(pts) != 12 {
		t.Errorf("got %d points, want 12", len(pts))
	}
	checkSpread(t, disk, pts, sep)

	if got := SampleN(rand.New(rand.NewSource(3)), disk, 0, 30); len(got) != 0 {
		t.Errorf("target 0 gave %d points", len(got))
	}
}

func TestSampleN_Exact(t *testing.T) {
	disk := Disk{Center: model2d.Coord{X: 0, Y: 0}, Radius: 450}

	for target := 1; target <= 40; target++ {
		for seed := int64(0); seed < 5; seed++ {
			pts, sep := sampleN(rand.New(rand.NewSource(seed)), disk, target, 30)
			if len(pts) != target {
				t.Fatalf("target %d seed %d: got %d points", target, seed, len(pts))
			}
			if sep > Separation(disk, target) {
				t.Fatalf("target %d: separation grew to %f", target, sep)
			}
			checkSpread(t, disk, pts, sep)
		}
	}
}

func TestSampleN_FewAttempts(t *testing.T) {
	disk := Disk{Center: model2d.Coord{X: 10, Y: 10}, Radius: 60}

	// one dart per active point falls short often; shrinking makes up for it
	pts := SampleN(rand.New(rand.NewSource(11)), disk, 20, 1)
	if len(pts) != 20 {
		t.Errorf("got %d points, want 20", len(pts))
	}
}
