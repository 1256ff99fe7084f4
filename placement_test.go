package citylayout

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/unixpickle/model3d/model2d"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// testGeneration builds a generation over a radius 450 disk at the origin
func testGeneration(t *testing.T, districts int, types ...*DistrictTypeConfig) *generation {
	t.Helper()

	cfg := &Config{
		Seed:      1,
		Boundary:  Boundary{Radius: 450},
		Districts: districts,
		Types:     types,
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	cat, err := NewCatalog(types)
	if err != nil {
		t.Fatalf("NewCatalog() = %v", err)
	}
	return newGeneration(cfg, cat, quietLogger())
}

func countByType(in []*District) map[string]int {
	out := map[string]int{}
	for _, d := range in {
		out[d.Type.Name]++
	}
	return out
}

func TestPlace_MinimumsFirst(t *testing.T) {
	gen := testGeneration(t, 3,
		&DistrictTypeConfig{Name: "a", Min: 1, Max: 1},
		&DistrictTypeConfig{Name: "b", Min: 1, Max: 2, Distance: 5},
		&DistrictTypeConfig{Name: "c", Min: 1, Max: 1, Distance: 10},
	)
	candidates := []model2d.Coord{{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 0, Y: -400}, {X: -300, Y: 0}}

	placed := gen.place(candidates)
	if len(placed) != 3 {
		t.Fatalf("placed %d districts, want 3", len(placed))
	}

	counts := countByType(placed)
	for _, name := range []string{"a", "b", "c"} {
		if counts[name] != 1 {
			t.Errorf("type %s placed %d times, want 1", name, counts[name])
		}
	}
	for i, d := range placed {
		if d.ID != i {
			t.Errorf("district %d has id %d", i, d.ID)
		}
		if d.Site != candidates[i] {
			t.Errorf("district %d at %v, want %v", i, d.Site, candidates[i])
		}
	}
	if len(gen.warnings) != 0 {
		t.Errorf("unexpected warnings %v", gen.warnings)
	}
}

func TestPlace_ClampsTarget(t *testing.T) {
	gen := testGeneration(t, 10,
		&DistrictTypeConfig{Name: "a", Min: 1, Max: 1},
		&DistrictTypeConfig{Name: "b", Min: 1, Max: 2},
		&DistrictTypeConfig{Name: "c", Min: 1, Max: 1},
	)
	candidates := make([]model2d.Coord, 8)
	for i := range candidates {
		candidates[i] = model2d.Coord{X: float64(i * 40), Y: 0}
	}

	placed := gen.place(candidates)
	if len(placed) != 4 {
		t.Fatalf("placed %d districts, want 4", len(placed))
	}
	counts := countByType(placed)
	if counts["a"] != 1 || counts["b"] != 2 || counts["c"] != 1 {
		t.Errorf("counts = %v, want a:1 b:2 c:1", counts)
	}
	if len(gen.warnings) != 1 || gen.warnings[0].Stage != StagePlace {
		t.Errorf("warnings = %v, want one placement warning", gen.warnings)
	}
}

func TestPlace_TooFewCandidates(t *testing.T) {
	gen := testGeneration(t, 3,
		&DistrictTypeConfig{Name: "a", Min: 1, Max: 1},
		&DistrictTypeConfig{Name: "b", Min: 2, Max: 2},
	)

	placed := gen.place([]model2d.Coord{{X: 1, Y: 1}})
	if len(placed) != 1 {
		t.Fatalf("placed %d districts, want 1", len(placed))
	}
	if len(gen.warnings) != 1 {
		t.Errorf("warnings = %v, want one", gen.warnings)
	}

	gen = testGeneration(t, 3,
		&DistrictTypeConfig{Name: "a", Min: 1, Max: 1},
		&DistrictTypeConfig{Name: "b", Min: 2, Max: 2},
	)
	if placed := gen.place(nil); len(placed) != 0 || len(gen.warnings) != 1 {
		t.Errorf("no candidates: placed %d, warnings %v", len(placed), gen.warnings)
	}
}

func TestPlace_FirstHighestWins(t *testing.T) {
	gen := testGeneration(t, 2,
		&DistrictTypeConfig{Name: "a", Min: 1, Max: 1},
		&DistrictTypeConfig{Name: "b", Min: 1, Max: 1},
	)

	placed := gen.place([]model2d.Coord{{X: 0, Y: 0}, {X: 0, Y: 0}})
	if placed[0].Type.Name != "a" || placed[1].Type.Name != "b" {
		t.Errorf("placed %s then %s, want a then b", placed[0].Type.Name, placed[1].Type.Name)
	}
}

func TestPlace_PrefersDistance(t *testing.T) {
	gen := testGeneration(t, 2,
		&DistrictTypeConfig{Name: "centre", Min: 1, Max: 1, Distance: 0},
		&DistrictTypeConfig{Name: "edge", Min: 1, Max: 1, Distance: 10},
	)

	// the first point is on the edge, so edge should win it despite being
	// second in line
	placed := gen.place([]model2d.Coord{{X: 449, Y: 0}, {X: 0, Y: 0}})
	if placed[0].Type.Name != "edge" || placed[1].Type.Name != "centre" {
		t.Errorf("placed %s then %s, want edge then centre", placed[0].Type.Name, placed[1].Type.Name)
	}
}

func TestScore_Neighbours(t *testing.T) {
	gen := testGeneration(t, 2,
		&DistrictTypeConfig{Name: "a", Min: 1, Max: 1, Distance: 10},
		&DistrictTypeConfig{Name: "b", Min: 1, Max: 1, Distance: 10, Relations: []*RelationConfig{
			{Type: "a", Attraction: 8, Repulsion: 3},
		}},
	)
	a, _ := gen.cat.ByName("a")
	b, _ := gen.cat.ByName("b")
	placed := []*District{{ID: 0, Type: a, Site: model2d.Coord{X: 0, Y: 0}}}

	// 45 world units is 1 on the 0-10 scale, centre score is 5 as we're
	// closer in than preferred
	got, hits := gen.score(b, model2d.Coord{X: 45, Y: 0}, placed)
	if want := 5.0/1 + 5; got != want || hits != 0 {
		t.Errorf("score() = %f (%d hits), want %f", got, hits, want)
	}

	// coincident points use the floor
	got, hits = gen.score(b, model2d.Coord{X: 0, Y: 0}, placed)
	if want := 5.0/distanceFloor + 5; got != want || hits != 1 {
		t.Errorf("coincident score() = %f (%d hits), want %f", got, hits, want)
	}

	// a has no relation to b
	got, _ = gen.score(a, model2d.Coord{X: 45, Y: 0}, []*District{{ID: 1, Type: b}})
	if got != 5 {
		t.Errorf("unrelated score() = %f, want 5", got)
	}
}

func TestPositionScore(t *testing.T) {
	cases := []struct {
		scaled, preferred, want float64
	}{
		{3, 3, 10},
		{3.4, 2.6, 10},
		{1, 3, 5},
		{0, 0.4, 10},
		{9, 3, 0},
		{10, 9.6, 10},
	}

	for _, c := range cases {
		if got := positionScore(c.scaled, c.preferred); got != c.want {
			t.Errorf("positionScore(%f, %f) = %f, want %f", c.scaled, c.preferred, got, c.want)
		}
	}
}
