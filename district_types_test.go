package citylayout

import (
	"errors"
	"testing"
)

func TestNewCatalog(t *testing.T) {
	cat, err := NewCatalog([]*DistrictTypeConfig{
		{Name: "a", Colour: "red", Min: 1, Max: 1, Distance: 3},
		{Name: "b", Min: 1, Max: 4, Distance: 1, Relations: []*RelationConfig{{Type: "a", Attraction: 2, Repulsion: 5}}},
		{Name: "c", Min: 2, Max: 2, Distance: 3},
	})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}

	for i, name := range []string{"a", "b", "c"} {
		typ, ok := cat.ByName(name)
		if !ok || typ.ID != i || cat.Get(i) != typ {
			t.Errorf("type %s: ByName = %+v, %v, want id %d", name, typ, ok, i)
		}
	}
	if cat.Get(3) != nil || cat.Get(-1) != nil {
		t.Errorf("Get() out of range should be nil")
	}

	if got := cat.Relation(1, 0); got != (Relation{Attraction: 2, Repulsion: 5}) {
		t.Errorf("Relation(b, a) = %+v", got)
	}
	// relations are one way
	if got := cat.Relation(0, 1); got != (Relation{}) {
		t.Errorf("Relation(a, b) = %+v, want zero", got)
	}

	lo, hi := cat.Bounds()
	if lo != 4 || hi != 7 {
		t.Errorf("Bounds() = %d, %d, want 4, 7", lo, hi)
	}

	sorted := cat.SortedByDistance()
	if sorted[0].Name != "b" || sorted[1].Name != "a" || sorted[2].Name != "c" {
		t.Errorf("SortedByDistance() = %s %s %s, want b a c", sorted[0].Name, sorted[1].Name, sorted[2].Name)
	}
}

func TestNewCatalog_Errors(t *testing.T) {
	cases := map[string][]*DistrictTypeConfig{
		"duplicate": {{Name: "a", Min: 1, Max: 1}, {Name: "a", Min: 1, Max: 1}},
		"relation":  {{Name: "a", Min: 1, Max: 1, Relations: []*RelationConfig{{Type: "b"}}}},
		"colour":    {{Name: "a", Colour: "nope", Min: 1, Max: 1}},
	}

	for name, cfgs := range cases {
		if _, err := NewCatalog(cfgs); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: NewCatalog() error = %v, want ErrInvalidConfig", name, err)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	cat, err := NewCatalog(cfg.Types)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	lo, hi := cat.Bounds()
	if cfg.Districts < lo || cfg.Districts > hi {
		t.Errorf("default districts %d outside [%d, %d]", cfg.Districts, lo, hi)
	}

	upper, _ := cat.ByName(ResidentialUpper)
	industrial, _ := cat.ByName(Industrial)
	if cat.Relation(upper.ID, industrial.ID).Repulsion == 0 {
		t.Errorf("expected upper class to be repelled by industry")
	}
}
