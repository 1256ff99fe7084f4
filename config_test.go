package citylayout

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

const sampleToml = `
seed = 42
districts = 4
grid_size = 256
distortion_points = 50

[boundary]
x = 100
y = 100
radius = 300

[lsystem]
axiom = "AB"
angle = 60

[[types]]
name = "market"
colour = "fuchsia"
distance = 2
min = 1
max = 2
min_lot_area = 50

  [[types.relations]]
  type = "homes"
  attraction = 7

[[types]]
name = "homes"
colour = "#336699"
distance = 6
min = 1
max = 3
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleToml))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if cfg.Seed != 42 || cfg.Districts != 4 || cfg.GridSize != 256 || cfg.DistortionPoints != 50 {
		t.Errorf("got seed=%d districts=%d size=%d distortion=%d", cfg.Seed, cfg.Districts, cfg.GridSize, cfg.DistortionPoints)
	}
	if cfg.Boundary != (Boundary{X: 100, Y: 100, Radius: 300}) {
		t.Errorf("Boundary = %+v", cfg.Boundary)
	}
	if cfg.LSystem.Axiom != "AB" || cfg.LSystem.Angle != 60 {
		t.Errorf("LSystem = %+v", cfg.LSystem)
	}
	if len(cfg.Types) != 2 || len(cfg.Types[0].Relations) != 1 {
		t.Fatalf("Types = %+v", cfg.Types)
	}
	if r := cfg.Types[0].Relations[0]; r.Type != "homes" || r.Attraction != 7 || r.Repulsion != 0 {
		t.Errorf("relation = %+v", r)
	}

	// defaults for things not given
	if cfg.LSystem.SegmentLength != defaultSegmentLength {
		t.Errorf("SegmentLength = %d, want %d", cfg.LSystem.SegmentLength, defaultSegmentLength)
	}
	if cfg.RejectionAttempts != defaultRejectionAttempts {
		t.Errorf("RejectionAttempts = %d, want %d", cfg.RejectionAttempts, defaultRejectionAttempts)
	}
	if cfg.NeighbourWeight != 1 || cfg.CentreWeight != 1 {
		t.Errorf("weights = %f %f, want 1 1", cfg.NeighbourWeight, cfg.CentreWeight)
	}
}

func TestLoadConfig(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "city.toml")
	if err := os.WriteFile(fpath, []byte(sampleToml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(fpath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("LoadConfig() on missing file, want error")
	}
}

func TestSetDefaults_Districts(t *testing.T) {
	cfg := &Config{Types: []*DistrictTypeConfig{
		{Name: "a", Min: 1, Max: 2},
		{Name: "b", Min: 1, Max: 3},
	}}
	cfg.SetDefaults()

	if cfg.Districts != 5 {
		t.Errorf("Districts = %d, want 5", cfg.Districts)
	}
	if cfg.Seed == 0 {
		t.Errorf("Seed not set")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{Types: []*DistrictTypeConfig{
			{Name: "a", Min: 1, Max: 2},
			{Name: "b", Min: 1, Max: 1, Relations: []*RelationConfig{{Type: "a", Repulsion: 3}}},
		}}
		cfg.SetDefaults()
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative radius", func(c *Config) { c.Boundary.Radius = -1 }},
		{"negative grid", func(c *Config) { c.GridSize = -5 }},
		{"no types", func(c *Config) { c.Types = nil }},
		{"unnamed type", func(c *Config) { c.Types[0].Name = "" }},
		{"duplicate type", func(c *Config) { c.Types[1].Name = "a" }},
		{"min zero", func(c *Config) { c.Types[0].Min = 0 }},
		{"max below min", func(c *Config) { c.Types[0].Max = 0 }},
		{"distance range", func(c *Config) { c.Types[0].Distance = 11 }},
		{"bad colour", func(c *Config) { c.Types[0].Colour = "not-a-colour" }},
		{"unknown relation", func(c *Config) { c.Types[1].Relations[0].Type = "zzz" }},
		{"relation range", func(c *Config) { c.Types[1].Relations[0].Repulsion = 12 }},
		{"negative inset", func(c *Config) { c.LotInset = -1 }},
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("Validate() on valid config = %v", err)
	}

	for _, c := range cases {
		cfg := valid()
		c.mutate(cfg)
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: Validate() = %v, want ErrInvalidConfig", c.name, err)
		}
	}
}

func TestParseColour(t *testing.T) {
	cases := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"red", color.RGBA{R: 255, A: 255}, false},
		{" Gold ", color.RGBA{R: 255, G: 215, A: 255}, false},
		{"#336699", color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}, false},
		{"#3366", nil, true},
		{"#zzzzzz", nil, true},
		{"blurple", nil, true},
	}

	for _, c := range cases {
		got, err := parseColour(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("parseColour(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if !c.wantErr && got != c.want {
			t.Errorf("parseColour(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
