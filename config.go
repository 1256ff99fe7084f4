package citylayout

import (
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

const (
	defaultRadius            = 450
	defaultGridSize          = 512
	defaultRejectionAttempts = 30
	defaultRoadWidth         = 1
	defaultAxiom             = "A"
	defaultAngle             = 90
	defaultSegmentLength     = 4
	defaultTraceSegment      = 8
	defaultMinBlockSize      = 24
	defaultLotInset          = 1
	defaultMaxIterations     = 6
)

var (
	// ErrInvalidConfig implies settings we cannot build a city from
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds everything needed for one or more generation passes.
// Most settings have sane defaults (see SetDefaults), only the district
// types really need to be given.
type Config struct {
	// Seed for all random choices, 0 picks one from the clock
	Seed int64 `toml:"seed"`

	// Boundary is the disk (in world units) the city sits in
	Boundary Boundary `toml:"boundary"`

	// Districts is the desired number of districts, clamped to the sum of
	// the min / max counts of all types. 0 implies "as many as allowed".
	Districts int `toml:"districts"`

	// attempts made around each active point when sampling candidates
	RejectionAttempts int `toml:"rejection_attempts"`

	// GridSize is the side length of the raster, in pixels
	GridSize int `toml:"grid_size"`

	// DistortionPoints extra seeds used to wobble district edges, 0 for none
	DistortionPoints int `toml:"distortion_points"`

	// NeighbourWeight & CentreWeight weigh the two halves of the suitability
	// score. If both are 0 they default to 1.
	NeighbourWeight float64 `toml:"neighbour_weight"`
	CentreWeight    float64 `toml:"centre_weight"`

	// RoadWidth is how far (in pixels) streets are widened either side
	RoadWidth int `toml:"road_width"`

	LSystem LSystemConfig `toml:"lsystem"`

	// TraceSegmentLength is how many pixels apart traced border samples are
	TraceSegmentLength int `toml:"trace_segment_length"`

	// MinBlockSize is the side length of the grid used to cut lots
	MinBlockSize int `toml:"min_block_size"`

	// LotInset keeps lots this many pixels away from roads & borders
	LotInset int `toml:"lot_inset"`

	Types []*DistrictTypeConfig `toml:"types"`
}

// Boundary of the city in world units
type Boundary struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Radius float64 `toml:"radius"`
}

// LSystemConfig controls street generation within districts
type LSystemConfig struct {
	Axiom         string  `toml:"axiom"`
	Angle         float64 `toml:"angle"` // degrees
	SegmentLength int     `toml:"segment_length"`
	MaxIterations int     `toml:"max_iterations"`
}

// DistrictTypeConfig declares a kind of district
type DistrictTypeConfig struct {
	Name string `toml:"name"`

	// Colour is a colour name (see colornames) or #rrggbb
	Colour string `toml:"colour"`

	// Distance is the preferred distance from the centre, 0 (centre) - 10 (edge)
	Distance float64 `toml:"distance"`

	Min int `toml:"min"`
	Max int `toml:"max"`

	// MinLotArea in pixels
	MinLotArea int `toml:"min_lot_area"`

	Relations []*RelationConfig `toml:"relations"`
}

// RelationConfig is how much a district type wants (or doesn't want) to be
// near another, each in the range 0-10.
type RelationConfig struct {
	Type       string  `toml:"type"`
	Attraction float64 `toml:"attraction"`
	Repulsion  float64 `toml:"repulsion"`
}

// LoadConfig reads a toml config from disk.
func LoadConfig(fpath string) (*Config, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", fpath)
	}
	return ParseConfig(data)
}

// ParseConfig decodes toml, applies defaults & validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	cfg.SetDefaults()
	return cfg, cfg.Validate()
}

// SetDefaults fills in any unset values
func (c *Config) SetDefaults() {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Boundary.Radius == 0 {
		c.Boundary.Radius = defaultRadius
	}
	if c.GridSize == 0 {
		c.GridSize = defaultGridSize
	}
	if c.RejectionAttempts == 0 {
		c.RejectionAttempts = defaultRejectionAttempts
	}
	if c.NeighbourWeight == 0 && c.CentreWeight == 0 {
		c.NeighbourWeight = 1
		c.CentreWeight = 1
	}
	if c.RoadWidth == 0 {
		c.RoadWidth = defaultRoadWidth
	}
	if c.LSystem.Axiom == "" {
		c.LSystem.Axiom = defaultAxiom
	}
	if c.LSystem.Angle == 0 {
		c.LSystem.Angle = defaultAngle
	}
	if c.LSystem.SegmentLength == 0 {
		c.LSystem.SegmentLength = defaultSegmentLength
	}
	if c.LSystem.MaxIterations == 0 {
		c.LSystem.MaxIterations = defaultMaxIterations
	}
	if c.TraceSegmentLength == 0 {
		c.TraceSegmentLength = defaultTraceSegment
	}
	if c.MinBlockSize == 0 {
		c.MinBlockSize = defaultMinBlockSize
	}
	if c.LotInset == 0 {
		c.LotInset = defaultLotInset
	}
	if c.Districts == 0 {
		for _, t := range c.Types {
			c.Districts += t.Max
		}
	}
}

// Validate returns an ErrInvalidConfig wrapped error for settings we can't
// work with. Out of range district counts are not an error here, they're
// clamped (with a warning) at generation time.
func (c *Config) Validate() error {
	bad := func(format string, args ...interface{}) error {
		return errors.Wrapf(ErrInvalidConfig, format, args...)
	}

	if c.Boundary.Radius <= 0 {
		return bad("boundary radius must be > 0, got %f", c.Boundary.Radius)
	}
	if c.GridSize <= 0 {
		return bad("grid size must be > 0, got %d", c.GridSize)
	}
	if c.RejectionAttempts <= 0 {
		return bad("rejection attempts must be > 0, got %d", c.RejectionAttempts)
	}
	if c.NeighbourWeight < 0 || c.CentreWeight < 0 {
		return bad("weights must be >= 0, got %f %f", c.NeighbourWeight, c.CentreWeight)
	}
	if c.RoadWidth < 0 || c.LotInset < 0 || c.DistortionPoints < 0 {
		return bad("road width, lot inset & distortion points must be >= 0")
	}
	if c.LSystem.SegmentLength < 0 || c.TraceSegmentLength < 0 || c.MinBlockSize < 0 {
		return bad("segment lengths & block size must be >= 0")
	}
	if len(c.Types) == 0 {
		return bad("at least one district type is required")
	}

	names := map[string]bool{}
	for _, t := range c.Types {
		if t == nil || t.Name == "" {
			return bad("district types must be named")
		}
		if names[t.Name] {
			return bad("duplicate district type %s", t.Name)
		}
		names[t.Name] = true

		if t.Min < 1 || t.Max < t.Min {
			return bad("%s: need 1 <= min <= max, got %d %d", t.Name, t.Min, t.Max)
		}
		if t.Distance < 0 || t.Distance > 10 {
			return bad("%s: distance must be in 0-10, got %f", t.Name, t.Distance)
		}
		if t.MinLotArea < 0 {
			return bad("%s: min lot area must be >= 0", t.Name)
		}
		if _, err := parseColour(t.Colour); err != nil {
			return bad("%s: %v", t.Name, err)
		}
	}

	for _, t := range c.Types {
		for _, r := range t.Relations {
			if !names[r.Type] {
				return bad("%s: relation to unknown type %s", t.Name, r.Type)
			}
			if r.Attraction < 0 || r.Attraction > 10 || r.Repulsion < 0 || r.Repulsion > 10 {
				return bad("%s: relation to %s out of range 0-10", t.Name, r.Type)
			}
		}
	}

	return nil
}

// parseColour accepts a colour name or #rrggbb. Empty is mid gray.
func parseColour(in string) (color.Color, error) {
	in = strings.ToLower(strings.TrimSpace(in))
	if in == "" {
		return colornames.Gray, nil
	}
	if strings.HasPrefix(in, "#") {
		var r, g, b uint8
		if len(in) != 7 {
			return nil, fmt.Errorf("bad hex colour %q", in)
		}
		if _, err := fmt.Sscanf(in, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return nil, fmt.Errorf("bad hex colour %q", in)
		}
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	}
	c, ok := colornames.Map[in]
	if !ok {
		return nil, fmt.Errorf("unknown colour %q", in)
	}
	return c, nil
}
