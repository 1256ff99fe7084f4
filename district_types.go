package citylayout

import (
	"image/color"
	"sort"

	"github.com/pkg/errors"
)

// Names of the district types in the DefaultConfig.
// In practice a city wont simply contain temples in the Temple district
// or whatever, but .. still .. gives us a somewhat generic way to think
// of the city in districts with rough purposes.
const (
	Park              = "park"                    // greenery, trees, grass
	Temple            = "temple"                  // major temples, shrines, festival squares
	Civic             = "civic"                   // city hall(s), courts
	Graveyard         = "graveyard"               // for people after best-by date
	ResidentialUpper  = "residential-upperclass"  // large mansions, stately homes, fancy shops
	ResidentialMiddle = "residential-middleclass" // nice homes of those living comfortably, taverns, shops
	ResidentialLower  = "residential-lowerclass"  // smaller homes, taverns and inns of more dubious repute
	ResidentialSlum   = "residential-slum"        // mixture of homes, lean-tos, tents
	Fortress          = "fortress"                // castle, fort, possibly fighting arenas
	Market            = "market"                  // market probably popup shops, livestock, produce sales
	Commercial        = "commercial"              // shops of all sorts
	Square            = "square"                  // fountain(s), statues & generally an area to gather
	Industrial        = "industrial"              // industrial parts of town; smelters, tanneries, workshops
	Warehouse         = "warehouse"               // lots large buildings, possibly behind fences
	Barracks          = "barracks"                // barracks, training yards, target ranges
	Fields            = "fields"                  // space for farmland, crops, homesteads
)

// DistrictType is a registered kind of district.
type DistrictType struct {
	ID     int
	Name   string
	Colour color.Color

	// preferred distance from the centre 0-10
	Distance float64

	Min        int
	Max        int
	MinLotArea int
}

// Relation is how one type feels about being near another
type Relation struct {
	Attraction float64
	Repulsion  float64
}

// Catalog is an id keyed registry of district types & the relations
// between them.
type Catalog struct {
	types     []*DistrictType
	byName    map[string]*DistrictType
	relations map[[2]int]Relation
}

// NewCatalog registers the given types in order, assigning ids from 0 &
// resolving relations (given by name) to ids.
func NewCatalog(cfgs []*DistrictTypeConfig) (*Catalog, error) {
	c := &Catalog{
		types:     []*DistrictType{},
		byName:    map[string]*DistrictType{},
		relations: map[[2]int]Relation{},
	}

	for _, cfg := range cfgs {
		if _, ok := c.byName[cfg.Name]; ok {
			return nil, errors.Wrapf(ErrInvalidConfig, "duplicate district type %s", cfg.Name)
		}
		col, err := parseColour(cfg.Colour)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidConfig, "%s: %v", cfg.Name, err)
		}
		t := &DistrictType{
			ID:         len(c.types),
			Name:       cfg.Name,
			Colour:     col,
			Distance:   cfg.Distance,
			Min:        cfg.Min,
			Max:        cfg.Max,
			MinLotArea: cfg.MinLotArea,
		}
		c.types = append(c.types, t)
		c.byName[t.Name] = t
	}

	for _, cfg := range cfgs {
		from := c.byName[cfg.Name]
		for _, r := range cfg.Relations {
			to, ok := c.byName[r.Type]
			if !ok {
				return nil, errors.Wrapf(ErrInvalidConfig, "%s: relation to unknown type %s", cfg.Name, r.Type)
			}
			c.relations[[2]int{from.ID, to.ID}] = Relation{Attraction: r.Attraction, Repulsion: r.Repulsion}
		}
	}

	return c, nil
}

// Types returns all types in registration (id) order
func (c *Catalog) Types() []*DistrictType {
	return c.types
}

// Get returns the type with the given id, or nil
func (c *Catalog) Get(id int) *DistrictType {
	if id < 0 || id >= len(c.types) {
		return nil
	}
	return c.types[id]
}

// ByName returns the type with the given name
func (c *Catalog) ByName(name string) (*DistrictType, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// Relation returns how `from` feels about `to`. Unset relations are zero.
func (c *Catalog) Relation(from, to int) Relation {
	return c.relations[[2]int{from, to}]
}

// Bounds returns the sum of all min & max counts
func (c *Catalog) Bounds() (int, int) {
	lo, hi := 0, 0
	for _, t := range c.types {
		lo += t.Min
		hi += t.Max
	}
	return lo, hi
}

// SortedByDistance returns types ordered by how close to the centre they
// like to be, ties broken by id.
func (c *Catalog) SortedByDistance() []*DistrictType {
	out := append([]*DistrictType{}, c.types...)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Distance < out[b].Distance
	})
	return out
}

// DefaultConfig returns a Config with a reasonable set of district types.
// Nothing here is particularly special, they just seem sane to me.
func DefaultConfig() *Config {
	typ := func(name, colour string, dist float64, min, max, lot int) *DistrictTypeConfig {
		return &DistrictTypeConfig{
			Name:       name,
			Colour:     colour,
			Distance:   dist,
			Min:        min,
			Max:        max,
			MinLotArea: lot,
			Relations:  []*RelationConfig{},
		}
	}

	// ordered by their relative closeness to the centre
	types := []*DistrictTypeConfig{
		typ(Fortress, "crimson", 0, 1, 1, 400),
		typ(Civic, "indigo", 1, 1, 1, 300),
		typ(ResidentialUpper, "royalblue", 2, 1, 3, 250),
		typ(Temple, "gold", 2, 1, 1, 300),
		typ(Square, "yellow", 3, 1, 1, 200),
		typ(Market, "fuchsia", 3, 1, 2, 100),
		typ(Commercial, "hotpink", 4, 1, 4, 120),
		typ(Park, "lightgreen", 4, 1, 2, 400),
		typ(ResidentialMiddle, "steelblue", 5, 1, 6, 150),
		typ(Graveyard, "lightgray", 6, 1, 2, 100),
		typ(ResidentialLower, "slateblue", 7, 1, 8, 100),
		typ(ResidentialSlum, "darkslateblue", 8, 1, 4, 60),
		typ(Industrial, "firebrick", 8, 1, 4, 250),
		typ(Warehouse, "brown", 9, 1, 3, 300),
		typ(Barracks, "maroon", 9, 1, 2, 250),
		typ(Fields, "wheat", 10, 1, 6, 600),
	}

	rel := func(from, to string, attraction, repulsion float64) {
		for _, t := range types {
			if t.Name == from {
				t.Relations = append(t.Relations, &RelationConfig{Type: to, Attraction: attraction, Repulsion: repulsion})
			}
		}
	}

	// tl;dr the wealthy like nice things nearby & keep away from the smelly stuff
	rel(ResidentialUpper, Park, 6, 0)
	rel(ResidentialUpper, Civic, 4, 0)
	rel(ResidentialUpper, Industrial, 0, 9)
	rel(ResidentialUpper, ResidentialSlum, 0, 8)
	rel(ResidentialMiddle, Commercial, 5, 0)
	rel(ResidentialMiddle, Industrial, 0, 5)
	rel(ResidentialLower, Industrial, 4, 0)
	rel(ResidentialSlum, Industrial, 5, 0)
	rel(ResidentialSlum, ResidentialUpper, 0, 6)
	rel(Market, Square, 7, 0)
	rel(Market, Commercial, 5, 0)
	rel(Commercial, Market, 5, 0)
	rel(Temple, Square, 5, 0)
	rel(Temple, Graveyard, 3, 0)
	rel(Graveyard, Temple, 3, 0)
	rel(Warehouse, Industrial, 6, 0)
	rel(Industrial, Warehouse, 6, 0)
	rel(Industrial, ResidentialUpper, 0, 6)
	rel(Barracks, Fortress, 4, 0)
	rel(Fields, Fortress, 0, 8)
	rel(Fields, Industrial, 0, 4)

	cfg := &Config{
		Boundary:         Boundary{X: 0, Y: 0, Radius: defaultRadius},
		Districts:        30,
		DistortionPoints: 200,
		Types:            types,
	}
	cfg.SetDefaults()
	return cfg
}
