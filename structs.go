package citylayout

import (
	"fmt"
	"image"

	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/citylayout/internal/raster"
	"github.com/voidshard/citylayout/internal/trace"
)

// Stage names used in warnings & logs
const (
	StageSample    = "sample"
	StagePlace     = "place"
	StagePartition = "partition"
	StageMainRoads = "main-roads"
	StageStreets   = "streets"
	StageLots      = "lots"
)

// District is a placed district.
type District struct {
	ID   int
	Type *DistrictType

	// Site is the world position the district grew from
	Site model2d.Coord

	// Pixel is Site on the raster
	Pixel image.Point
}

// Warning is something that went wrong but didn't stop generation.
type Warning struct {
	Stage   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// Region is a connected set of pixels belonging to one district.
type Region struct {
	ID       int
	District int
	Pixels   []image.Point
}

// Border is a traced edge between two junctions, in pixel coordinates.
// Points are evenly spaced samples between Start & End, Pixels every border
// pixel the edge claimed.
type Border = trace.Border

// Lot is a plot of land within a district.
type Lot struct {
	Region   int
	District int
	Pixels   []image.Point

	// Valid is false for undersized blocks that could not be merged
	Valid bool
}

// Result is everything produced by one generation pass.
type Result struct {
	// Run uniquely identifies the generation pass
	Run  string
	Seed int64
	Size int

	Boundary Boundary

	// Districts in placement order
	Districts     []*District
	DistrictsByID map[int]*District

	// Regions of the partition, keyed by district id
	Regions map[int]*Region

	// MainRoads are borders between districts, traced before streets are added
	MainRoads []*Border

	// Streets are all borders traced after streets are added
	Streets []*Border

	// Lots keyed by district id
	Lots map[int][]*Lot

	// Unmerged lots too small to stand alone that touched no other lot
	Unmerged []*Lot

	Warnings []Warning

	catalog *Catalog
	labels  *raster.Map
	streets *raster.PixelSet
	tr      raster.Transform
}

// Catalog returns the district types used in this pass
func (r *Result) Catalog() *Catalog {
	return r.catalog
}

// IsBorder returns if x,y is a border between districts or a street
func (r *Result) IsBorder(x, y int) bool {
	return r.labels.IsBorder(x, y)
}

// IsStreet returns if x,y was added as a street
func (r *Result) IsStreet(x, y int) bool {
	return r.streets.Has(image.Pt(x, y))
}

// InCity returns if x,y is inside the boundary
func (r *Result) InCity(x, y int) bool {
	return r.labels.At(x, y) != raster.Outside
}

// DistrictAt returns the district owning x,y or nil for border / outside pixels
func (r *Result) DistrictAt(x, y int) *District {
	label := r.labels.At(x, y)
	if label < 0 {
		return nil
	}
	return r.DistrictsByID[label]
}

// RegionAt returns the partition region holding x,y (or nil).
func (r *Result) RegionAt(x, y int) *Region {
	label := r.labels.At(x, y)
	if label < 0 {
		return nil
	}
	return r.Regions[label]
}

// Pixel converts a world coordinate to a pixel
func (r *Result) Pixel(wx, wy float64) image.Point {
	return r.tr.Pixel(wx, wy)
}

// World returns the world coordinate at the centre of pixel x,y
func (r *Result) World(x, y int) (float64, float64) {
	return r.tr.World(x, y)
}
