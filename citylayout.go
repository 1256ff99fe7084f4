// Package citylayout lays out the districts, roads & lots of a city inside a
// circular boundary.
//
// A generation pass runs, in order:
//   - candidate sampling inside the boundary
//   - placement of district types by suitability
//   - a (optionally distorted) voronoi partition of a raster grid
//   - tracing of district borders into a graph (main roads)
//   - growing streets inside each district with an L-system
//   - tracing of all borders again (streets)
//   - cutting districts into lots
package citylayout

import (
	"context"
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/voidshard/citylayout/internal/lot"
	"github.com/voidshard/citylayout/internal/lsystem"
	"github.com/voidshard/citylayout/internal/raster"
	"github.com/voidshard/citylayout/internal/region"
	"github.com/voidshard/citylayout/internal/sample"
	"github.com/voidshard/citylayout/internal/trace"
	"github.com/voidshard/citylayout/internal/voronoi"
)

var (
	// ErrNoDistricts implies we could not place a single district, so there
	// is nothing to partition.
	ErrNoDistricts = errors.New("no districts placed")

	// ErrNoTraceStart implies no border pixel meets the boundary. Tracing is
	// skipped (with a warning) when this happens.
	ErrNoTraceStart = trace.ErrNoStart
)

// Option configures a Generator
type Option func(*Generator)

// WithLogger sets the logger, otherwise log.Default() is used
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// WithOutline restricts lots to land the outline says can be built on
func WithOutline(o Outline) Option {
	return func(g *Generator) {
		g.outline = o
	}
}

// Generator builds cities from a Config. Each call to Generate is an
// independent pass.
type Generator struct {
	cfg     *Config
	cat     *Catalog
	log     *log.Logger
	outline Outline
}

// New validates configuration & registers district types.
func New(cfg *Config, opts ...Option) (*Generator, error) {
	if cfg == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "nil config")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cat, err := NewCatalog(cfg.Types)
	if err != nil {
		return nil, err
	}

	g := &Generator{cfg: cfg, cat: cat, log: log.Default()}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

// Catalog returns the registered district types
func (g *Generator) Catalog() *Catalog {
	return g.cat
}

// Generate runs a full generation pass.
// Recoverable problems are logged & returned in Result.Warnings; an error is
// only returned if nothing sensible could be built (or ctx is cancelled).
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	gen := newGeneration(g.cfg, g.cat, g.log)
	gen.log.Info("generating city", "seed", g.cfg.Seed, "size", g.cfg.GridSize, "districts", g.cfg.Districts)
	begin := time.Now()

	res := &Result{
		Run:           gen.run,
		Seed:          g.cfg.Seed,
		Size:          g.cfg.GridSize,
		Boundary:      g.cfg.Boundary,
		DistrictsByID: map[int]*District{},
		Regions:       map[int]*Region{},
		Lots:          map[int][]*Lot{},
		Unmerged:      []*Lot{},
		catalog:       g.cat,
		tr:            gen.tr,
	}

	// 1. candidates
	done := gen.stage(StageSample)
	lo, hi := g.cat.Bounds()
	disk := sample.Disk{Center: gen.centre(), Radius: g.cfg.Boundary.Radius}
	candidates := sample.SampleN(gen.rng, disk, clampint(g.cfg.Districts, lo, hi), g.cfg.RejectionAttempts)
	done("candidates", len(candidates))

	// 2. districts
	done = gen.stage(StagePlace)
	res.Districts = gen.place(candidates)
	for _, d := range res.Districts {
		res.DistrictsByID[d.ID] = d
	}
	done("districts", len(res.Districts))
	if len(res.Districts) == 0 {
		return nil, ErrNoDistricts
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3. partition
	done = gen.stage(StagePartition)
	m, regions, err := gen.partition(res.Districts)
	if err != nil {
		return nil, err
	}
	for label, r := range regions {
		res.Regions[label] = &Region{ID: label, District: label, Pixels: r.Pixels}
	}
	res.labels = m
	done("regions", len(regions))

	// 4. main roads, from the untouched partition
	done = gen.stage(StageMainRoads)
	res.MainRoads = gen.traceBorders(StageMainRoads, m)
	done("edges", len(res.MainRoads))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 5. streets
	done = gen.stage(StageStreets)
	res.streets, err = gen.streets(ctx, m, res.DistrictsByID)
	if err != nil {
		return nil, err
	}
	res.Streets = gen.traceBorders(StageStreets, m)
	done("pixels", res.streets.Len(), "edges", len(res.Streets))

	// 6. lots
	done = gen.stage(StageLots)
	res.Lots, res.Unmerged = gen.lots(m, res.DistrictsByID, g.outline)
	done("unmerged", len(res.Unmerged))

	res.Warnings = gen.warnings
	gen.log.Info("city generated", "took", time.Since(begin).Round(time.Millisecond), "warnings", len(res.Warnings))
	return res, nil
}

// stage logs the start of a stage & returns a func to log it's end
func (g *generation) stage(name string) func(kv ...interface{}) {
	start := time.Now()
	g.log.Debug("stage started", "stage", name)
	return func(kv ...interface{}) {
		kv = append([]interface{}{"stage", name, "took", time.Since(start).Round(time.Millisecond)}, kv...)
		g.log.Debug("stage finished", kv...)
	}
}

// partition the grid between placed districts, labels are district ids
func (g *generation) partition(districts []*District) (*raster.Map, map[int]*raster.Region, error) {
	if !g.placed {
		return nil, nil, errors.New("partition requested before placement")
	}

	seeds := make([]voronoi.Seed, len(districts))
	for i, d := range districts {
		seeds[i] = voronoi.Seed{Pos: d.Site, Label: d.ID}
	}

	m, regions, err := voronoi.Partition(g.rng, g.tr, seeds, g.cfg.DistortionPoints)
	if err != nil {
		return nil, nil, errors.Wrap(err, "partitioning districts")
	}
	g.partitioned = true
	return m, regions, nil
}

// traceBorders traces m, logging a warning & returning nothing if there is
// nowhere to start.
func (g *generation) traceBorders(stage string, m *raster.Map) []*Border {
	found, err := trace.Auto(m, g.cfg.TraceSegmentLength)
	if err != nil {
		g.warn(stage, "skipping border trace (segment length %d): %v", g.cfg.TraceSegmentLength, err)
		return []*Border{}
	}

	return found
}

// streets grows an L-system in every region in parallel & writes the result
// into m as border pixels. A region that fails is reported & left as is.
func (g *generation) streets(ctx context.Context, m *raster.Map, byID map[int]*District) (*raster.PixelSet, error) {
	if !g.partitioned {
		return nil, errors.New("streets requested before partition")
	}

	size := m.Size()
	regions := region.Extract(m, 0)
	drawn := raster.NewPixelSet(size)
	settings := lsystem.Settings{
		Axiom:         g.cfg.LSystem.Axiom,
		Angle:         g.cfg.LSystem.Angle,
		SegmentLength: g.cfg.LSystem.SegmentLength,
		RoadWidth:     g.cfg.RoadWidth,
		MaxIterations: g.cfg.LSystem.MaxIterations,
	}

	var lock sync.Mutex
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for _, r := range regions {
		r := r
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := r.Centroid()
			if d, ok := byID[r.Label]; ok {
				r.Index(size)
				if r.Contains(d.Pixel) {
					start = d.Pixel
				}
			}

			pixels, err := drawStreets(r, size, start, settings)
			if err != nil {
				g.warn(StageStreets, "region %d (district %d) from (%d,%d): %v", r.ID, r.Label, start.X, start.Y, err)
				return nil
			}

			lock.Lock()
			defer lock.Unlock()
			for _, p := range pixels {
				if m.At(p.X, p.Y) == raster.Outside {
					continue
				}
				m.Set(p.X, p.Y, raster.Border)
				drawn.Add(p)
			}
			return nil
		})
	}

	return drawn, eg.Wait()
}

// drawStreets runs the L-system for one region, turning a panic into an error
func drawStreets(r *raster.Region, size int, start image.Point, s lsystem.Settings) (pixels []image.Point, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Errorf("panic: %v", rec)
		}
	}()
	return lsystem.Generate(r, size, start, s)
}

// lots cuts each (inset) region into lots sized for its district type
func (g *generation) lots(m *raster.Map, byID map[int]*District, outline Outline) (map[int][]*Lot, []*Lot) {
	out := map[int][]*Lot{}
	unmerged := []*Lot{}

	for _, r := range region.Extract(m, g.cfg.LotInset) {
		d, ok := byID[r.Label]
		if !ok {
			continue
		}
		if outline != nil {
			r = buildable(r, outline)
		}

		valid, rest, err := lot.Subdivide(r, g.cfg.MinBlockSize, d.Type.MinLotArea)
		if err != nil {
			g.warn(StageLots, "region %d (district %d): %v", r.ID, d.ID, err)
			continue
		}
		for _, l := range valid {
			out[d.ID] = append(out[d.ID], &Lot{Region: r.ID, District: d.ID, Pixels: l.Pixels, Valid: true})
		}
		for _, l := range rest {
			unmerged = append(unmerged, &Lot{Region: r.ID, District: d.ID, Pixels: l.Pixels})
		}
	}

	if len(unmerged) > 0 {
		g.warn(StageLots, "%d undersized blocks could not be merged (min block size %d)", len(unmerged), g.cfg.MinBlockSize)
	}
	return out, unmerged
}

// buildable returns a copy of r holding only pixels the outline allows
func buildable(r *raster.Region, o Outline) *raster.Region {
	out := raster.NewRegion(r.ID, r.Label)
	for _, p := range r.Pixels {
		if o.CanBuildOn(p.X, p.Y) {
			out.Add(p)
		}
	}
	return out
}
