package citylayout

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/citylayout/internal/raster"
)

// generation holds all state for a single pass. Nothing here outlives the
// pass, so separate runs never share counters.
type generation struct {
	run string
	cfg *Config
	cat *Catalog

	rng *rand.Rand
	log *log.Logger
	tr  raster.Transform

	nextID int

	// set as stages complete
	placed      bool
	partitioned bool

	lock     sync.Mutex
	warnings []Warning
}

func newGeneration(cfg *Config, cat *Catalog, logger *log.Logger) *generation {
	run := uuid.New().String()
	return &generation{
		run: run,
		cfg: cfg,
		cat: cat,
		rng: rand.New(rand.NewSource(cfg.Seed)),
		log: logger.With("run", run),
		tr: raster.Transform{
			Size:    cfg.GridSize,
			CenterX: cfg.Boundary.X,
			CenterY: cfg.Boundary.Y,
			Radius:  cfg.Boundary.Radius,
		},
		warnings: []Warning{},
	}
}

// newID returns the next district id
func (g *generation) newID() int {
	id := g.nextID
	g.nextID++
	return id
}

// centre of the boundary
func (g *generation) centre() model2d.Coord {
	return model2d.Coord{X: g.cfg.Boundary.X, Y: g.cfg.Boundary.Y}
}

// warn logs & records a recoverable problem. Safe to call from workers.
func (g *generation) warn(stage, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	g.log.Warn(msg, "stage", stage)

	g.lock.Lock()
	defer g.lock.Unlock()
	g.warnings = append(g.warnings, Warning{Stage: stage, Message: msg})
}
