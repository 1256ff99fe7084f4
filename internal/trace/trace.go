// Package trace walks the border pixels of a raster.Map & turns them into a
// graph of polylines running between junctions ("split marks").
package trace

import (
	"image"

	"github.com/pkg/errors"

	"github.com/voidshard/citylayout/internal/raster"
)

var (
	// ErrNoStart implies no border pixel touches the outside of the disk, so
	// we have nowhere sensible to begin.
	ErrNoStart = errors.New("no border pixel adjacent to outside")

	// ErrNotBorder is returned if asked to start tracing from a non border pixel
	ErrNotBorder = errors.New("start point is not a border pixel")
)

// Border is one edge of the traced graph.
type Border struct {
	Start image.Point

	// Points are samples taken every `segment` steps between Start & End
	Points []image.Point

	End image.Point

	// Pixels are all border pixels claimed by this edge, in walk order
	Pixels []image.Point
}

// Polyline returns Start, Points..., End
func (b *Border) Polyline() []image.Point {
	out := make([]image.Point, 0, len(b.Points)+2)
	out = append(out, b.Start)
	out = append(out, b.Points...)
	return append(out, b.End)
}

// ToTrace is a pending unit of work: an edge leaving Start through Next.
// Next is nil when there is nowhere to go from Start (a lone pixel).
type ToTrace struct {
	Start image.Point
	Next  *image.Point

	root bool // Start was never claimed by another edge
}

// FindStart returns the first border pixel (row-major) that touches an
// outside pixel, ie. where a border meets the outer ring.
func FindStart(m *raster.Map) (image.Point, error) {
	size := m.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if !m.IsBorder(x, y) {
				continue
			}
			for _, d := range raster.Neighbours8 {
				if m.At(x+d.X, y+d.Y) == raster.Outside {
					return image.Pt(x, y), nil
				}
			}
		}
	}
	return image.Point{}, ErrNoStart
}

// Auto finds a start with FindStart & traces from it.
func Auto(m *raster.Map, segment int) ([]*Border, error) {
	start, err := FindStart(m)
	if err != nil {
		return nil, err
	}
	return Trace(m, start, segment)
}

// Trace walks every border pixel of m, beginning at start, & returns the
// edges found. Edges are expanded breadth first from start; once the queue
// runs dry any border pixels not yet reached (disconnected fragments) are
// traced too, so every border pixel belongs to exactly one edge.
func Trace(m *raster.Map, start image.Point, segment int) ([]*Border, error) {
	if !m.IsBorder(start.X, start.Y) {
		return nil, errors.Wrapf(ErrNotBorder, "(%d,%d)", start.X, start.Y)
	}
	if segment < 1 {
		segment = 1
	}

	t := &tracer{
		m:       m,
		visited: raster.NewPixelSet(m.Size()),
		segment: segment,
		queue:   []ToTrace{},
		borders: []*Border{},
	}

	t.root(start)
	t.drain()

	size := m.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := image.Pt(x, y)
			if !m.IsBorder(x, y) || t.visited.Has(p) {
				continue
			}
			t.root(p)
			t.drain()
		}
	}

	return t.borders, nil
}

type tracer struct {
	m       *raster.Map
	visited *raster.PixelSet
	segment int
	queue   []ToTrace
	borders []*Border
}

// root claims p as the start of a new tree of edges
func (t *tracer) root(p image.Point) {
	t.visited.Add(p)
	rem := t.remaining(p)
	if len(rem) == 0 {
		t.queue = append(t.queue, ToTrace{Start: p, root: true})
		return
	}
	t.branch(p, rem, true)
}

// drain processes the FIFO queue until empty
func (t *tracer) drain() {
	for len(t.queue) > 0 {
		job := t.queue[0]
		t.queue = t.queue[1:]
		t.walk(job)
	}
}

// branch enqueues one edge per group of remaining neighbours around a junction
func (t *tracer) branch(at image.Point, rem []image.Point, root bool) {
	for i, next := range branches(rem) {
		next := next
		t.visited.Add(next) // reserve so no other walk takes it
		t.queue = append(t.queue, ToTrace{Start: at, Next: &next, root: root && i == 0})
	}
}

// walk follows a single edge until it reaches a split mark or runs out of
// pixels.
func (t *tracer) walk(job ToTrace) {
	b := &Border{Start: job.Start, Points: []image.Point{}, Pixels: []image.Point{}}
	if job.root {
		b.Pixels = append(b.Pixels, job.Start)
	}
	t.borders = append(t.borders, b)

	if job.Next == nil {
		b.End = job.Start
		return
	}

	cur := *job.Next
	b.Pixels = append(b.Pixels, cur)
	for steps := 1; ; steps++ {
		rem := t.remaining(cur)

		switch kind := t.classify(rem); kind {
		case DeadEnd:
			b.End = cur
			return
		case SplitA, SplitB, SplitC:
			b.End = cur
			t.branch(cur, rem, false)
			return
		}

		if steps%t.segment == 0 {
			b.Points = append(b.Points, cur)
		}

		next, absorbed := t.advance(rem)
		b.Pixels = append(b.Pixels, absorbed...)
		b.Pixels = append(b.Pixels, next)
		cur = next
	}
}

// advance picks where a non-split walk goes next. Neighbours that are dead
// ends (single pixel spurs) are absorbed into the current edge.
// Returns the chosen pixel & any absorbed ones, all marked visited.
func (t *tracer) advance(rem []image.Point) (image.Point, []image.Point) {
	dead := make([]bool, len(rem))
	choice := -1
	for i, r := range rem {
		dead[i] = t.deadEnd(r, rem)
		if choice < 0 && !dead[i] {
			choice = i
		}
	}
	if choice < 0 {
		choice = 0
	}

	absorbed := []image.Point{}
	for i, r := range rem {
		if i != choice && dead[i] {
			t.visited.Add(r)
			absorbed = append(absorbed, r)
		}
	}

	t.visited.Add(rem[choice])
	return rem[choice], absorbed
}

// remaining returns unvisited border pixels around p, orthogonal first.
func (t *tracer) remaining(p image.Point) []image.Point {
	rem := []image.Point{}
	for _, d := range raster.Neighbours8 {
		n := p.Add(d)
		if t.m.IsBorder(n.X, n.Y) && !t.visited.Has(n) {
			rem = append(rem, n)
		}
	}
	return rem
}

// deadEnd returns if all of p's unvisited border neighbours are already in rem
// (ie. walking to p leads nowhere new).
func (t *tracer) deadEnd(p image.Point, rem []image.Point) bool {
	for _, n := range t.remaining(p) {
		if !contains(rem, n) {
			return false
		}
	}
	return true
}

func contains(in []image.Point, p image.Point) bool {
	for _, q := range in {
		if q == p {
			return true
		}
	}
	return false
}
