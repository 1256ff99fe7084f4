// Package lot cuts a region into roughly square building lots.
package lot

import (
	"image"

	"github.com/pkg/errors"

	"github.com/voidshard/citylayout/internal/raster"
)

// ErrBlockSize is returned for a non positive block size
var ErrBlockSize = errors.New("min block size must be > 0")

// Lot is a set of pixels making up one plot of land
type Lot struct {
	// Origin is the top left corner of the grid bin the lot started as
	Origin image.Point
	Pixels []image.Point

	// Valid is set when the lot reaches the minimum area
	Valid bool

	// Absorbed counts how many undersized blocks were merged in
	Absorbed int
}

// Len returns the pixel count
func (l *Lot) Len() int {
	return len(l.Pixels)
}

// Subdivide bins the region's bounding box into blocks of minBlockSize, then
// keeps blocks of at least minLotArea pixels as lots. Smaller blocks are
// merged into the first (in block order) lot they touch.
// Blocks that touch no lot are returned as unmerged & marked invalid.
func Subdivide(region *raster.Region, minBlockSize, minLotArea int) ([]*Lot, []*Lot, error) {
	if minBlockSize <= 0 {
		return nil, nil, errors.Wrapf(ErrBlockSize, "got %d", minBlockSize)
	}
	if region == nil || region.Len() == 0 {
		return []*Lot{}, []*Lot{}, nil
	}

	blocks := bin(region, minBlockSize)

	lots := []*Lot{}
	owner := map[image.Point]*Lot{}
	leftover := []*Lot{}

	for _, b := range blocks {
		if b.Len() >= minLotArea {
			b.Valid = true
			lots = append(lots, b)
			claim(owner, b, b.Pixels)
			continue
		}
		if !merge(owner, lots, b) {
			leftover = append(leftover, b)
		}
	}

	// leftovers that came before their neighbours get another go
	unmerged := []*Lot{}
	for _, b := range leftover {
		if !merge(owner, lots, b) {
			unmerged = append(unmerged, b)
		}
	}

	return lots, unmerged, nil
}

// bin groups region pixels by grid cell, ordered by cell column then row.
func bin(region *raster.Region, size int) []*Lot {
	bnds := region.Bounds()
	cols := (bnds.Dx() + size - 1) / size
	rows := (bnds.Dy() + size - 1) / size

	cells := make([]*Lot, cols*rows)
	for _, p := range region.Pixels {
		cx := (p.X - bnds.Min.X) / size
		cy := (p.Y - bnds.Min.Y) / size
		i := cx*rows + cy
		if cells[i] == nil {
			cells[i] = &Lot{
				Origin: image.Pt(bnds.Min.X+cx*size, bnds.Min.Y+cy*size),
				Pixels: []image.Point{},
			}
		}
		cells[i].Pixels = append(cells[i].Pixels, p)
	}

	blocks := []*Lot{}
	for _, c := range cells {
		if c != nil {
			blocks = append(blocks, c)
		}
	}
	return blocks
}

// merge adds b to the earliest lot that it shares an edge with
func merge(owner map[image.Point]*Lot, lots []*Lot, b *Lot) bool {
	order := map[*Lot]int{}
	for i, l := range lots {
		order[l] = i
	}

	var target *Lot
	for _, p := range b.Pixels {
		for _, d := range raster.Neighbours4 {
			l, ok := owner[p.Add(d)]
			if !ok {
				continue
			}
			if target == nil || order[l] < order[target] {
				target = l
			}
		}
	}
	if target == nil {
		return false
	}

	target.Pixels = append(target.Pixels, b.Pixels...)
	target.Absorbed++
	claim(owner, target, b.Pixels)
	return true
}

func claim(owner map[image.Point]*Lot, l *Lot, pixels []image.Point) {
	for _, p := range pixels {
		owner[p] = l
	}
}
