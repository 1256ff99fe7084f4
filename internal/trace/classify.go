package trace

import (
	"image"
	"sort"

	"github.com/voidshard/citylayout/internal/raster"
)

// Kind is what the pixels left around a walker tell us about where we are.
type Kind int

const (
	// NotASplit we're somewhere along a line, keep walking
	NotASplit Kind = iota

	// SplitA four or more ways out
	SplitA

	// SplitB three ways out, at least one not touching the others
	SplitB

	// SplitC two ways out that don't touch, neither of which is a spur
	SplitC

	// DeadEnd nowhere left to go
	DeadEnd
)

func (k Kind) String() string {
	switch k {
	case SplitA:
		return "split-a"
	case SplitB:
		return "split-b"
	case SplitC:
		return "split-c"
	case DeadEnd:
		return "dead-end"
	}
	return "not-a-split"
}

// IsSplit returns if this is a junction that ends the current edge
func (k Kind) IsSplit() bool {
	return k == SplitA || k == SplitB || k == SplitC
}

// classify decides the Kind given the remaining (unvisited border) pixels
// around the walker.
func (t *tracer) classify(rem []image.Point) Kind {
	switch len(rem) {
	case 0:
		return DeadEnd
	case 1:
		return NotASplit
	case 2:
		if raster.Adjacent8(rem[0], rem[1]) {
			return NotASplit
		}
		if t.deadEnd(rem[0], rem) || t.deadEnd(rem[1], rem) {
			return NotASplit
		}
		return SplitC
	case 3:
		for i := range rem {
			if isolated(rem, i) {
				return SplitB
			}
		}
		return NotASplit
	}
	return SplitA
}

// isolated returns if rem[i] touches none of the others
func isolated(rem []image.Point, i int) bool {
	for j := range rem {
		if i != j && raster.Adjacent8(rem[i], rem[j]) {
			return false
		}
	}
	return true
}

// branches picks one pixel from each connected group of `rem` to start a new
// edge from. Within a group we prefer an end (a pixel with one neighbour in
// the group), falling back to the first, which is orthogonal where possible.
func branches(rem []image.Point) []image.Point {
	group := make([]int, len(rem))
	for i := range group {
		group[i] = -1
	}

	out := []image.Point{}
	for i := range rem {
		if group[i] >= 0 {
			continue
		}

		// collect the group i belongs to
		members := []int{i}
		group[i] = i
		for k := 0; k < len(members); k++ {
			for j := range rem {
				if group[j] < 0 && raster.Adjacent8(rem[members[k]], rem[j]) {
					group[j] = i
					members = append(members, j)
				}
			}
		}

		sort.Ints(members)
		pick := members[0]
		for _, m := range members {
			if inGroup(rem, members, m) == 1 {
				pick = m
				break
			}
		}
		out = append(out, rem[pick])
	}
	return out
}

// inGroup counts how many other members touch rem[m]
func inGroup(rem []image.Point, members []int, m int) int {
	count := 0
	for _, o := range members {
		if o != m && raster.Adjacent8(rem[o], rem[m]) {
			count++
		}
	}
	return count
}
