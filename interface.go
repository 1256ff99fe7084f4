package citylayout

// Outline tells citylayout roughly what is at a given pixel.
// Anything not buildable (rivers, cliffs, whatever) is kept out of lots but
// still belongs to a district.
type Outline interface {
	// true if we can place buildings on this space
	CanBuildOn(x, y int) bool
}
