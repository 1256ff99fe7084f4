package citylayout

import (
	"image"
	"image/color"
	"runtime"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"
	"golang.org/x/sync/errgroup"

	"github.com/voidshard/citylayout/internal/encoding"
	"github.com/voidshard/citylayout/internal/raster"
)

// ColourScheme defines how various features in a city should be coloured.
type ColourScheme struct {
	Outside color.Color
	Borders color.Color
	Streets color.Color

	// MainRoads are drawn as lines over the traced district borders,
	// nil to skip
	MainRoads     color.Color
	MainRoadWidth float64

	// Districts by type name, types not listed use their own colour
	Districts map[string]color.Color
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Outside:       color.Transparent,
		Borders:       colornames.Dimgray,
		Streets:       colornames.Darkgray,
		MainRoads:     colornames.Black,
		MainRoadWidth: 2,
		Districts:     map[string]color.Color{},
	}
}

// colourOf returns the colour for a district's type
func (s *ColourScheme) colourOf(d *District) color.Color {
	if d == nil {
		return s.Borders
	}
	if c, ok := s.Districts[d.Type.Name]; ok {
		return c
	}
	return d.Type.Colour
}

// Image returns the city coloured with the given scheme (DefaultScheme if nil)
func (r *Result) Image(scheme *ColourScheme) *image.RGBA {
	if scheme == nil {
		scheme = DefaultScheme()
	}

	im := image.NewRGBA(image.Rect(0, 0, r.Size, r.Size))

	// each row writes its own span of im.Pix
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < r.Size; y++ {
		y := y
		eg.Go(func() error {
			for x := 0; x < r.Size; x++ {
				label := r.labels.At(x, y)
				switch {
				case label == raster.Outside:
					im.Set(x, y, scheme.Outside)
				case label == raster.Border && r.IsStreet(x, y):
					im.Set(x, y, scheme.Streets)
				case label == raster.Border:
					im.Set(x, y, scheme.Borders)
				default:
					im.Set(x, y, scheme.colourOf(r.DistrictsByID[label]))
				}
			}
			return nil
		})
	}
	_ = eg.Wait()

	if scheme.MainRoads != nil && len(r.MainRoads) > 0 {
		drawBorders(im, r.MainRoads, scheme.MainRoads, scheme.MainRoadWidth)
	}

	return im
}

// PixelBuffer returns the coloured city as raw RGBA bytes, 4 per pixel,
// row by row (size * size * 4 in total).
func (r *Result) PixelBuffer(scheme *ColourScheme) []byte {
	return r.Image(scheme).Pix
}

// SavePNG writes the coloured city to disk
func (r *Result) SavePNG(fpath string, scheme *ColourScheme) error {
	return gg.SavePNG(fpath, r.Image(scheme))
}

// LabelImage returns a lossless picking image. Each pixel holds
//
//	R,G [32 bits] -> raster label (district id, border or outside), see LabelFromImage
//	B   [16 bits] -> district type id + 1, 0 if none
//	A   [16 bits] -> always opaque
func (r *Result) LabelImage() *image.RGBA64 {
	im := image.NewRGBA64(image.Rect(0, 0, r.Size, r.Size))
	for y := 0; y < r.Size; y++ {
		for x := 0; x < r.Size; x++ {
			label := r.labels.At(x, y)
			hi, lo := encoding.PackLabel(label)

			v := color.RGBA64{R: hi, G: lo, A: 0xffff}
			if d := r.DistrictsByID[label]; d != nil {
				v.B = uint16(d.Type.ID + 1)
			}
			im.SetRGBA64(x, y, v)
		}
	}
	return im
}

// LabelFromImage reads a label written by LabelImage. Negative values are
// borders (-1) or outside the city (-2).
func LabelFromImage(im *image.RGBA64, x, y int) int {
	if !image.Pt(x, y).In(im.Bounds()) {
		return raster.Outside
	}
	v := im.RGBA64At(x, y)
	return encoding.UnpackLabel(v.R, v.G)
}

// TypeFromImage reads the district type written by LabelImage, nil for
// borders & pixels outside the city.
func (r *Result) TypeFromImage(im *image.RGBA64, x, y int) *DistrictType {
	if !image.Pt(x, y).In(im.Bounds()) {
		return nil
	}
	return r.catalog.Get(int(im.RGBA64At(x, y).B) - 1)
}

// drawBorders strokes each border's polyline onto im
func drawBorders(im *image.RGBA, borders []*Border, col color.Color, width float64) {
	ctx := gg.NewContextForRGBA(im)
	ctx.SetColor(col)
	ctx.SetLineWidth(width)
	ctx.SetLineCapRound()
	ctx.SetLineJoinRound()

	for _, b := range borders {
		if b.Start == b.End && len(b.Points) == 0 {
			continue
		}
		for i, p := range b.Polyline() {
			if i == 0 {
				ctx.MoveTo(float64(p.X)+0.5, float64(p.Y)+0.5)
			} else {
				ctx.LineTo(float64(p.X)+0.5, float64(p.Y)+0.5)
			}
		}
		ctx.Stroke()
	}
}
