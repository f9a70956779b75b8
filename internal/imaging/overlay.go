package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"
)

// CrosshairStyle describes the centre marker drawn on every output frame.
type CrosshairStyle struct {
	Gap       int         // empty radius around the centre, in pixels
	Size      int         // distance from the centre to the end of each arm
	Thickness float64     // stroke width
	Color     color.Color // stroke colour
	Opacity   float64     // blend factor against the frame (0-1)
}

// DefaultCrosshairStyle returns a half-transparent yellow crosshair.
func DefaultCrosshairStyle() CrosshairStyle {
	return CrosshairStyle{
		Gap:       10,
		Size:      20,
		Thickness: 2,
		Color:     color.RGBA{255, 255, 0, 255},
		Opacity:   0.5,
	}
}

// DrawCrosshair blends a crosshair centred on (cx, cy) into img.
//
// The four arms are stroked opaque onto a transparent layer which is then laid
// over img with the style's opacity, so the frame shows through the marker.
func DrawCrosshair(img image.Image, cx, cy int, s CrosshairStyle) *image.NRGBA {
	extent := s.Size + int(math.Ceil(s.Thickness))
	side := 2*extent + 1
	c := float64(extent) + 0.5

	dc := gg.NewContext(side, side)
	dc.SetColor(s.Color)
	dc.SetLineWidth(s.Thickness)

	gap, size := float64(s.Gap), float64(s.Size)
	dc.DrawLine(c-size, c, c-gap, c)
	dc.DrawLine(c+gap, c, c+size, c)
	dc.DrawLine(c, c-size, c, c-gap)
	dc.DrawLine(c, c+gap, c, c+size)
	dc.Stroke()

	return imaging.Overlay(img, dc.Image(), image.Pt(cx-extent, cy-extent), s.Opacity)
}

// Label is a line of text drawn on the output frame.
type Label struct {
	Text string
	X, Y float64 // baseline anchor position
	// AnchorX aligns the text horizontally: 0 left, 0.5 centre, 1 right.
	AnchorX float64
	Color   color.Color
}

// DrawLabels renders the labels onto a copy of img using a fixed 7x13 bitmap
// face.
func DrawLabels(img image.Image, labels []Label) *image.RGBA {
	dc := gg.NewContextForImage(img)
	dc.SetFontFace(basicfont.Face7x13)
	for _, l := range labels {
		dc.SetColor(l.Color)
		dc.DrawStringAnchored(l.Text, l.X, l.Y, l.AnchorX, 0)
	}
	return dc.Image().(*image.RGBA)
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA" (the "#" is optional). The
// alpha component is not premultiplied.
func ParseHexColor(hex string) (color.NRGBA, error) {
	digits := strings.TrimPrefix(hex, "#")
	alpha := uint8(255)
	switch len(digits) {
	case 6:
	case 8:
		a, err := strconv.ParseUint(digits[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in colour %q: %w", hex, err)
		}
		alpha = uint8(a)
		digits = digits[:6]
	default:
		return color.NRGBA{}, fmt.Errorf("colour %q must be #RRGGBB or #RRGGBBAA", hex)
	}

	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}
