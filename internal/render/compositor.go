package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/clone"

	"github.com/ironsheep/thermal-fusion/internal/imaging"
)

// FadeOpacity is the thermal weight used where a masked mode selects a pixel.
const FadeOpacity = 0.5

// Included reports whether temperature t is selected by mode. ThresholdFade
// selects t > threshold; RangeOverlay selects Lower <= t <= Upper. Other
// modes select nothing.
func Included(mode DisplayMode, p Parameters, t float64) bool {
	switch mode {
	case ModeThresholdFade:
		return t > p.Threshold
	case ModeRangeOverlay:
		return t >= p.Lower && t <= p.Upper
	default:
		return false
	}
}

// Compositor fuses visible frames with the shared thermal state at a fixed
// output resolution. It holds no mutable state and is safe for concurrent
// use.
type Compositor struct {
	width     int
	height    int
	crosshair imaging.CrosshairStyle
	textColor color.Color
}

// NewCompositor creates a compositor producing width×height frames.
func NewCompositor(width, height int, crosshair imaging.CrosshairStyle) *Compositor {
	return &Compositor{
		width:     width,
		height:    height,
		crosshair: crosshair,
		textColor: color.White,
	}
}

// Size returns the output resolution.
func (c *Compositor) Size() (width, height int) {
	return c.width, c.height
}

// Compose returns the decorated output frame for one render cycle.
func (c *Compositor) Compose(visible image.Image, snap Snapshot) *image.RGBA {
	return c.Decorate(c.Blend(visible, snap), snap)
}

// Blend returns the undecorated composite of visible and snap.Thermal for
// snap.Mode. The visible frame is conformed to the output resolution first.
// Neither input is modified.
func (c *Compositor) Blend(visible image.Image, snap Snapshot) *image.RGBA {
	base := clone.AsRGBA(imaging.Conform(visible, c.width, c.height))
	thermal := c.usable(snap.Thermal)

	switch snap.Mode {
	case ModeThermalOnly:
		if thermal == nil {
			return clone.AsRGBA(imaging.Blank(c.width, c.height, color.Black))
		}
		return clone.AsRGBA(thermal.Image)

	case ModeThresholdFade, ModeRangeOverlay:
		if thermal == nil {
			return base
		}
		mixed := blend.Opacity(base, thermal.Image, FadeOpacity)
		temps := thermal.Temps
		for y := 0; y < c.height; y++ {
			for x := 0; x < c.width; x++ {
				if !Included(snap.Mode, snap.Params, temps.At(x, y)) {
					continue
				}
				i := base.PixOffset(x, y)
				copy(base.Pix[i:i+4], mixed.Pix[i:i+4])
			}
		}
		return base

	default:
		return base
	}
}

// usable returns a if its image and temperature field match the output
// resolution, nil otherwise.
func (c *Compositor) usable(a *imaging.Aligned) *imaging.Aligned {
	if a == nil || a.Image == nil || a.Temps == nil {
		return nil
	}
	b := a.Image.Bounds()
	if b != image.Rect(0, 0, c.width, c.height) {
		return nil
	}
	if a.Temps.Width != c.width || a.Temps.Height != c.height {
		return nil
	}
	return a
}

// Decorate draws the crosshair and the readouts onto a copy of base: the
// centre-cell temperature next to the crosshair, the threshold and mode name
// along the top, and in RangeOverlay the two limits.
func (c *Compositor) Decorate(base image.Image, snap Snapshot) *image.RGBA {
	cx, cy := c.width/2, c.height/2
	marked := imaging.DrawCrosshair(base, cx, cy, c.crosshair)

	center := "--.-C"
	if snap.Thermal != nil && snap.Thermal.Raw != nil {
		center = fmt.Sprintf("%.1fC", snap.Thermal.Raw.Center())
	}

	labels := []imaging.Label{
		{
			Text:  center,
			X:     float64(cx + c.crosshair.Size + 4),
			Y:     float64(cy - 4),
			Color: c.crosshair.Color,
		},
		{Text: fmt.Sprintf("Set: %gC", snap.Params.Threshold), X: 10, Y: 20, Color: c.textColor},
		{Text: snap.Mode.Label(), X: float64(c.width - 10), Y: 20, AnchorX: 1, Color: c.textColor},
	}
	if snap.Mode == ModeRangeOverlay {
		labels = append(labels,
			imaging.Label{Text: fmt.Sprintf("Lower: %gC", snap.Params.Lower), X: 10, Y: 38, Color: c.textColor},
			imaging.Label{Text: fmt.Sprintf("Upper: %gC", snap.Params.Upper), X: 10, Y: 56, Color: c.textColor},
		)
	}
	return imaging.DrawLabels(marked, labels)
}
