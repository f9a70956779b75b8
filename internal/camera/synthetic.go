package camera

import (
	"context"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/fogleman/gg"
)

// Synthetic draws a simple scene: a sky gradient over a floor, with a
// person-sized block sweeping left and right once every few seconds.
type Synthetic struct {
	width  int
	height int
	period time.Duration
	clock  clock.Clock
	start  time.Time
}

// NewSynthetic creates a width×height synthetic camera driven by clk.
func NewSynthetic(width, height int, clk clock.Clock) *Synthetic {
	return &Synthetic{
		width:  width,
		height: height,
		period: 6 * time.Second,
		clock:  clk,
		start:  clk.Now(),
	}
}

// Capture renders the scene at the current clock time.
func (s *Synthetic) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, h := float64(s.width), float64(s.height)
	dc := gg.NewContext(s.width, s.height)

	sky := gg.NewLinearGradient(0, 0, 0, h*0.6)
	sky.AddColorStop(0, color.RGBA{90, 140, 200, 255})
	sky.AddColorStop(1, color.RGBA{190, 210, 230, 255})
	dc.SetFillStyle(sky)
	dc.DrawRectangle(0, 0, w, h*0.6)
	dc.Fill()

	dc.SetColor(color.RGBA{110, 100, 80, 255})
	dc.DrawRectangle(0, h*0.6, w, h*0.4)
	dc.Fill()

	phase := 2 * math.Pi * float64(s.clock.Since(s.start)) / float64(s.period)
	bx := w/2 + w/3*math.Sin(phase)
	dc.SetColor(color.RGBA{200, 80, 60, 255})
	dc.DrawRoundedRectangle(bx-w/20, h*0.3, w/10, h*0.45, w/80)
	dc.Fill()

	return dc.Image(), nil
}

// Close does nothing.
func (s *Synthetic) Close() error {
	return nil
}
