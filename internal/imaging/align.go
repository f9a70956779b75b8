package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// RegistrationConfig holds the rig-specific geometry that lines the thermal
// sensor up with the visible camera.
type RegistrationConfig struct {
	// SensorFOV is the thermal sensor's field of view in degrees.
	SensorFOV float64
	// DesiredFOV is the visible camera's field of view in degrees.
	DesiredFOV float64
	// OffsetX and OffsetY shift the crop centre, in grid cells, to account
	// for the mount offset between the two sensors.
	OffsetX int
	OffsetY int
	// Rotation is the clockwise correction in degrees: 0, 90, 180 or 270.
	Rotation int
	// Width and Height are the output resolution, normally the visible
	// frame's resolution.
	Width  int
	Height int
}

// Ratio returns DesiredFOV / SensorFOV.
func (c RegistrationConfig) Ratio() float64 {
	return c.DesiredFOV / c.SensorFOV
}

// Window is a rectangle of grid cells. (X0,Y0) is inclusive, (X1,Y1) exclusive.
type Window struct {
	X0, Y0 int
	X1, Y1 int
}

// Dx returns the window width in cells.
func (w Window) Dx() int { return w.X1 - w.X0 }

// Dy returns the window height in cells.
func (w Window) Dy() int { return w.Y1 - w.Y0 }

// CropWindow computes the sub-grid of a rows×cols sensor that covers the
// visible camera's field of view.
//
// The window is floor(dimension × ratio) cells wide and high (at least one
// cell, at most the whole grid), centred on the grid centre shifted by the
// calibration offset, then clamped to the grid bounds. A window pushed off
// the grid by a large offset collapses onto the nearest edge cell rather than
// becoming empty.
func CropWindow(rows, cols int, ratio float64, offsetX, offsetY int) Window {
	w := windowSize(cols, ratio)
	h := windowSize(rows, ratio)

	cx := cols/2 + offsetX
	cy := rows/2 + offsetY

	x0 := clampInt(cx-w/2, 0, cols-1)
	y0 := clampInt(cy-h/2, 0, rows-1)
	x1 := clampInt(cx-w/2+w, x0+1, cols)
	y1 := clampInt(cy-h/2+h, y0+1, rows)

	return Window{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func windowSize(dim int, ratio float64) int {
	n := int(math.Floor(float64(dim) * ratio))
	if n > dim {
		n = dim
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Aligned is a thermal frame registered onto the visible camera's pixel grid.
//
// Image and Temps always share the same resolution and were produced by the
// same mapping. Raw is the sensor grid the pair was derived from and Seq the
// capture cycle that produced it. Treat an Aligned value as read-only once it
// has been published.
type Aligned struct {
	Image *image.RGBA
	Temps *TempField
	Raw   *Grid
	Seq   uint64
}

// tap holds the two neighbouring source indices and the interpolation weight
// for one output coordinate along one axis.
type tap struct {
	i0, i1 int
	frac   float64
}

// Registration maps a thermal grid of a fixed shape onto the output
// resolution. It is immutable and safe for concurrent use.
type Registration struct {
	cfg    RegistrationConfig
	rows   int
	cols   int
	window Window
	// pre-rotation sampling size
	pw, ph int
	uTaps  []tap
	vTaps  []tap
}

// NewRegistration prepares the mapping for rows×cols grids.
//
// Returns an error if the configuration cannot produce an image: non-positive
// resolution or field of view, or a rotation other than 0, 90, 180 or 270.
func NewRegistration(cfg RegistrationConfig, rows, cols int) (*Registration, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid output resolution %dx%d", cfg.Width, cfg.Height)
	}
	if !(cfg.SensorFOV > 0) || !(cfg.DesiredFOV > 0) {
		return nil, fmt.Errorf("field of view must be positive (sensor %v, desired %v)", cfg.SensorFOV, cfg.DesiredFOV)
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid grid shape %dx%d", rows, cols)
	}

	r := &Registration{
		cfg:    cfg,
		rows:   rows,
		cols:   cols,
		window: CropWindow(rows, cols, cfg.Ratio(), cfg.OffsetX, cfg.OffsetY),
	}

	switch cfg.Rotation {
	case 0, 180:
		r.pw, r.ph = cfg.Width, cfg.Height
	case 90, 270:
		r.pw, r.ph = cfg.Height, cfg.Width
	default:
		return nil, fmt.Errorf("unsupported rotation %d (want 0, 90, 180 or 270)", cfg.Rotation)
	}

	r.uTaps = axisTaps(r.window.Dx(), r.pw)
	r.vTaps = axisTaps(r.window.Dy(), r.ph)
	return r, nil
}

// axisTaps computes bilinear taps for resampling n source samples onto out
// destination samples, with pixel centres at +0.5 on both sides.
func axisTaps(n, out int) []tap {
	taps := make([]tap, out)
	scale := float64(n) / float64(out)
	for d := 0; d < out; d++ {
		s := (float64(d)+0.5)*scale - 0.5
		if s < 0 {
			s = 0
		}
		if s > float64(n-1) {
			s = float64(n - 1)
		}
		i0 := int(math.Floor(s))
		i1 := i0 + 1
		if i1 > n-1 {
			i1 = n - 1
		}
		taps[d] = tap{i0: i0, i1: i1, frac: s - float64(i0)}
	}
	return taps
}

// Window returns the crop window in grid cells.
func (r *Registration) Window() Window {
	return r.window
}

// unrotate maps an output pixel to the pre-rotation sampling plane.
func (r *Registration) unrotate(x, y int) (u, v int) {
	switch r.cfg.Rotation {
	case 90:
		return y, r.ph - 1 - x
	case 180:
		return r.pw - 1 - x, r.ph - 1 - y
	case 270:
		return r.pw - 1 - y, x
	default:
		return x, y
	}
}

// SourceCell returns the grid cell (row, col) nearest to the sensor position
// that output pixel (x, y) samples.
func (r *Registration) SourceCell(x, y int) (row, col int) {
	u, v := r.unrotate(x, y)
	ut, vt := r.uTaps[u], r.vTaps[v]
	c := ut.i0
	if ut.frac >= 0.5 {
		c = ut.i1
	}
	rr := vt.i0
	if vt.frac >= 0.5 {
		rr = vt.i1
	}
	// sub-grid columns are mirrored
	return r.window.Y0 + rr, r.window.X1 - 1 - c
}

// Align registers a raw grid onto the output resolution.
//
// The grid is normalized with its own min/max and coloured with cm, the crop
// window is extracted and mirrored horizontally to correct the sensor's
// handedness, and then the colours and the raw temperatures are resampled
// bilinearly through the same taps and the same rotation. The returned image
// and field therefore agree pixel for pixel.
//
// Returns an error if the grid shape differs from the one the registration
// was built for.
func (r *Registration) Align(g *Grid, cm *Colormap) (*Aligned, error) {
	if g.Rows != r.rows || g.Cols != r.cols {
		return nil, fmt.Errorf("grid shape %dx%d does not match registration %dx%d", g.Rows, g.Cols, r.rows, r.cols)
	}

	colors := cm.Colorize(Normalize(g))

	// Extract the window, mirrored left-right.
	cw, ch := r.window.Dx(), r.window.Dy()
	subT := make([]float64, cw*ch)
	subC := make([]color.RGBA, cw*ch)
	for row := 0; row < ch; row++ {
		for c := 0; c < cw; c++ {
			src := (r.window.Y0+row)*g.Cols + (r.window.X1 - 1 - c)
			subT[row*cw+c] = g.Temps[src]
			subC[row*cw+c] = colors[src]
		}
	}

	w, h := r.cfg.Width, r.cfg.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	field := NewTempField(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			u, v := r.unrotate(x, y)
			ut, vt := r.uTaps[u], r.vTaps[v]

			i00 := vt.i0*cw + ut.i0
			i01 := vt.i0*cw + ut.i1
			i10 := vt.i1*cw + ut.i0
			i11 := vt.i1*cw + ut.i1

			field.Temps[y*w+x] = bilerp(subT[i00], subT[i01], subT[i10], subT[i11], ut.frac, vt.frac)

			c00, c01, c10, c11 := subC[i00], subC[i01], subC[i10], subC[i11]
			off := img.PixOffset(x, y)
			img.Pix[off+0] = channel(c00.R, c01.R, c10.R, c11.R, ut.frac, vt.frac)
			img.Pix[off+1] = channel(c00.G, c01.G, c10.G, c11.G, ut.frac, vt.frac)
			img.Pix[off+2] = channel(c00.B, c01.B, c10.B, c11.B, ut.frac, vt.frac)
			img.Pix[off+3] = 255
		}
	}

	return &Aligned{Image: img, Temps: field, Raw: g}, nil
}

func bilerp(v00, v01, v10, v11, fx, fy float64) float64 {
	top := v00 + (v01-v00)*fx
	bottom := v10 + (v11-v10)*fx
	return top + (bottom-top)*fy
}

func channel(c00, c01, c10, c11 uint8, fx, fy float64) uint8 {
	v := math.Round(bilerp(float64(c00), float64(c01), float64(c10), float64(c11), fx, fy))
	return uint8(clampInt(int(v), 0, 255))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
