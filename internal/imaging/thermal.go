package imaging

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Sensor geometry of the thermal array.
const (
	GridRows = 24
	GridCols = 32
)

// MidScale is the normalized level given to every cell of a frame with no
// dynamic range.
const MidScale uint8 = 128

// Grid is one frame of thermal readings in degrees Celsius, stored row-major.
type Grid struct {
	Rows  int
	Cols  int
	Temps []float64
}

// NewGrid allocates a zeroed grid.
func NewGrid(rows, cols int) *Grid {
	return &Grid{
		Rows:  rows,
		Cols:  cols,
		Temps: make([]float64, rows*cols),
	}
}

// GridFromSlice wraps temps as a rows×cols grid. The slice is not copied.
func GridFromSlice(rows, cols int, temps []float64) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid grid shape %dx%d", rows, cols)
	}
	if len(temps) != rows*cols {
		return nil, fmt.Errorf("grid shape %dx%d needs %d readings, got %d", rows, cols, rows*cols, len(temps))
	}
	return &Grid{Rows: rows, Cols: cols, Temps: temps}, nil
}

// At returns the reading at (row, col).
func (g *Grid) At(row, col int) float64 {
	return g.Temps[row*g.Cols+col]
}

// Set stores a reading at (row, col).
func (g *Grid) Set(row, col int, v float64) {
	g.Temps[row*g.Cols+col] = v
}

// Fill sets every cell to v.
func (g *Grid) Fill(v float64) {
	for i := range g.Temps {
		g.Temps[i] = v
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	temps := make([]float64, len(g.Temps))
	copy(temps, g.Temps)
	return &Grid{Rows: g.Rows, Cols: g.Cols, Temps: temps}
}

// Center returns the reading of cell (Rows/2, Cols/2).
func (g *Grid) Center() float64 {
	return g.At(g.Rows/2, g.Cols/2)
}

// Range returns the minimum and maximum reading of the grid.
func (g *Grid) Range() (lo, hi float64) {
	return floats.Min(g.Temps), floats.Max(g.Temps)
}

// Normalize maps the grid onto [0,255] using this frame's own minimum and
// maximum: the coldest cell becomes 0, the hottest 255, and the mapping is
// monotonic in between. A frame with no dynamic range maps to MidScale.
func Normalize(g *Grid) []uint8 {
	out := make([]uint8, len(g.Temps))
	lo, hi := g.Range()
	span := hi - lo
	if !(span > 0) || math.IsInf(span, 0) {
		for i := range out {
			out[i] = MidScale
		}
		return out
	}
	for i, t := range g.Temps {
		v := math.Round((t - lo) / span * 255)
		switch {
		case v <= 0:
			out[i] = 0
		case v >= 255:
			out[i] = 255
		default:
			out[i] = uint8(v)
		}
	}
	return out
}

// TempField is a temperature grid resampled to an image resolution.
type TempField struct {
	Width  int
	Height int
	Temps  []float64
}

// NewTempField allocates a zeroed width×height field.
func NewTempField(width, height int) *TempField {
	return &TempField{
		Width:  width,
		Height: height,
		Temps:  make([]float64, width*height),
	}
}

// At returns the temperature at pixel (x, y).
func (f *TempField) At(x, y int) float64 {
	return f.Temps[y*f.Width+x]
}
