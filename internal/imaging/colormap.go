package imaging

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultColormap is the diverging map used when none is configured.
const DefaultColormap = "coolwarm"

// colormapSpec describes a colour lookup table as evenly spaced stops and the
// colour space used to interpolate between them.
type colormapSpec struct {
	stops []string
	lab   bool
}

// Known colour maps. Both run cold (level 0) to hot (level 255).
var colormapSpecs = map[string]colormapSpec{
	// Moreland's diverging blue-white-red map; interpolated in Lab so the
	// perceived lightness is symmetric around the midpoint.
	"coolwarm": {
		stops: []string{"#3b4cc0", "#dddddd", "#b40426"},
		lab:   true,
	},
	// The classic rainbow used by the first prototypes.
	"jet": {
		stops: []string{"#00007f", "#0000ff", "#007fff", "#00ffff", "#7fff7f", "#ffff00", "#ff7f00", "#ff0000", "#7f0000"},
	},
}

// Colormap is an immutable 256-entry lookup table from normalized level to
// colour.
type Colormap struct {
	name string
	lut  [256]color.RGBA
}

// ColormapNames lists the accepted colour map names in sorted order.
func ColormapNames() []string {
	names := make([]string, 0, len(colormapSpecs))
	for name := range colormapSpecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewColormap builds the lookup table for a named colour map.
//
// Returns an error if the name is unknown.
func NewColormap(name string) (*Colormap, error) {
	spec, ok := colormapSpecs[name]
	if !ok {
		return nil, fmt.Errorf("unknown colormap %q (want one of %v)", name, ColormapNames())
	}

	stops := make([]colorful.Color, len(spec.stops))
	for i, hex := range spec.stops {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("colormap %s stop %d: %w", name, i, err)
		}
		stops[i] = c
	}

	cm := &Colormap{name: name}
	segments := float64(len(stops) - 1)
	for i := 0; i < 256; i++ {
		pos := float64(i) / 255 * segments
		seg := int(pos)
		if seg >= len(stops)-1 {
			seg = len(stops) - 2
		}
		t := pos - float64(seg)

		var c colorful.Color
		if spec.lab {
			c = stops[seg].BlendLab(stops[seg+1], t)
		} else {
			c = stops[seg].BlendRgb(stops[seg+1], t)
		}
		r, g, b := c.Clamped().RGB255()
		cm.lut[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return cm, nil
}

// Name returns the colour map's name.
func (c *Colormap) Name() string {
	return c.name
}

// At returns the colour for a normalized level.
func (c *Colormap) At(level uint8) color.RGBA {
	return c.lut[level]
}

// Colorize maps every level through the table.
func (c *Colormap) Colorize(levels []uint8) []color.RGBA {
	out := make([]color.RGBA, len(levels))
	for i, l := range levels {
		out[i] = c.lut[l]
	}
	return out
}
