package imaging

import (
	"fmt"
	"math"
	"testing"
)

// rigConfig mirrors the deployed rig: 50 degree camera, 150 degree sensor,
// one cell left offset, 640x480 output.
func rigConfig() RegistrationConfig {
	return RegistrationConfig{
		SensorFOV:  150,
		DesiredFOV: 50,
		OffsetX:    -1,
		Width:      640,
		Height:     480,
	}
}

func hotCenterGrid(hot float64) *Grid {
	g := NewGrid(GridRows, GridCols)
	g.Set(GridRows/2, GridCols/2, hot)
	return g
}

func mustColormap(t *testing.T) *Colormap {
	t.Helper()
	cm, err := NewColormap(DefaultColormap)
	if err != nil {
		t.Fatalf("NewColormap failed: %v", err)
	}
	return cm
}

func TestCropWindow(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		offX  int
		offY  int
		want  Window
	}{
		{"rig 50/150", 50.0 / 150.0, -1, 0, Window{X0: 10, Y0: 8, X1: 20, Y1: 16}},
		{"bench 50/110", 50.0 / 110.0, -3, 0, Window{X0: 6, Y0: 7, X1: 20, Y1: 17}},
		{"full grid", 1, 0, 0, Window{X0: 0, Y0: 0, X1: 32, Y1: 24}},
		{"wider than sensor", 1.5, 0, 0, Window{X0: 0, Y0: 0, X1: 32, Y1: 24}},
		{"clamped left", 0.5, -10, 0, Window{X0: 0, Y0: 6, X1: 14, Y1: 18}},
		{"clamped bottom", 0.5, 0, 10, Window{X0: 8, Y0: 16, X1: 24, Y1: 24}},
		{"pushed off grid", 0.25, 100, 0, Window{X0: 31, Y0: 9, X1: 32, Y1: 15}},
		{"tiny ratio", 0.001, 0, 0, Window{X0: 16, Y0: 12, X1: 17, Y1: 13}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CropWindow(GridRows, GridCols, tt.ratio, tt.offX, tt.offY)
			if got != tt.want {
				t.Errorf("CropWindow: got %+v, want %+v", got, tt.want)
			}
			if got.Dx() < 1 || got.Dy() < 1 {
				t.Errorf("window must not be empty: %+v", got)
			}
		})
	}
}

func TestNewRegistration_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegistrationConfig)
	}{
		{"zero width", func(c *RegistrationConfig) { c.Width = 0 }},
		{"negative height", func(c *RegistrationConfig) { c.Height = -1 }},
		{"zero sensor fov", func(c *RegistrationConfig) { c.SensorFOV = 0 }},
		{"negative desired fov", func(c *RegistrationConfig) { c.DesiredFOV = -50 }},
		{"odd rotation", func(c *RegistrationConfig) { c.Rotation = 45 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := rigConfig()
			tt.mutate(&cfg)
			if _, err := NewRegistration(cfg, GridRows, GridCols); err == nil {
				t.Error("NewRegistration should fail")
			}
		})
	}
}

func TestAlign_OutputResolution(t *testing.T) {
	cm := mustColormap(t)
	ratios := []float64{0.05, 50.0 / 150.0, 50.0 / 110.0, 1, 2}
	rotations := []int{0, 90, 180, 270}
	sizes := [][2]int{{640, 480}, {320, 240}, {33, 17}}

	g := hotCenterGrid(50)
	for _, ratio := range ratios {
		for _, rot := range rotations {
			for _, size := range sizes {
				cfg := RegistrationConfig{
					SensorFOV:  100,
					DesiredFOV: 100 * ratio,
					Rotation:   rot,
					Width:      size[0],
					Height:     size[1],
				}
				reg, err := NewRegistration(cfg, GridRows, GridCols)
				if err != nil {
					t.Fatalf("NewRegistration(%+v) failed: %v", cfg, err)
				}
				a, err := reg.Align(g, cm)
				if err != nil {
					t.Fatalf("Align failed: %v", err)
				}
				b := a.Image.Bounds()
				if b.Dx() != size[0] || b.Dy() != size[1] {
					t.Errorf("ratio %v rot %d: image %dx%d, want %dx%d", ratio, rot, b.Dx(), b.Dy(), size[0], size[1])
				}
				if a.Temps.Width != size[0] || a.Temps.Height != size[1] || len(a.Temps.Temps) != size[0]*size[1] {
					t.Errorf("ratio %v rot %d: field %dx%d, want %dx%d", ratio, rot, a.Temps.Width, a.Temps.Height, size[0], size[1])
				}
			}
		}
	}
}

func TestAlign_GridShapeMismatch(t *testing.T) {
	reg, err := NewRegistration(rigConfig(), GridRows, GridCols)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Align(NewGrid(GridRows, GridCols+1), mustColormap(t)); err == nil {
		t.Error("Align should fail for a grid of the wrong shape")
	}
}

// The image and the field must come from the same mapping: colouring the
// resampled temperatures must agree with the resampled colours wherever the
// source neighbourhood is uniform, and the hottest pixel of the field must be
// the reddest pixel of the image.
func TestAlign_ImageAndFieldShareMapping(t *testing.T) {
	cm := mustColormap(t)
	for _, rot := range []int{0, 90, 180, 270} {
		cfg := rigConfig()
		cfg.Rotation = rot
		reg, err := NewRegistration(cfg, GridRows, GridCols)
		if err != nil {
			t.Fatal(err)
		}

		g := NewGrid(GridRows, GridCols)
		for row := 0; row < GridRows; row++ {
			for col := 0; col < GridCols; col++ {
				g.Set(row, col, float64(row*GridCols+col))
			}
		}
		a, err := reg.Align(g, cm)
		if err != nil {
			t.Fatal(err)
		}

		levels := Normalize(g)
		for y := 0; y < cfg.Height; y += 7 {
			for x := 0; x < cfg.Width; x += 7 {
				row, col := reg.SourceCell(x, y)
				want := float64(row*GridCols + col)
				got := a.Temps.At(x, y)
				// Bilinear never strays more than one cell step from the
				// nearest source cell along either axis.
				if math.Abs(got-want) > float64(GridCols)+1 {
					t.Fatalf("rot %d (%d,%d): temp %v far from nearest cell %v", rot, x, y, got, want)
				}
				c := a.Image.RGBAAt(x, y)
				ref := cm.At(levels[row*GridCols+col])
				if abs(int(c.R)-int(ref.R)) > 64 || abs(int(c.B)-int(ref.B)) > 64 {
					t.Fatalf("rot %d (%d,%d): colour %v far from nearest cell colour %v", rot, x, y, c, ref)
				}
			}
		}
	}
}

func TestAlign_MirrorsHorizontally(t *testing.T) {
	cfg := rigConfig()
	reg, err := NewRegistration(cfg, GridRows, GridCols)
	if err != nil {
		t.Fatal(err)
	}
	win := reg.Window()

	// Hot column at the left edge of the window must end up on the right.
	g := NewGrid(GridRows, GridCols)
	for row := 0; row < GridRows; row++ {
		g.Set(row, win.X0, 100)
	}
	a, err := reg.Align(g, mustColormap(t))
	if err != nil {
		t.Fatal(err)
	}

	y := cfg.Height / 2
	if left, right := a.Temps.At(0, y), a.Temps.At(cfg.Width-1, y); !(right > left) {
		t.Errorf("mirrored hot column: left %v, right %v; want right hotter", left, right)
	}
	if _, col := reg.SourceCell(cfg.Width-1, y); col != win.X0 {
		t.Errorf("SourceCell at right edge: col %d, want %d", col, win.X0)
	}
	if _, col := reg.SourceCell(0, y); col != win.X1-1 {
		t.Errorf("SourceCell at left edge: col %d, want %d", col, win.X1-1)
	}
}

func TestAlign_Rotation90(t *testing.T) {
	cfg := rigConfig()
	cfg.Rotation = 90
	reg, err := NewRegistration(cfg, GridRows, GridCols)
	if err != nil {
		t.Fatal(err)
	}
	win := reg.Window()

	// After a clockwise quarter turn the top row of the window is on the
	// right-hand side of the output.
	row, _ := reg.SourceCell(cfg.Width-1, cfg.Height/2)
	if row != win.Y0 {
		t.Errorf("rot 90 right edge: row %d, want %d", row, win.Y0)
	}
	row, _ = reg.SourceCell(0, cfg.Height/2)
	if row != win.Y1-1 {
		t.Errorf("rot 90 left edge: row %d, want %d", row, win.Y1-1)
	}
}

func TestAlign_Rotations(t *testing.T) {
	// 64x48 output over the rig window {10,8,20,16}. Corner pixels sample a
	// single cell exactly, so the image and the field must both reproduce it.
	type corner struct{ x, y, row, col int }
	tests := []struct {
		rotation int
		corners  []corner
	}{
		{0, []corner{{0, 0, 8, 19}, {63, 47, 15, 10}}},
		{90, []corner{{0, 0, 15, 19}, {63, 47, 8, 10}}},
		{180, []corner{{0, 0, 15, 10}, {63, 47, 8, 19}}},
		{270, []corner{{0, 0, 8, 10}, {63, 47, 15, 19}}},
	}

	g := NewGrid(GridRows, GridCols)
	for row := 0; row < GridRows; row++ {
		for col := 0; col < GridCols; col++ {
			g.Set(row, col, float64(row*GridCols+col))
		}
	}
	cm := mustColormap(t)
	levels := Normalize(g)

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.rotation), func(t *testing.T) {
			cfg := rigConfig()
			cfg.Width, cfg.Height = 64, 48
			cfg.Rotation = tt.rotation
			reg, err := NewRegistration(cfg, GridRows, GridCols)
			if err != nil {
				t.Fatal(err)
			}
			if w := reg.Window(); w != (Window{X0: 10, Y0: 8, X1: 20, Y1: 16}) {
				t.Fatalf("window = %+v", w)
			}
			a, err := reg.Align(g, cm)
			if err != nil {
				t.Fatal(err)
			}
			if b := a.Image.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
				t.Errorf("image size %dx%d, want 64x48", b.Dx(), b.Dy())
			}
			if a.Temps.Width != 64 || a.Temps.Height != 48 {
				t.Errorf("field size %dx%d, want 64x48", a.Temps.Width, a.Temps.Height)
			}

			for _, c := range tt.corners {
				row, col := reg.SourceCell(c.x, c.y)
				if row != c.row || col != c.col {
					t.Errorf("SourceCell(%d,%d) = (%d,%d), want (%d,%d)", c.x, c.y, row, col, c.row, c.col)
					continue
				}
				if got, want := a.Temps.At(c.x, c.y), g.At(row, col); got != want {
					t.Errorf("field at (%d,%d) = %v, want cell value %v", c.x, c.y, got, want)
				}
				if got, want := a.Image.RGBAAt(c.x, c.y), cm.At(levels[row*GridCols+col]); got != want {
					t.Errorf("image at (%d,%d) = %v, want cell colour %v", c.x, c.y, got, want)
				}
			}
		})
	}
}

func TestAlign_CenterCellFootprint(t *testing.T) {
	cfg := rigConfig()
	reg, err := NewRegistration(cfg, GridRows, GridCols)
	if err != nil {
		t.Fatal(err)
	}
	a, err := reg.Align(hotCenterGrid(50), mustColormap(t))
	if err != nil {
		t.Fatal(err)
	}

	hot := 0
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			if a.Temps.At(x, y) <= 40 {
				continue
			}
			hot++
			if row, col := reg.SourceCell(x, y); row != GridRows/2 || col != GridCols/2 {
				t.Fatalf("pixel (%d,%d) above 40 maps to cell (%d,%d)", x, y, row, col)
			}
		}
	}
	if hot == 0 {
		t.Error("no output pixel exceeds 40 for a 50 degree centre cell")
	}
}

func TestAlign_Degenerate(t *testing.T) {
	reg, err := NewRegistration(rigConfig(), GridRows, GridCols)
	if err != nil {
		t.Fatal(err)
	}
	cm := mustColormap(t)
	g := NewGrid(GridRows, GridCols)
	g.Fill(21)

	a, err := reg.Align(g, cm)
	if err != nil {
		t.Fatalf("Align failed on a flat frame: %v", err)
	}
	want := cm.At(MidScale)
	got := a.Image.RGBAAt(100, 100)
	if got != want {
		t.Errorf("flat frame colour: got %v, want %v", got, want)
	}
	if temp := a.Temps.At(100, 100); temp != 21 {
		t.Errorf("flat frame temperature: got %v, want 21", temp)
	}
}
