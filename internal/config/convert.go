package config

import (
	"github.com/ironsheep/thermal-fusion/internal/camera"
	"github.com/ironsheep/thermal-fusion/internal/capture"
	"github.com/ironsheep/thermal-fusion/internal/control"
	"github.com/ironsheep/thermal-fusion/internal/display"
	"github.com/ironsheep/thermal-fusion/internal/imaging"
	"github.com/ironsheep/thermal-fusion/internal/render"
)

// The methods below translate a validated Config into component settings.

// RegistrationSettings returns the alignment geometry at the output
// resolution.
func (c *Config) RegistrationSettings() imaging.RegistrationConfig {
	return imaging.RegistrationConfig{
		SensorFOV:  c.Registration.SensorFOV,
		DesiredFOV: c.Registration.DesiredFOV,
		OffsetX:    c.Registration.OffsetX,
		OffsetY:    c.Registration.OffsetY,
		Rotation:   c.Registration.Rotation,
		Width:      c.Output.Width,
		Height:     c.Output.Height,
	}
}

// WorkerSettings returns the capture worker cadence.
func (c *Config) WorkerSettings() capture.WorkerConfig {
	return capture.WorkerConfig{
		MaxRate:       c.Thermal.MaxRateHz,
		RetryDelay:    c.Thermal.RetryDelay,
		StatsInterval: c.Thermal.StatsInterval,
	}
}

// SimulatorSettings returns the simulated sensor scene.
func (c *Config) SimulatorSettings() capture.SimulatorConfig {
	s := c.Thermal.Simulator
	return capture.SimulatorConfig{
		Rows:        imaging.GridRows,
		Cols:        imaging.GridCols,
		Ambient:     s.Ambient,
		Peak:        s.Peak,
		Radius:      s.Radius,
		Period:      s.Period,
		Noise:       s.Noise,
		FailureRate: s.FailureRate,
		Seed:        s.Seed,
	}
}

// CameraSettings returns the visible source at the output resolution.
func (c *Config) CameraSettings() camera.Config {
	return camera.Config{
		Kind:    c.Camera.Kind,
		Width:   c.Output.Width,
		Height:  c.Output.Height,
		Device:  c.Camera.Device,
		Pattern: c.Camera.Pattern,
	}
}

// InitialMode returns the display mode at start-up.
func (c *Config) InitialMode() render.DisplayMode {
	m, _ := render.ParseDisplayMode(c.Render.Mode)
	return m
}

// Parameters returns the initial render parameters.
func (c *Config) Parameters() render.Parameters {
	return render.Parameters{
		Threshold: c.Render.Threshold,
		Lower:     c.Render.LowerLimit,
		Upper:     c.Render.UpperLimit,
	}
}

// Bounds returns the parameter clamp interval.
func (c *Config) Bounds() render.Bounds {
	return render.Bounds{Min: c.Render.MinTemp, Max: c.Render.MaxTemp}
}

// LoopSettings returns the render loop tuning.
func (c *Config) LoopSettings() render.LoopConfig {
	cfg := render.DefaultLoopConfig()
	cfg.MaxFPS = c.Output.MaxFPS
	cfg.KeyStep = c.Render.KeyboardStep
	cfg.StatsInterval = c.Render.StatsInterval
	return cfg
}

// HeadlessSettings returns the headless sink configuration.
func (c *Config) HeadlessSettings() display.HeadlessConfig {
	return display.HeadlessConfig{
		ReportInterval: c.Output.ReportInterval,
	}
}

// CrosshairSettings returns the centre marker style in the configured
// colour.
func (c *Config) CrosshairSettings() imaging.CrosshairStyle {
	style := imaging.DefaultCrosshairStyle()
	if col, err := imaging.ParseHexColor(c.Output.CrosshairColor); err == nil {
		style.Color = col
	}
	return style
}

// PollSettings returns the shared button sampling cadence.
func (c *Config) PollSettings() control.PollConfig {
	return control.PollConfig{
		Samples:  c.Controls.Samples,
		Interval: c.Controls.Interval,
		Idle:     c.Controls.Idle,
		Step:     c.Controls.Step,
	}
}

// Button returns the command binding of one configured button.
func (b ButtonConfig) Button() (control.Button, error) {
	counting, err := control.ParseCounting(b.Counting)
	if err != nil {
		return control.Button{}, err
	}
	short, err := render.ParseCommand(b.Short)
	if err != nil {
		return control.Button{}, err
	}
	held, err := render.ParseCommand(b.Held)
	if err != nil {
		return control.Button{}, err
	}
	return control.Button{Name: b.Name, Counting: counting, Short: short, Held: held}, nil
}
