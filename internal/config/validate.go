package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/ironsheep/thermal-fusion/internal/camera"
	"github.com/ironsheep/thermal-fusion/internal/control"
	"github.com/ironsheep/thermal-fusion/internal/imaging"
	"github.com/ironsheep/thermal-fusion/internal/logging"
	"github.com/ironsheep/thermal-fusion/internal/render"
)

// Validate checks the whole configuration and reports every problem found.
func Validate(cfg *Config) error {
	var errs error
	add := func(format string, args ...interface{}) {
		errs = multierr.Append(errs, fmt.Errorf(format, args...))
	}

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		add("log.level: %v", err)
	}
	if cfg.Log.Format != "console" && cfg.Log.Format != "json" {
		add("log.format must be console or json, got %q", cfg.Log.Format)
	}

	o := cfg.Output
	if o.Width <= 0 || o.Height <= 0 {
		add("output resolution must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.MaxFPS < 0 {
		add("output.max_fps must be >= 0")
	}
	if o.Sink != "headless" && o.Sink != "window" {
		add("output.sink must be headless or window, got %q", o.Sink)
	}
	if _, err := imaging.ParseHexColor(o.CrosshairColor); err != nil {
		add("output.crosshair_color %q: %v", o.CrosshairColor, err)
	}

	r := cfg.Registration
	if !(r.SensorFOV > 0) || !(r.DesiredFOV > 0) {
		add("registration fields of view must be > 0 (sensor %v, desired %v)", r.SensorFOV, r.DesiredFOV)
	}
	switch r.Rotation {
	case 0, 90, 180, 270:
	default:
		add("registration.rotation must be 0, 90, 180 or 270, got %d", r.Rotation)
	}
	if _, err := imaging.NewColormap(r.Colormap); err != nil {
		add("registration.colormap: %v", err)
	}

	th := cfg.Thermal
	if th.Source != "simulator" {
		add("thermal.source must be simulator, got %q", th.Source)
	}
	if th.MaxRateHz < 0 {
		add("thermal.max_rate_hz must be >= 0")
	}
	if th.Simulator.FailureRate < 0 || th.Simulator.FailureRate > 1 {
		add("thermal.simulator.failure_rate must be within [0,1], got %v", th.Simulator.FailureRate)
	}
	if th.Simulator.Radius <= 0 {
		add("thermal.simulator.radius must be > 0")
	}

	switch cfg.Camera.Kind {
	case camera.KindSynthetic, camera.KindDevice:
	case camera.KindReplay:
		if cfg.Camera.Pattern == "" {
			add("camera.pattern is required for replay")
		}
	default:
		add("camera.kind must be synthetic, replay or device, got %q", cfg.Camera.Kind)
	}

	rc := cfg.Render
	if _, err := render.ParseDisplayMode(rc.Mode); err != nil {
		add("render.mode: %v", err)
	}
	if !(rc.MinTemp < rc.MaxTemp) {
		add("render.min_temp (%v) must be below render.max_temp (%v)", rc.MinTemp, rc.MaxTemp)
	} else {
		for name, v := range map[string]float64{
			"threshold":   rc.Threshold,
			"lower_limit": rc.LowerLimit,
			"upper_limit": rc.UpperLimit,
		} {
			if v < rc.MinTemp || v > rc.MaxTemp {
				add("render.%s %v outside [%v, %v]", name, v, rc.MinTemp, rc.MaxTemp)
			}
		}
	}
	if rc.KeyboardStep <= 0 {
		add("render.keyboard_step must be > 0")
	}

	errs = multierr.Append(errs, validateControls(cfg.Controls))
	return errs
}

func validateControls(c ControlsConfig) error {
	if !c.Enabled {
		return nil
	}
	var errs error
	add := func(format string, args ...interface{}) {
		errs = multierr.Append(errs, fmt.Errorf(format, args...))
	}

	if c.Samples < 1 {
		add("controls.samples must be >= 1")
	}
	if c.Interval < 0 {
		add("controls.interval must be >= 0")
	}
	if c.Idle <= 0 {
		add("controls.idle must be > 0")
	}
	if c.Step <= 0 {
		add("controls.step must be > 0")
	}
	names := map[string]bool{}
	for i, b := range c.Buttons {
		where := fmt.Sprintf("controls.buttons[%d]", i)
		if b.Name == "" {
			add("%s.name is required", where)
		} else if names[b.Name] {
			add("%s.name %q is duplicated", where, b.Name)
		}
		names[b.Name] = true
		if b.Pin == "" {
			add("%s.pin is required", where)
		}
		if _, err := control.ParsePull(b.Pull); err != nil {
			add("%s.pull: %v", where, err)
		}
		if _, err := control.ParseCounting(b.Counting); err != nil {
			add("%s.counting: %v", where, err)
		}
		for field, name := range map[string]string{"short": b.Short, "held": b.Held} {
			cmd, err := render.ParseCommand(name)
			if err != nil {
				add("%s.%s: %v", where, field, err)
			} else if cmd == render.CmdQuit {
				add("%s.%s: quit cannot be bound to a button", where, field)
			}
		}
	}
	return errs
}
