// Package config loads the rig's startup configuration from YAML.
//
// Every field has a default matching the deployed rig (see Default), so a
// configuration file only needs the values that differ. Load applies the
// file over the defaults and validates the result.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete startup configuration.
type Config struct {
	Log          LogConfig          `yaml:"log"`
	Output       OutputConfig       `yaml:"output"`
	Registration RegistrationConfig `yaml:"registration"`
	Thermal      ThermalConfig      `yaml:"thermal"`
	Camera       CameraConfig       `yaml:"camera"`
	Render       RenderConfig       `yaml:"render"`
	Controls     ControlsConfig     `yaml:"controls"`
}

// LogConfig selects log verbosity and format.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// OutputConfig describes the composited output.
type OutputConfig struct {
	Width          int           `yaml:"width"`
	Height         int           `yaml:"height"`
	MaxFPS         float64       `yaml:"max_fps"` // 0 = as fast as the camera
	Sink           string        `yaml:"sink"`    // headless or window
	WindowTitle    string        `yaml:"window_title"`
	ReportInterval time.Duration `yaml:"report_interval"`
	CrosshairColor string        `yaml:"crosshair_color"` // #RRGGBB or #RRGGBBAA
}

// RegistrationConfig lines the thermal sensor up with the camera.
type RegistrationConfig struct {
	SensorFOV  float64 `yaml:"sensor_fov"`
	DesiredFOV float64 `yaml:"desired_fov"`
	OffsetX    int     `yaml:"offset_x"`
	OffsetY    int     `yaml:"offset_y"`
	Rotation   int     `yaml:"rotation"` // clockwise degrees: 0, 90, 180, 270
	Colormap   string  `yaml:"colormap"`
}

// ThermalConfig configures the thermal capture worker.
type ThermalConfig struct {
	Source        string          `yaml:"source"` // simulator
	MaxRateHz     float64         `yaml:"max_rate_hz"`
	RetryDelay    time.Duration   `yaml:"retry_delay"`
	StatsInterval time.Duration   `yaml:"stats_interval"`
	Simulator     SimulatorConfig `yaml:"simulator"`
}

// SimulatorConfig shapes the simulated thermal scene.
type SimulatorConfig struct {
	Ambient     float64       `yaml:"ambient"`
	Peak        float64       `yaml:"peak"`
	Radius      float64       `yaml:"radius"`
	Period      time.Duration `yaml:"period"`
	Noise       float64       `yaml:"noise"`
	FailureRate float64       `yaml:"failure_rate"`
	Seed        uint64        `yaml:"seed"`
}

// CameraConfig selects the visible frame source.
type CameraConfig struct {
	Kind    string `yaml:"kind"`    // synthetic, replay or device
	Device  string `yaml:"device"`  // index or URL for device
	Pattern string `yaml:"pattern"` // glob for replay
}

// RenderConfig holds the initial display state and parameter bounds.
type RenderConfig struct {
	Mode          string        `yaml:"mode"`
	Threshold     float64       `yaml:"threshold"`
	LowerLimit    float64       `yaml:"lower_limit"`
	UpperLimit    float64       `yaml:"upper_limit"`
	MinTemp       float64       `yaml:"min_temp"`
	MaxTemp       float64       `yaml:"max_temp"`
	KeyboardStep  float64       `yaml:"keyboard_step"`
	StatsInterval time.Duration `yaml:"stats_interval"`
}

// ControlsConfig configures the push buttons.
type ControlsConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Samples  int            `yaml:"samples"`
	Interval time.Duration  `yaml:"interval"`
	Idle     time.Duration  `yaml:"idle"`
	Step     float64        `yaml:"step"`
	Buttons  []ButtonConfig `yaml:"buttons"`
}

// ButtonConfig wires one button.
type ButtonConfig struct {
	Name      string `yaml:"name"`
	Pin       string `yaml:"pin"`
	Pull      string `yaml:"pull"` // up, down, float, none
	ActiveLow bool   `yaml:"active_low"`
	Counting  string `yaml:"counting"` // active or inactive
	Short     string `yaml:"short"`    // command name
	Held      string `yaml:"held"`     // command name
}

// Default returns the configuration of the deployed rig.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "console"},
		Output: OutputConfig{
			Width:          640,
			Height:         480,
			Sink:           "headless",
			WindowTitle:    "Thermal Fusion",
			ReportInterval: 10 * time.Second,
			CrosshairColor: "#FFFF00",
		},
		Registration: RegistrationConfig{
			SensorFOV:  150,
			DesiredFOV: 50,
			OffsetX:    -1,
			Colormap:   "coolwarm",
		},
		Thermal: ThermalConfig{
			Source:        "simulator",
			MaxRateHz:     8,
			RetryDelay:    50 * time.Millisecond,
			StatsInterval: 30 * time.Second,
			Simulator: SimulatorConfig{
				Ambient: 22,
				Peak:    60,
				Radius:  2.5,
				Period:  8 * time.Second,
				Noise:   0.3,
				Seed:    1,
			},
		},
		Camera: CameraConfig{Kind: "synthetic", Device: "0"},
		Render: RenderConfig{
			Mode:          "live",
			Threshold:     -40,
			LowerLimit:    30,
			UpperLimit:    60,
			MinTemp:       -40,
			MaxTemp:       300,
			KeyboardStep:  1,
			StatsInterval: 10 * time.Second,
		},
		Controls: ControlsConfig{
			Enabled:  true,
			Samples:  6,
			Interval: 50 * time.Millisecond,
			Idle:     100 * time.Millisecond,
			Step:     10,
			Buttons: []ButtonConfig{
				{Name: "A", Pin: "GPIO22", Pull: "up", ActiveLow: true, Counting: "inactive", Short: "cycle-mode", Held: "increase-threshold"},
				{Name: "B", Pin: "GPIO27", Pull: "up", ActiveLow: true, Counting: "inactive", Short: "previous-mode", Held: "decrease-threshold"},
				{Name: "C", Pin: "GPIO17", Pull: "up", ActiveLow: true, Counting: "active", Short: "set-upper-limit", Held: "set-lower-limit"},
			},
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(data) > 0 {
		if err := decodeStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// decodeStrict decodes data over cfg, rejecting unknown keys. An empty
// document leaves cfg untouched.
func decodeStrict(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
