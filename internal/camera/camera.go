// Package camera provides visible-light frame sources.
//
// Every source is pull-based: Capture returns the newest frame and blocks
// no longer than the device needs to deliver it. Frames are handed to the
// render loop, which conforms them to the output resolution, so a source may
// return any size.
//
// Available sources:
//   - synthetic: a drawn test scene, for workstations and tests
//   - replay: still images from disk, cycled in name order
//   - device: an OpenCV capture device (requires the gocv build tag)
package camera

import (
	"context"
	"fmt"
	"image"

	"github.com/benbjohnson/clock"
)

// Source kinds accepted by Open.
const (
	KindSynthetic = "synthetic"
	KindReplay    = "replay"
	KindDevice    = "device"
)

// Source is a visible frame source.
type Source interface {
	Capture(ctx context.Context) (image.Image, error)
	Close() error
}

// Config selects and configures a source.
type Config struct {
	Kind   string
	Width  int
	Height int
	// Device is the OpenCV device index or URL for KindDevice.
	Device string
	// Pattern is a glob of image files for KindReplay.
	Pattern string
}

// Open creates the source described by cfg.
func Open(cfg Config, clk clock.Clock) (Source, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid camera resolution %dx%d", cfg.Width, cfg.Height)
	}
	switch cfg.Kind {
	case KindSynthetic, "":
		return NewSynthetic(cfg.Width, cfg.Height, clk), nil
	case KindReplay:
		return NewReplay(cfg.Pattern, cfg.Width, cfg.Height)
	case KindDevice:
		return openDevice(cfg)
	default:
		return nil, fmt.Errorf("unknown camera kind %q", cfg.Kind)
	}
}
