package display

import (
	"context"
	"image"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// HeadlessConfig configures the headless sink.
type HeadlessConfig struct {
	// ReportInterval is how often the frame rate is logged. Zero disables
	// reporting.
	ReportInterval time.Duration
}

// Headless discards frames after counting them. Nothing is written to disk.
type Headless struct {
	cfg    HeadlessConfig
	clock  clock.Clock
	logger zerolog.Logger

	frames     atomic.Uint64
	lastReport atomic.Time
	lastCount  atomic.Uint64
}

// NewHeadless creates a headless sink.
func NewHeadless(cfg HeadlessConfig, clk clock.Clock, logger zerolog.Logger) *Headless {
	h := &Headless{cfg: cfg, clock: clk, logger: logger}
	h.lastReport.Store(clk.Now())
	return h
}

// Frames returns the number of frames shown.
func (h *Headless) Frames() uint64 {
	return h.frames.Load()
}

// Show counts frame and logs the display rate once per ReportInterval.
func (h *Headless) Show(ctx context.Context, frame image.Image) error {
	n := h.frames.Inc()

	if h.cfg.ReportInterval > 0 {
		now := h.clock.Now()
		last := h.lastReport.Load()
		if elapsed := now.Sub(last); elapsed >= h.cfg.ReportInterval {
			shown := n - h.lastCount.Swap(n)
			h.lastReport.Store(now)
			h.logger.Info().
				Uint64("frames", n).
				Float64("fps", float64(shown)/elapsed.Seconds()).
				Msg("display rate")
		}
	}
	return nil
}

// Close does nothing.
func (h *Headless) Close() error {
	return nil
}
