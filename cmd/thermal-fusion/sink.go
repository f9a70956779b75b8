package main

import (
	"context"
	"image"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ironsheep/thermal-fusion/internal/config"
	"github.com/ironsheep/thermal-fusion/internal/display"
	"github.com/ironsheep/thermal-fusion/internal/render"
)

// Output sink names accepted in output.sink.
const (
	sinkHeadless = "headless"
	sinkWindow   = "window"
)

// closingSink is a render sink that holds resources.
type closingSink interface {
	Show(ctx context.Context, frame image.Image) error
	Close() error
}

func openSink(cfg *config.Config, cmds chan<- render.Command, clk clock.Clock, logger zerolog.Logger) (closingSink, error) {
	switch cfg.Output.Sink {
	case sinkHeadless, "":
		return display.NewHeadless(cfg.HeadlessSettings(), clk, logger), nil
	case sinkWindow:
		return openWindow(cfg.Output.WindowTitle, cmds)
	default:
		return nil, errors.Errorf("unknown output sink %q", cfg.Output.Sink)
	}
}
