package render

import (
	"context"
	"image"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"golang.org/x/time/rate"
)

// Camera is a pull-based visible frame source.
type Camera interface {
	Capture(ctx context.Context) (image.Image, error)
}

// Sink consumes one composited frame per render cycle.
type Sink interface {
	Show(ctx context.Context, frame image.Image) error
}

// LoopConfig tunes the render loop.
type LoopConfig struct {
	// MaxFPS caps the render rate. Zero renders as fast as the camera
	// delivers frames.
	MaxFPS float64
	// KeyStep is the threshold change applied by keyboard commands.
	KeyStep float64
	// RetryDelay is the pause after a failed visible capture.
	RetryDelay time.Duration
	// StatsInterval is how often frame statistics are logged. Zero
	// disables periodic statistics.
	StatsInterval time.Duration
}

// DefaultLoopConfig returns an uncapped loop with a one-degree keyboard step.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		KeyStep:       1,
		RetryDelay:    10 * time.Millisecond,
		StatsInterval: 10 * time.Second,
	}
}

// Loop pulls visible frames, composites them with the shared state and hands
// the result to a sink, once per cycle. Between cycles it applies pending
// commands.
type Loop struct {
	state    *State
	camera   Camera
	sink     Sink
	comp     *Compositor
	commands <-chan Command
	cfg      LoopConfig
	limiter  *rate.Limiter
	clock    clock.Clock
	logger   zerolog.Logger

	frames   atomic.Uint64
	failures atomic.Uint64
}

// NewLoop wires a render loop. commands may be nil when no keyboard is
// attached.
func NewLoop(state *State, camera Camera, sink Sink, comp *Compositor, commands <-chan Command,
	cfg LoopConfig, clk clock.Clock, logger zerolog.Logger,
) *Loop {
	l := &Loop{
		state:    state,
		camera:   camera,
		sink:     sink,
		comp:     comp,
		commands: commands,
		cfg:      cfg,
		clock:    clk,
		logger:   logger,
	}
	if cfg.MaxFPS > 0 {
		l.limiter = rate.NewLimiter(rate.Limit(cfg.MaxFPS), 1)
	}
	return l
}

// Frames returns the number of frames handed to the sink.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// Failures returns the number of visible captures that failed.
func (l *Loop) Failures() uint64 {
	return l.failures.Load()
}

// Run renders until ctx is cancelled or a quit command arrives. It returns
// ctx.Err() on cancellation and ErrQuit on a quit command.
func (l *Loop) Run(ctx context.Context) error {
	start := l.clock.Now()
	lastStats := start
	defer func() {
		l.logStats(l.clock.Since(start), "render loop stopped")
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.limiter != nil {
			if err := l.limiter.Wait(ctx); err != nil {
				// the next frame would land past the deadline
				<-ctx.Done()
				return ctx.Err()
			}
		}

		if err := l.cycle(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.failures.Inc()
			l.logger.Warn().Err(err).Uint64("failures", l.failures.Load()).Msg("render cycle failed")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-l.clock.After(l.cfg.RetryDelay):
			}
		}

		if err := l.drainCommands(); err != nil {
			return err
		}

		if l.cfg.StatsInterval > 0 && l.clock.Since(lastStats) >= l.cfg.StatsInterval {
			l.logStats(l.clock.Since(start), "render statistics")
			lastStats = l.clock.Now()
		}
	}
}

func (l *Loop) cycle(ctx context.Context) error {
	frame, err := l.camera.Capture(ctx)
	if err != nil {
		return errors.Wrap(err, "visible capture")
	}
	out := l.comp.Compose(frame, l.state.Snapshot())
	if err := l.sink.Show(ctx, out); err != nil {
		return errors.Wrap(err, "display")
	}
	l.frames.Inc()
	return nil
}

// drainCommands applies every command already queued without waiting.
func (l *Loop) drainCommands() error {
	if l.commands == nil {
		return nil
	}
	for {
		select {
		case cmd, ok := <-l.commands:
			if !ok {
				l.commands = nil
				return nil
			}
			if err := Apply(l.state, cmd, l.cfg.KeyStep, l.logger); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (l *Loop) logStats(elapsed time.Duration, msg string) {
	frames := l.frames.Load()
	ev := l.logger.Info().
		Uint64("frames", frames).
		Uint64("failures", l.failures.Load()).
		Dur("elapsed", elapsed)
	if secs := elapsed.Seconds(); secs > 0 {
		ev = ev.Float64("fps", float64(frames)/secs)
	}
	ev.Msg(msg)
}
