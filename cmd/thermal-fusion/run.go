package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/thermal-fusion/internal/camera"
	"github.com/ironsheep/thermal-fusion/internal/capture"
	"github.com/ironsheep/thermal-fusion/internal/config"
	"github.com/ironsheep/thermal-fusion/internal/control"
	"github.com/ironsheep/thermal-fusion/internal/display"
	"github.com/ironsheep/thermal-fusion/internal/imaging"
	"github.com/ironsheep/thermal-fusion/internal/logging"
	"github.com/ironsheep/thermal-fusion/internal/render"
)

// commandQueue is the keyboard command buffer. The render loop drains it
// between frames.
const commandQueue = 16

func run(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	logger, err := logging.New(logging.Options{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		Out:      os.Stderr,
		Override: c.String("log-level"),
	})
	if err != nil {
		return err
	}
	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Bool("simulate", c.Bool("simulate")).
		Msg("thermal fusion starting")

	opts := rigOptions{
		Simulate: c.Bool("simulate"),
		Keyboard: c.Bool("keyboard"),
		Stdin:    os.Stdin,
		Stdout:   c.App.Writer,
	}
	r, err := newRig(cfg, opts, clock.New(), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := r.Run(ctx)
	if err := r.Close(); err != nil {
		logger.Warn().Err(err).Msg("shutdown")
	}
	if runErr != nil {
		return runErr
	}
	logger.Info().Msg("thermal fusion stopped")
	return nil
}

type rigOptions struct {
	Simulate bool
	Keyboard bool
	Stdin    io.Reader
	Stdout   io.Writer
}

// rig owns every running component of the pipeline.
type rig struct {
	state    *render.State
	worker   *capture.Worker
	loop     *render.Loop
	pollers  []*control.Poller
	console  *display.Console
	commands chan render.Command
	closers  []io.Closer
	logger   zerolog.Logger
}

// newRig builds the pipeline described by cfg. On error every resource
// opened so far is released.
func newRig(cfg *config.Config, opts rigOptions, clk clock.Clock, logger zerolog.Logger) (_ *rig, err error) {
	r := &rig{
		commands: make(chan render.Command, commandQueue),
		logger:   logger,
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, r.Close())
		}
	}()

	r.state, err = render.NewState(cfg.InitialMode(), cfg.Parameters(), cfg.Bounds())
	if err != nil {
		return nil, err
	}

	// thermal path
	reg, err := imaging.NewRegistration(cfg.RegistrationSettings(), imaging.GridRows, imaging.GridCols)
	if err != nil {
		return nil, errors.Wrap(err, "registration")
	}
	cm, err := imaging.NewColormap(cfg.Registration.Colormap)
	if err != nil {
		return nil, err
	}
	sensor, err := capture.NewSimulator(cfg.SimulatorSettings(), clk)
	if err != nil {
		return nil, errors.Wrap(err, "thermal sensor")
	}
	r.worker = capture.NewWorker(sensor, reg, cm, r.state, cfg.WorkerSettings(), clk,
		logging.Component(logger, "capture"))

	// visible path
	camCfg := cfg.CameraSettings()
	if opts.Simulate {
		camCfg.Kind = camera.KindSynthetic
	}
	cam, err := camera.Open(camCfg, clk)
	if err != nil {
		return nil, errors.Wrap(err, "camera")
	}
	r.closers = append(r.closers, cam)

	sink, err := openSink(cfg, r.commands, clk, logging.Component(logger, "display"))
	if err != nil {
		return nil, err
	}
	r.closers = append(r.closers, sink)

	r.loop = render.NewLoop(r.state, cam, sink,
		render.NewCompositor(cfg.Output.Width, cfg.Output.Height, cfg.CrosshairSettings()),
		r.commands, cfg.LoopSettings(), clk, logging.Component(logger, "render"))

	if cfg.Controls.Enabled {
		if err := r.addPollers(cfg, opts.Simulate, clk); err != nil {
			return nil, err
		}
	}

	if opts.Keyboard {
		r.console = display.NewConsole(opts.Stdin, opts.Stdout, logging.Component(logger, "keyboard"))
	}
	return r, nil
}

// addPollers opens one line per configured button. Simulated buttons are
// scripted lines that never press.
func (r *rig) addPollers(cfg *config.Config, simulate bool, clk clock.Clock) error {
	pollCfg := cfg.PollSettings()
	for _, bc := range cfg.Controls.Buttons {
		button, err := bc.Button()
		if err != nil {
			return errors.Wrapf(err, "button %s", bc.Name)
		}

		var line control.Line
		if simulate {
			line = control.NewScriptedLine()
		} else {
			pull, err := control.ParsePull(bc.Pull)
			if err != nil {
				return errors.Wrapf(err, "button %s", bc.Name)
			}
			gl, err := control.OpenGPIO(bc.Pin, pull, bc.ActiveLow)
			if err != nil {
				return errors.Wrapf(err, "button %s", bc.Name)
			}
			r.closers = append(r.closers, gl)
			line = gl
		}

		r.pollers = append(r.pollers, control.NewPoller(line, button, pollCfg, r.state, clk,
			logging.Component(r.logger, "control")))
	}
	return nil
}

// Run starts every loop and waits until one of them ends the session. A
// quit command or a cancelled ctx is a clean stop.
func (r *rig) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return r.worker.Run(ctx) })
	for _, p := range r.pollers {
		g.Go(func() error { return p.Run(ctx) })
	}
	g.Go(func() error { return r.loop.Run(ctx) })
	if r.console != nil {
		g.Go(func() error { return r.console.Run(ctx, r.commands) })
	}

	err := g.Wait()
	switch {
	case errors.Is(err, render.ErrQuit):
		r.logger.Info().Msg("quit requested")
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil
	}
	return err
}

// Close releases the camera, sink and GPIO lines in reverse order of
// opening.
func (r *rig) Close() error {
	var err error
	for i := len(r.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, r.closers[i].Close())
	}
	r.closers = nil
	return err
}
