package control

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/ironsheep/thermal-fusion/internal/render"
)

// Button binds a line's press outcomes to commands.
type Button struct {
	Name     string
	Counting Counting
	Short    render.Command
	Held     render.Command
}

// Command returns the command for p, or CmdNone.
func (b Button) Command(p Press) render.Command {
	switch p {
	case PressShort:
		return b.Short
	case PressHeld:
		return b.Held
	default:
		return render.CmdNone
	}
}

// DefaultButtons returns the rig's three buttons: A cycles the mode forward
// or raises the threshold, B cycles backward or lowers it, C latches the
// threshold into the upper limit (short) or the lower limit (held).
func DefaultButtons() [3]Button {
	return [3]Button{
		{Name: "A", Counting: CountInactive, Short: render.CmdCycleMode, Held: render.CmdIncreaseThreshold},
		{Name: "B", Counting: CountInactive, Short: render.CmdPreviousMode, Held: render.CmdDecreaseThreshold},
		{Name: "C", Counting: CountActive, Short: render.CmdSetUpperLimit, Held: render.CmdSetLowerLimit},
	}
}

// PollConfig is the sampling cadence shared by all buttons.
type PollConfig struct {
	Samples  int           // samples per press window
	Interval time.Duration // spacing of samples within a window
	Idle     time.Duration // poll period while the line is inactive
	Step     float64       // threshold change per held press
}

// DefaultPollConfig samples six times over 300ms and idles at 100ms.
func DefaultPollConfig() PollConfig {
	return PollConfig{
		Samples:  6,
		Interval: 50 * time.Millisecond,
		Idle:     100 * time.Millisecond,
		Step:     10,
	}
}

// Poller watches one line and applies its button's commands to the state.
type Poller struct {
	line   Line
	button Button
	cfg    PollConfig
	state  *render.State
	clock  clock.Clock
	logger zerolog.Logger

	presses    atomic.Uint64
	readErrors atomic.Uint64
}

// NewPoller creates a poller for one button.
func NewPoller(line Line, button Button, cfg PollConfig, state *render.State, clk clock.Clock, logger zerolog.Logger) *Poller {
	return &Poller{
		line:   line,
		button: button,
		cfg:    cfg,
		state:  state,
		clock:  clk,
		logger: logger.With().Str("button", button.Name).Logger(),
	}
}

// Presses returns the number of classified presses.
func (p *Poller) Presses() uint64 {
	return p.presses.Load()
}

// ReadErrors returns the number of failed line reads.
func (p *Poller) ReadErrors() uint64 {
	return p.readErrors.Load()
}

// Run polls until ctx is cancelled and returns ctx.Err(). The press and
// read failure counts are logged on exit.
func (p *Poller) Run(ctx context.Context) error {
	defer func() {
		p.logger.Info().
			Uint64("presses", p.presses.Load()).
			Uint64("read_errors", p.readErrors.Load()).
			Msg("button poller stopped")
	}()

	for {
		if _, err := p.Step(ctx); err != nil {
			return err
		}
		if err := p.sleep(ctx, p.cfg.Idle); err != nil {
			return err
		}
	}
}

// Step checks the line once. If it is active, Step samples a full window,
// classifies it and applies the resulting command. It returns the press
// outcome, or ctx.Err() if cancelled while sampling.
func (p *Poller) Step(ctx context.Context) (Press, error) {
	if err := ctx.Err(); err != nil {
		return PressNone, err
	}
	if !p.read() {
		return PressNone, nil
	}

	samples := make([]bool, p.cfg.Samples)
	for i := range samples {
		samples[i] = p.read()
		if err := p.sleep(ctx, p.cfg.Interval); err != nil {
			return PressNone, err
		}
	}

	press := Classify(samples, p.button.Counting)
	if press == PressNone {
		return press, nil
	}
	p.presses.Inc()
	cmd := p.button.Command(press)
	p.logger.Debug().Stringer("press", press).Stringer("command", cmd).Msg("button press")
	if err := render.Apply(p.state, cmd, p.cfg.Step, p.logger); err != nil {
		p.logger.Warn().Err(err).Stringer("command", cmd).Msg("button command not applied")
	}
	return press, nil
}

// read returns the line level, treating a failed read as inactive.
func (p *Poller) read() bool {
	active, err := p.line.Active()
	if err != nil {
		n := p.readErrors.Inc()
		p.logger.Debug().Err(err).Uint64("read_errors", n).Msg("button read failed, treating as released")
		return false
	}
	return active
}

func (p *Poller) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.clock.After(d):
		return nil
	}
}
