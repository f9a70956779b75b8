package capture

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"golang.org/x/time/rate"

	"github.com/ironsheep/thermal-fusion/internal/imaging"
)

// WorkerConfig tunes the capture cadence.
type WorkerConfig struct {
	// MaxRate caps captures per second. The sensor's own refresh rate
	// (2 to 8 Hz) usually paces the loop; zero disables the cap.
	MaxRate float64
	// RetryDelay is the pause after a failed read.
	RetryDelay time.Duration
	// StatsInterval is how often capture statistics are logged. Zero
	// disables periodic statistics.
	StatsInterval time.Duration
}

// DefaultWorkerConfig caps the worker at the sensor's fastest refresh rate.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxRate:       8,
		RetryDelay:    50 * time.Millisecond,
		StatsInterval: 30 * time.Second,
	}
}

// Stats counts worker activity since start.
type Stats struct {
	Published uint64 // frames handed to the publisher
	Failures  uint64 // cycles skipped because of a failed read
	LastSeq   uint64 // sequence number of the last published frame
}

// Worker is the thermal capture loop.
type Worker struct {
	sensor   Sensor
	reg      *imaging.Registration
	colormap *imaging.Colormap
	pub      Publisher
	cfg      WorkerConfig
	limiter  *rate.Limiter
	clock    clock.Clock
	logger   zerolog.Logger

	seq       atomic.Uint64
	published atomic.Uint64
	failures  atomic.Uint64
}

// NewWorker wires a capture worker publishing into pub.
func NewWorker(sensor Sensor, reg *imaging.Registration, cm *imaging.Colormap, pub Publisher,
	cfg WorkerConfig, clk clock.Clock, logger zerolog.Logger,
) *Worker {
	w := &Worker{
		sensor:   sensor,
		reg:      reg,
		colormap: cm,
		pub:      pub,
		cfg:      cfg,
		clock:    clk,
		logger:   logger,
	}
	if cfg.MaxRate > 0 {
		w.limiter = rate.NewLimiter(rate.Limit(cfg.MaxRate), 1)
	}
	return w
}

// Stats returns a snapshot of the counters.
func (w *Worker) Stats() Stats {
	return Stats{
		Published: w.published.Load(),
		Failures:  w.failures.Load(),
		LastSeq:   w.seq.Load(),
	}
}

// Step runs one capture cycle: read, register, publish. On error nothing is
// published.
func (w *Worker) Step(ctx context.Context) error {
	g, err := w.sensor.Capture(ctx)
	if err != nil {
		if errors.Is(err, ErrSensorRead) {
			return err
		}
		return errors.Wrap(ErrSensorRead, err.Error())
	}
	a, err := w.reg.Align(g, w.colormap)
	if err != nil {
		return errors.Wrap(ErrSensorRead, err.Error())
	}
	a.Seq = w.seq.Inc()
	w.pub.PublishThermal(a)
	w.published.Inc()
	return nil
}

// Run captures until ctx is cancelled and returns ctx.Err(). Read failures
// are logged and skipped.
func (w *Worker) Run(ctx context.Context) error {
	start := w.clock.Now()
	lastStats := start
	defer func() {
		st := w.Stats()
		w.logger.Info().
			Uint64("published", st.Published).
			Uint64("failures", st.Failures).
			Dur("elapsed", w.clock.Since(start)).
			Msg("capture worker stopped")
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if w.limiter != nil {
			if err := w.limiter.Wait(ctx); err != nil {
				<-ctx.Done()
				return ctx.Err()
			}
		}

		if err := w.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			n := w.failures.Inc()
			w.logger.Warn().Err(err).Uint64("failures", n).Msg("thermal read failed, keeping previous frame")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-w.clock.After(w.cfg.RetryDelay):
			}
		}

		if w.cfg.StatsInterval > 0 && w.clock.Since(lastStats) >= w.cfg.StatsInterval {
			st := w.Stats()
			w.logger.Info().
				Uint64("published", st.Published).
				Uint64("failures", st.Failures).
				Uint64("seq", st.LastSeq).
				Msg("capture statistics")
			lastStats = w.clock.Now()
		}
	}
}
