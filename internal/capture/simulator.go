package capture

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ironsheep/thermal-fusion/internal/imaging"
)

// SimulatorConfig shapes the synthetic scene: an ambient field with one warm
// blob orbiting the centre of the sensor.
type SimulatorConfig struct {
	Rows    int
	Cols    int
	Ambient float64       // background temperature
	Peak    float64       // temperature at the centre of the blob
	Radius  float64       // blob standard deviation, in cells
	Period  time.Duration // time for one orbit
	Noise   float64       // per-cell noise standard deviation
	// FailureRate is the probability in [0,1] that a read fails.
	FailureRate float64
	Seed        uint64
}

// DefaultSimulatorConfig returns a room-temperature scene with a 60°C blob.
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		Rows:    imaging.GridRows,
		Cols:    imaging.GridCols,
		Ambient: 22,
		Peak:    60,
		Radius:  2.5,
		Period:  8 * time.Second,
		Noise:   0.3,
		Seed:    1,
	}
}

// Simulator is a Sensor producing synthetic grids. It is safe for concurrent
// use.
type Simulator struct {
	cfg   SimulatorConfig
	clock clock.Clock
	start time.Time

	mu    sync.Mutex
	noise distuv.Normal
	fail  distuv.Bernoulli
}

// NewSimulator creates a simulator whose scene is driven by clk.
func NewSimulator(cfg SimulatorConfig, clk clock.Clock) (*Simulator, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, errors.Errorf("invalid grid shape %dx%d", cfg.Rows, cfg.Cols)
	}
	if cfg.FailureRate < 0 || cfg.FailureRate > 1 {
		return nil, errors.Errorf("failure rate %v outside [0,1]", cfg.FailureRate)
	}
	if cfg.Radius <= 0 {
		return nil, errors.Errorf("blob radius must be positive, got %v", cfg.Radius)
	}
	src := rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)
	return &Simulator{
		cfg:   cfg,
		clock: clk,
		start: clk.Now(),
		noise: distuv.Normal{Mu: 0, Sigma: cfg.Noise, Src: src},
		fail:  distuv.Bernoulli{P: cfg.FailureRate, Src: src},
	}, nil
}

// HotSpot returns the blob centre (row, col) at time t.
func (s *Simulator) HotSpot(t time.Time) (row, col float64) {
	phase := 0.0
	if s.cfg.Period > 0 {
		phase = 2 * math.Pi * float64(t.Sub(s.start)) / float64(s.cfg.Period)
	}
	row = float64(s.cfg.Rows-1)/2 + float64(s.cfg.Rows)/4*math.Sin(phase)
	col = float64(s.cfg.Cols-1)/2 + float64(s.cfg.Cols)/4*math.Cos(phase)
	return row, col
}

// Capture returns the scene at the current clock time, or ErrSensorRead at
// the configured failure rate.
func (s *Simulator) Capture(ctx context.Context) (*imaging.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := imaging.NewGrid(s.cfg.Rows, s.cfg.Cols)
	hr, hc := s.HotSpot(s.clock.Now())
	twoSigma2 := 2 * s.cfg.Radius * s.cfg.Radius
	rise := s.cfg.Peak - s.cfg.Ambient

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail.Rand() == 1 {
		return nil, errors.Wrap(ErrSensorRead, "simulated bus timeout")
	}
	for r := 0; r < s.cfg.Rows; r++ {
		for c := 0; c < s.cfg.Cols; c++ {
			dr, dc := float64(r)-hr, float64(c)-hc
			t := s.cfg.Ambient + rise*math.Exp(-(dr*dr+dc*dc)/twoSigma2)
			if s.cfg.Noise > 0 {
				t += s.noise.Rand()
			}
			g.Set(r, c, t)
		}
	}
	return g, nil
}
