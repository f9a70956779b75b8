package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/ironsheep/thermal-fusion/internal/imaging"
)

type fakeCamera struct {
	mu    sync.Mutex
	frame image.Image
	fail  int // number of leading captures that fail
	calls int
}

func (c *fakeCamera) Capture(ctx context.Context) (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.calls <= c.fail {
		return nil, errors.New("camera busy")
	}
	return c.frame, nil
}

type recordingSink struct {
	mu     sync.Mutex
	frames []image.Image
	onShow func(n int)
}

func (s *recordingSink) Show(ctx context.Context, frame image.Image) error {
	s.mu.Lock()
	s.frames = append(s.frames, frame)
	n := len(s.frames)
	s.mu.Unlock()
	if s.onShow != nil {
		s.onShow(n)
	}
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func newTestLoop(t *testing.T, cam Camera, sink Sink, commands <-chan Command) (*Loop, *State) {
	t.Helper()
	s := newTestState(t)
	cfg := DefaultLoopConfig()
	cfg.RetryDelay = time.Millisecond
	cfg.StatsInterval = 0
	comp := NewCompositor(32, 24, imaging.DefaultCrosshairStyle())
	return NewLoop(s, cam, sink, comp, commands, cfg, clock.New(), zerolog.Nop()), s
}

func TestLoop_QuitCommand(t *testing.T) {
	cam := &fakeCamera{frame: uniformFrame(32, 24, visibleGreen)}
	commands := make(chan Command, 4)
	sink := &recordingSink{}
	sink.onShow = func(n int) {
		if n == 3 {
			commands <- CmdCycleMode
			commands <- CmdIncreaseThreshold
			commands <- CmdQuit
		}
	}
	loop, s := newTestLoop(t, cam, sink, commands)

	err := loop.Run(context.Background())
	if !errors.Is(err, ErrQuit) {
		t.Fatalf("Run = %v, want ErrQuit", err)
	}
	if got := loop.Frames(); got != 3 {
		t.Errorf("frames = %d, want 3", got)
	}
	if m := s.Mode(); m != ModeThermalOnly {
		t.Errorf("mode = %v, want thermal", m)
	}
	if th := s.Parameters().Threshold; th != DefaultThreshold+1 {
		t.Errorf("threshold = %v, want keyboard step applied", th)
	}
}

func TestLoop_ContextCancel(t *testing.T) {
	cam := &fakeCamera{frame: uniformFrame(32, 24, visibleGreen)}
	ctx, cancel := context.WithCancel(context.Background())
	sink := &recordingSink{onShow: func(n int) {
		if n == 5 {
			cancel()
		}
	}}
	loop, _ := newTestLoop(t, cam, sink, nil)

	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if sink.count() != 5 {
		t.Errorf("sink got %d frames, want 5", sink.count())
	}
}

func TestLoop_RecoversFromCameraFailures(t *testing.T) {
	cam := &fakeCamera{frame: uniformFrame(32, 24, visibleGreen), fail: 3}
	ctx, cancel := context.WithCancel(context.Background())
	sink := &recordingSink{onShow: func(n int) {
		if n == 2 {
			cancel()
		}
	}}
	loop, _ := newTestLoop(t, cam, sink, nil)

	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v", err)
	}
	if got := loop.Failures(); got != 3 {
		t.Errorf("failures = %d, want 3", got)
	}
	if got := loop.Frames(); got != 2 {
		t.Errorf("frames = %d, want 2", got)
	}
}

func TestLoop_ShowsCompositedFrames(t *testing.T) {
	cam := &fakeCamera{frame: uniformFrame(64, 48, color.White)}
	ctx, cancel := context.WithCancel(context.Background())
	sink := &recordingSink{onShow: func(n int) { cancel() }}
	loop, _ := newTestLoop(t, cam, sink, nil)

	_ = loop.Run(ctx)
	if sink.count() != 1 {
		t.Fatalf("sink got %d frames", sink.count())
	}
	if b := sink.frames[0].Bounds(); b != image.Rect(0, 0, 32, 24) {
		t.Errorf("frame bounds = %v, want compositor resolution", b)
	}
}

func TestLoop_ClosedCommandChannel(t *testing.T) {
	cam := &fakeCamera{frame: uniformFrame(32, 24, visibleGreen)}
	commands := make(chan Command)
	close(commands)
	ctx, cancel := context.WithCancel(context.Background())
	sink := &recordingSink{onShow: func(n int) {
		if n == 3 {
			cancel()
		}
	}}
	loop, _ := newTestLoop(t, cam, sink, commands)

	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v", err)
	}
}

func TestLoop_RateLimited(t *testing.T) {
	cam := &fakeCamera{frame: uniformFrame(32, 24, visibleGreen)}
	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	sink := &recordingSink{}

	s := newTestState(t)
	cfg := DefaultLoopConfig()
	cfg.MaxFPS = 20
	cfg.StatsInterval = 0
	loop := NewLoop(s, cam, sink, NewCompositor(32, 24, imaging.DefaultCrosshairStyle()), nil, cfg, clock.New(), zerolog.Nop())

	_ = loop.Run(ctx)
	// 20 fps for a quarter second is about 5 frames plus the initial burst.
	if n := sink.count(); n < 2 || n > 8 {
		t.Errorf("rendered %d frames in 250ms at 20fps", n)
	}
}
