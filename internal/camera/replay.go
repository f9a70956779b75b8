package camera

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ironsheep/thermal-fusion/internal/imaging"
)

// Replay cycles through still images matched by a glob, in name order. Each
// file is decoded once and kept in memory.
type Replay struct {
	paths []string
	cache *imaging.FrameCache

	mu   sync.Mutex
	next int
}

// NewReplay lists the files matching pattern. Frames are conformed to
// width×height on first load.
func NewReplay(pattern string, width, height int) (*Replay, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid replay pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frames match %q", pattern)
	}
	sort.Strings(paths)
	return &Replay{
		paths: paths,
		cache: imaging.NewFrameCache(width, height),
	}, nil
}

// Len returns the number of frames in the sequence.
func (r *Replay) Len() int {
	return len(r.paths)
}

// Capture returns the next frame, wrapping to the first after the last.
func (r *Replay) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	path := r.paths[r.next]
	r.next = (r.next + 1) % len(r.paths)
	r.mu.Unlock()

	return r.cache.Load(path)
}

// Close drops the cached frames.
func (r *Replay) Close() error {
	r.cache.Clear()
	return nil
}
