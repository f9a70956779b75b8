package display

import (
	"bytes"
	"context"
	"image"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

func TestHeadless_ReportsRate(t *testing.T) {
	var logs bytes.Buffer
	mock := clock.NewMock()
	h := NewHeadless(HeadlessConfig{ReportInterval: time.Second}, mock, zerolog.New(&logs))

	frame := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for i := 0; i < 5; i++ {
		mock.Add(300 * time.Millisecond)
		if err := h.Show(context.Background(), frame); err != nil {
			t.Fatalf("Show %d: %v", i, err)
		}
	}
	if h.Frames() != 5 {
		t.Errorf("frames = %d", h.Frames())
	}

	// one report, after the fourth frame at 1.2s
	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1:\n%s", len(lines), logs.String())
	}
	if !strings.Contains(lines[0], `"frames":4`) || !strings.Contains(lines[0], `"message":"display rate"`) {
		t.Errorf("report = %s", lines[0])
	}
}

func TestHeadless_WritesNothing(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	h := NewHeadless(HeadlessConfig{}, clock.NewMock(), zerolog.Nop())
	for i := 0; i < 3; i++ {
		if err := h.Show(context.Background(), image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("headless sink wrote %d files", len(entries))
	}
}
