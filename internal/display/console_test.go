package display

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/thermal-fusion/internal/render"
)

func TestConsole_ForwardsCommands(t *testing.T) {
	in := strings.NewReader("a\n\n+\nzzz\nh\n?\nq\n")
	var out bytes.Buffer
	c := NewConsole(in, &out, zerolog.Nop())

	cmds := make(chan render.Command, 10)
	if err := c.Run(context.Background(), cmds); err != nil {
		t.Fatalf("Run: %v", err)
	}
	close(cmds)

	var got []render.Command
	for cmd := range cmds {
		got = append(got, cmd)
	}
	want := []render.Command{render.CmdCycleMode, render.CmdIncreaseThreshold, render.CmdSetUpperLimit, render.CmdQuit}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %v, want %v", i, got[i], want[i])
		}
	}

	if !strings.Contains(out.String(), `unknown key "zzz"`) {
		t.Errorf("output missing unknown-key notice:\n%s", out.String())
	}
	if strings.Count(out.String(), "keys:") != 2 {
		t.Errorf("help should print at start and on '?':\n%s", out.String())
	}
}

func TestConsole_CancelWhileReading(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c := NewConsole(pr, io.Discard, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, make(chan render.Command, 1)) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
