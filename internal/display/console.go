package display

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/ironsheep/thermal-fusion/internal/render"
)

const consoleHelp = `keys: a next mode, d previous mode, + / - threshold, h set upper, l set lower, q quit`

// Console reads keyboard commands from a line-buffered terminal.
type Console struct {
	in     io.Reader
	out    io.Writer
	logger zerolog.Logger
}

// NewConsole creates a console reading from in. Help text goes to out.
func NewConsole(in io.Reader, out io.Writer, logger zerolog.Logger) *Console {
	return &Console{in: in, out: out, logger: logger}
}

// Run forwards commands to cmds until ctx is cancelled or the input ends.
// It returns nil at end of input and ctx.Err() on cancellation. A blocked
// read is abandoned on cancellation.
func (c *Console) Run(ctx context.Context, cmds chan<- render.Command) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	fmt.Fprintln(c.out, consoleHelp)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("reading console: %w", err)
				}
				return nil
			}
			if err := c.handleLine(ctx, line, cmds); err != nil {
				return err
			}
		}
	}
}

// handleLine routes one input line.
func (c *Console) handleLine(ctx context.Context, line string, cmds chan<- render.Command) error {
	switch line {
	case "":
		return nil
	case "?", "help":
		fmt.Fprintln(c.out, consoleHelp)
		return nil
	}

	cmd, ok := KeyCommand(line)
	if !ok {
		c.logger.Debug().Str("input", line).Msg("unknown key")
		fmt.Fprintf(c.out, "unknown key %q (? for help)\n", line)
		return nil
	}
	select {
	case cmds <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
