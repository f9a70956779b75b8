// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EnvLevel overrides the configured level when set. An explicit
// Options.Override still wins over it.
const EnvLevel = "THERMAL_FUSION_LOG_LEVEL"

// Options selects the logger output.
type Options struct {
	Level  string // trace, debug, info, warn, error
	Format string // console or json
	Out    io.Writer
	// Override is a level given on the command line.
	Override string
}

// New returns a timestamped logger. The level is opts.Override if set, then
// EnvLevel if set, then opts.Level.
func New(opts Options) (zerolog.Logger, error) {
	level := opts.Level
	if env := os.Getenv(EnvLevel); env != "" {
		level = env
	}
	if opts.Override != "" {
		level = opts.Override
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if opts.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// ParseLevel parses a level name case-insensitively. The empty string is
// info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// Component returns a child logger tagged with the component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
