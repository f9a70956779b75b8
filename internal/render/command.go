package render

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrQuit is returned by Apply for CmdQuit and by Loop.Run when the user asks
// to exit.
var ErrQuit = errors.New("quit requested")

// Command is one user action, whichever input produced it.
type Command int

// Commands accepted from the keyboard and the control buttons.
const (
	CmdNone Command = iota
	CmdCycleMode
	CmdPreviousMode
	CmdIncreaseThreshold
	CmdDecreaseThreshold
	CmdSetUpperLimit
	CmdSetLowerLimit
	CmdQuit
)

func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdCycleMode:
		return "cycle-mode"
	case CmdPreviousMode:
		return "previous-mode"
	case CmdIncreaseThreshold:
		return "increase-threshold"
	case CmdDecreaseThreshold:
		return "decrease-threshold"
	case CmdSetUpperLimit:
		return "set-upper-limit"
	case CmdSetLowerLimit:
		return "set-lower-limit"
	case CmdQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ParseCommand accepts the names returned by Command.String.
func ParseCommand(s string) (Command, error) {
	for c := CmdNone; c <= CmdQuit; c++ {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return CmdNone, errors.Errorf("unknown command %q", s)
}

// Apply performs cmd against s. Threshold commands move the threshold by
// step. Every change is logged at info. CmdQuit changes nothing and returns
// ErrQuit; unknown commands are ignored.
func Apply(s *State, cmd Command, step float64, logger zerolog.Logger) error {
	switch cmd {
	case CmdCycleMode:
		m := s.CycleMode()
		logger.Info().Str("mode", m.Label()).Msg("display mode changed")
	case CmdPreviousMode:
		m := s.PreviousMode()
		logger.Info().Str("mode", m.Label()).Msg("display mode changed")
	case CmdIncreaseThreshold:
		v := s.AdjustThreshold(step)
		logger.Info().Float64("threshold", v).Msg("threshold changed")
	case CmdDecreaseThreshold:
		v := s.AdjustThreshold(-step)
		logger.Info().Float64("threshold", v).Msg("threshold changed")
	case CmdSetUpperLimit:
		v := s.LatchUpper()
		logger.Info().Float64("upper", v).Msg("upper limit set")
	case CmdSetLowerLimit:
		v := s.LatchLower()
		logger.Info().Float64("lower", v).Msg("lower limit set")
	case CmdQuit:
		return ErrQuit
	case CmdNone:
	default:
		logger.Debug().Int("command", int(cmd)).Msg("ignoring unknown command")
	}
	return nil
}
