package display

import (
	"strings"

	"github.com/ironsheep/thermal-fusion/internal/render"
)

// KeyCommand maps a typed key or key name to a command.
func KeyCommand(key string) (render.Command, bool) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "q", "quit", "exit":
		return render.CmdQuit, true
	case "a", "mode", "next":
		return render.CmdCycleMode, true
	case "d", "prev":
		return render.CmdPreviousMode, true
	case "+", "=", "]", "right", "up":
		return render.CmdIncreaseThreshold, true
	case "-", "[", "left", "down":
		return render.CmdDecreaseThreshold, true
	case "h", "upper":
		return render.CmdSetUpperLimit, true
	case "l", "lower":
		return render.CmdSetLowerLimit, true
	default:
		return render.CmdNone, false
	}
}

// Key codes reported by OpenCV's WaitKey for the arrow keys on GTK and Qt
// backends.
const (
	keyLeftGTK  = 65361
	keyRightGTK = 65363
	keyLeftQt   = 2424832
	keyRightQt  = 2555904
)

// KeyCodeCommand maps a WaitKey code to a command. Negative codes mean no key.
func KeyCodeCommand(code int) (render.Command, bool) {
	switch code {
	case keyLeftGTK, keyLeftQt:
		return render.CmdDecreaseThreshold, true
	case keyRightGTK, keyRightQt:
		return render.CmdIncreaseThreshold, true
	}
	if code < 0 {
		return render.CmdNone, false
	}
	c := code & 0xff
	if c < 0x20 || c > 0x7e {
		return render.CmdNone, false
	}
	return KeyCommand(string(rune(c)))
}
