package display

import (
	"testing"

	"github.com/ironsheep/thermal-fusion/internal/render"
)

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		key  string
		want render.Command
		ok   bool
	}{
		{"q", render.CmdQuit, true},
		{"Q", render.CmdQuit, true},
		{"a", render.CmdCycleMode, true},
		{"d", render.CmdPreviousMode, true},
		{"+", render.CmdIncreaseThreshold, true},
		{"right", render.CmdIncreaseThreshold, true},
		{"-", render.CmdDecreaseThreshold, true},
		{" left ", render.CmdDecreaseThreshold, true},
		{"h", render.CmdSetUpperLimit, true},
		{"l", render.CmdSetLowerLimit, true},
		{"x", render.CmdNone, false},
	}
	for _, tt := range tests {
		got, ok := KeyCommand(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("KeyCommand(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKeyCodeCommand(t *testing.T) {
	tests := []struct {
		code int
		want render.Command
		ok   bool
	}{
		{-1, render.CmdNone, false},
		{'q', render.CmdQuit, true},
		{'a' | 0x100000, render.CmdCycleMode, true}, // modifier bits set
		{keyLeftGTK, render.CmdDecreaseThreshold, true},
		{keyRightQt, render.CmdIncreaseThreshold, true},
		{27, render.CmdNone, false},
	}
	for _, tt := range tests {
		got, ok := KeyCodeCommand(tt.code)
		if got != tt.want || ok != tt.ok {
			t.Errorf("KeyCodeCommand(%d) = %v, %v; want %v, %v", tt.code, got, ok, tt.want, tt.ok)
		}
	}
}
