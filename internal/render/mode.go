package render

import (
	"fmt"
	"strings"
)

// DisplayMode selects how the compositor combines the two sensors.
type DisplayMode int

// Display modes in cycle order.
const (
	ModeLive DisplayMode = iota
	ModeThermalOnly
	ModeThresholdFade
	ModeRangeOverlay

	modeCount
)

var modeNames = [modeCount]string{"live", "thermal", "fade", "range"}

// On-screen names used by the rig since the first prototype.
var modeLabels = [modeCount]string{"Normal", "Thermal", "Fade", "Limit"}

// normalizeMode folds any integer into [0, modeCount) regardless of sign.
func normalizeMode(v int) DisplayMode {
	n := int(modeCount)
	return DisplayMode(((v % n) + n) % n)
}

// Next returns the mode after m, wrapping RangeOverlay back to Live.
func (m DisplayMode) Next() DisplayMode {
	return normalizeMode(int(m) + 1)
}

// Prev returns the mode before m, wrapping Live back to RangeOverlay.
func (m DisplayMode) Prev() DisplayMode {
	return normalizeMode(int(m) - 1)
}

// Valid reports whether m is one of the four modes.
func (m DisplayMode) Valid() bool {
	return m >= 0 && m < modeCount
}

// String returns the configuration name of the mode.
func (m DisplayMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("DisplayMode(%d)", int(m))
	}
	return modeNames[m]
}

// Label returns the name drawn on screen.
func (m DisplayMode) Label() string {
	if !m.Valid() {
		return "?"
	}
	return modeLabels[m]
}

// ParseDisplayMode accepts a configuration name ("live", "thermal", "fade",
// "range") or an on-screen label, case-insensitively.
func ParseDisplayMode(s string) (DisplayMode, error) {
	for i := DisplayMode(0); i < modeCount; i++ {
		if strings.EqualFold(s, modeNames[i]) || strings.EqualFold(s, modeLabels[i]) {
			return i, nil
		}
	}
	return ModeLive, fmt.Errorf("unknown display mode %q (want one of %v)", s, modeNames)
}
