package control

import (
	"fmt"
	"strings"
)

// Press is the outcome of one sampling window.
type Press int

// Press outcomes.
const (
	PressNone Press = iota
	PressShort
	PressHeld
)

func (p Press) String() string {
	switch p {
	case PressShort:
		return "short"
	case PressHeld:
		return "held"
	default:
		return "none"
	}
}

// Counting selects which samples of a window are counted.
type Counting int

// Counting modes.
const (
	// CountActive counts samples where the line read active.
	CountActive Counting = iota
	// CountInactive counts samples where the line read inactive.
	CountInactive
)

func (c Counting) String() string {
	if c == CountInactive {
		return "inactive"
	}
	return "active"
}

// ParseCounting accepts "active" or "inactive".
func ParseCounting(s string) (Counting, error) {
	switch strings.ToLower(s) {
	case "active":
		return CountActive, nil
	case "inactive":
		return CountInactive, nil
	default:
		return CountActive, fmt.Errorf("unknown counting %q (want active or inactive)", s)
	}
}

// Classify maps a sampling window to a press. With k counted samples out of
// n, k >= ceil(n/2) is held, 0 < k < ceil(n/2) is short, and k == 0 is no
// press.
func Classify(samples []bool, counting Counting) Press {
	n := len(samples)
	if n == 0 {
		return PressNone
	}
	want := counting == CountActive
	k := 0
	for _, s := range samples {
		if s == want {
			k++
		}
	}
	half := (n + 1) / 2
	switch {
	case k >= half:
		return PressHeld
	case k > 0:
		return PressShort
	default:
		return PressNone
	}
}
