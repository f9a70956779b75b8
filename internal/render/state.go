package render

import (
	"fmt"
	"sync"

	"github.com/ironsheep/thermal-fusion/internal/imaging"
)

// Default parameter values and bounds.
const (
	DefaultThreshold  = -40.0
	DefaultLowerLimit = 30.0
	DefaultUpperLimit = 60.0

	DefaultMinTemp = -40.0
	DefaultMaxTemp = 300.0
)

// Parameters are the user-adjustable values the masked modes test against.
type Parameters struct {
	// Threshold is the ThresholdFade cut-off and the value latched into
	// Lower or Upper by the set-limit commands.
	Threshold float64
	// Lower and Upper bound the RangeOverlay band, both inclusive. Lower
	// may exceed Upper, in which case no pixel is in range.
	Lower float64
	Upper float64
}

// DefaultParameters returns the power-on values.
func DefaultParameters() Parameters {
	return Parameters{
		Threshold: DefaultThreshold,
		Lower:     DefaultLowerLimit,
		Upper:     DefaultUpperLimit,
	}
}

// Bounds is the closed interval every parameter is clamped to.
type Bounds struct {
	Min float64
	Max float64
}

// DefaultBounds returns the sensor's rated range.
func DefaultBounds() Bounds {
	return Bounds{Min: DefaultMinTemp, Max: DefaultMaxTemp}
}

// Clamp returns v limited to [b.Min, b.Max].
func (b Bounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Snapshot is a consistent copy of the render state taken under one lock.
type Snapshot struct {
	// Thermal is the latest published frame, or nil before the first one.
	Thermal *imaging.Aligned
	Mode    DisplayMode
	Params  Parameters
}

// State is the shared render state. The zero value is not usable; call
// NewState.
type State struct {
	mu      sync.Mutex
	thermal *imaging.Aligned
	mode    DisplayMode
	params  Parameters
	bounds  Bounds
}

// NewState returns a state holding no thermal frame yet. The initial
// parameters are clamped to bounds.
func NewState(mode DisplayMode, params Parameters, bounds Bounds) (*State, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("invalid display mode %d", int(mode))
	}
	if !(bounds.Min <= bounds.Max) {
		return nil, fmt.Errorf("invalid parameter bounds [%v, %v]", bounds.Min, bounds.Max)
	}
	return &State{
		mode: mode,
		params: Parameters{
			Threshold: bounds.Clamp(params.Threshold),
			Lower:     bounds.Clamp(params.Lower),
			Upper:     bounds.Clamp(params.Upper),
		},
		bounds: bounds,
	}, nil
}

// PublishThermal replaces the current thermal frame. a must not be modified
// after this call.
func (s *State) PublishThermal(a *imaging.Aligned) {
	s.mu.Lock()
	s.thermal = a
	s.mu.Unlock()
}

// Snapshot copies the thermal frame pointer, mode and parameters.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Thermal: s.thermal, Mode: s.mode, Params: s.params}
}

// Mode returns the current display mode.
func (s *State) Mode() DisplayMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Parameters returns the current parameters.
func (s *State) Parameters() Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Bounds returns the clamp interval.
func (s *State) Bounds() Bounds {
	return s.bounds
}

// SetMode selects m. Invalid modes are folded into range.
func (s *State) SetMode(m DisplayMode) DisplayMode {
	m = normalizeMode(int(m))
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
	return m
}

// CycleMode advances to the next mode and returns it.
func (s *State) CycleMode() DisplayMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = s.mode.Next()
	return s.mode
}

// PreviousMode steps back one mode and returns it.
func (s *State) PreviousMode() DisplayMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = s.mode.Prev()
	return s.mode
}

// AdjustThreshold adds delta to the threshold, clamps it and returns the new
// value.
func (s *State) AdjustThreshold(delta float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Threshold = s.bounds.Clamp(s.params.Threshold + delta)
	return s.params.Threshold
}

// SetThreshold stores v, clamped, and returns the stored value.
func (s *State) SetThreshold(v float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Threshold = s.bounds.Clamp(v)
	return s.params.Threshold
}

// LatchUpper copies the threshold into the upper limit and returns it.
func (s *State) LatchUpper() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Upper = s.params.Threshold
	return s.params.Upper
}

// LatchLower copies the threshold into the lower limit and returns it.
func (s *State) LatchLower() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Lower = s.params.Threshold
	return s.params.Lower
}
