// Package render owns the live view: the shared render state written by the
// capture worker and the button pollers, the compositor that fuses a visible
// frame with the latest registered thermal frame, and the render loop that
// drives both once per visible frame.
//
// # Shared State
//
// State is the only object the concurrent loops share. Each field has exactly
// one writer role: the capture worker publishes thermal frames, commands
// (from buttons or the keyboard) change the display mode and the parameters.
// The render loop only reads, by taking a Snapshot. Every access holds the
// state's mutex just long enough to copy values in or out; nothing blocks
// while holding it, and no method calls another while locked.
//
// Thermal frames are published as a single *imaging.Aligned pointer, so a
// snapshot always carries an image and a temperature field from the same
// capture cycle. Published frames are never mutated afterwards.
//
// # Display Modes
//
// Four modes cycle Live -> ThermalOnly -> ThresholdFade -> RangeOverlay ->
// Live. The two masked modes blend thermal and visible 50/50 only where the
// co-registered temperature passes the test; every other pixel keeps the
// untouched visible frame.
package render
