// Package capture runs the thermal side of the pipeline.
//
// A Worker pulls grids from a Sensor, registers them onto the visible
// camera's pixel grid and publishes the result. It runs at its own cadence,
// independent of rendering, and survives sensor failures: a failed read skips
// the cycle and leaves the previously published frame in place.
//
// Simulator stands in for the physical sensor on a workstation or in tests.
package capture
