// Package imaging provides the pure image and temperature transforms of the
// thermal fusion pipeline.
//
// This package turns a raw thermal sensor grid into something that can be laid
// over a visible-light frame: per-frame normalization, colour mapping, geometric
// registration (crop, mirror, resample, rotate) and the overlay decorations
// drawn on the composited output. Nothing in here starts goroutines or holds
// shared state; callers own synchronization.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Grid cells are addressed as (row, col), row 0 at the top
//   - For windows, (X0,Y0) is inclusive (top-left), (X1,Y1) is exclusive (bottom-right)
//
// # Registration Invariant
//
// Align produces an Aligned value holding a colour image and a temperature
// field. Both have the configured output resolution and both are produced by
// the same source-coordinate mapping, so pixel (x,y) of the image and sample
// (x,y) of the field always come from the same place on the sensor.
//
// # Thread Safety
//
// Grid, TempField and Aligned values are plain data. Once an Aligned value has
// been handed to another goroutine it must be treated as read-only. Colormap
// and Registration are immutable after construction and safe for concurrent
// use. FrameCache is safe for concurrent use.
//
// # Degenerate Frames
//
// A grid whose minimum equals its maximum has no dynamic range. Normalize maps
// every cell of such a grid to MidScale instead of dividing by zero.
package imaging
