// Package display holds the output side of the rig: frame sinks and the
// keyboard.
//
// Sinks receive one composited frame per render cycle. Headless logs the
// frame rate and keeps nothing. Window
// (gocv build tag) shows frames in an OpenCV window and turns its key presses
// into commands.
//
// Console reads commands typed on a terminal, one key per line. Both
// keyboard paths share the same key map:
//
//	q           quit
//	a           next display mode
//	d           previous display mode
//	+ ] right   raise threshold
//	- [ left    lower threshold
//	h           latch threshold as upper limit
//	l           latch threshold as lower limit
package display
