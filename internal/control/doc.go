// Package control turns momentary push buttons into render commands.
//
// Each button has its own Poller. While the line is inactive the poller
// checks it at a coarse idle cadence; once it reads active the poller takes a
// fixed number of samples at a fixed interval and classifies the window as a
// short press, a held press, or nothing. The classification counts either
// active or inactive samples depending on the button's Counting setting:
// the mode and threshold buttons count inactive samples, so a press released
// early reads as held. That behaviour is long-standing on the rig and is kept.
//
// A line that cannot be read is treated as not pressed.
package control
