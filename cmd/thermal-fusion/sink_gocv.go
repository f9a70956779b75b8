//go:build gocv

package main

import (
	"github.com/ironsheep/thermal-fusion/internal/display"
	"github.com/ironsheep/thermal-fusion/internal/render"
)

func openWindow(title string, cmds chan<- render.Command) (closingSink, error) {
	return display.NewWindow(title, cmds), nil
}
