//go:build !gocv

package main

import (
	"github.com/pkg/errors"

	"github.com/ironsheep/thermal-fusion/internal/render"
)

func openWindow(string, chan<- render.Command) (closingSink, error) {
	return nil, errors.New("window output requires a build with the gocv tag")
}
