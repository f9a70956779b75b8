//go:build gocv

package display

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ironsheep/thermal-fusion/internal/render"
)

// Window shows frames in an OpenCV window. Keys pressed while the window has
// focus are forwarded as commands; a full command queue drops the key.
type Window struct {
	win  *gocv.Window
	cmds chan<- render.Command
}

// NewWindow opens a window titled title.
func NewWindow(title string, cmds chan<- render.Command) *Window {
	return &Window{win: gocv.NewWindow(title), cmds: cmds}
}

// Show displays frame and polls the keyboard once.
func (w *Window) Show(ctx context.Context, frame image.Image) error {
	mat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return fmt.Errorf("converting frame: %w", err)
	}
	defer mat.Close()

	w.win.IMShow(mat)
	if cmd, ok := KeyCodeCommand(w.win.WaitKey(1)); ok {
		select {
		case w.cmds <- cmd:
		default:
		}
	}
	return nil
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.win.Close()
}
