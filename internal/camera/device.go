//go:build gocv

package camera

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"sync"

	"gocv.io/x/gocv"
)

// Device reads frames from an OpenCV capture device.
type Device struct {
	mu  sync.Mutex
	cap *gocv.VideoCapture
	mat gocv.Mat
}

func openDevice(cfg Config) (Source, error) {
	return OpenDevice(cfg.Device, cfg.Width, cfg.Height)
}

// OpenDevice opens device, which is either a numeric index or a URL, and
// requests width×height frames.
func OpenDevice(device string, width, height int) (*Device, error) {
	var id interface{} = device
	if n, err := strconv.Atoi(device); err == nil {
		id = n
	}
	vc, err := gocv.OpenVideoCapture(id)
	if err != nil {
		return nil, fmt.Errorf("opening camera %q: %w", device, err)
	}
	vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(height))
	return &Device{cap: vc, mat: gocv.NewMat()}, nil
}

// Capture reads the next frame.
func (d *Device) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if ok := d.cap.Read(&d.mat); !ok || d.mat.Empty() {
		return nil, fmt.Errorf("camera returned no frame")
	}
	return d.mat.ToImage()
}

// Close releases the device.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.mat.Close(); err != nil {
		return err
	}
	return d.cap.Close()
}
