//go:build !gocv

package camera

import "errors"

func openDevice(Config) (Source, error) {
	return nil, errors.New("camera device support requires building with -tags gocv")
}
