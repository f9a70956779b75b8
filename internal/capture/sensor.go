package capture

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ironsheep/thermal-fusion/internal/imaging"
)

// ErrSensorRead marks a thermal grid that could not be read this cycle.
// It is transient: the caller skips the cycle and tries again.
var ErrSensorRead = errors.New("thermal sensor read failed")

// Sensor is a thermal array driver. Capture blocks until the newest grid is
// available and returns it in degrees Celsius.
type Sensor interface {
	Capture(ctx context.Context) (*imaging.Grid, error)
}

// Publisher receives registered thermal frames.
type Publisher interface {
	PublishThermal(a *imaging.Aligned)
}
