package control

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// GPIOLine reads a button wired to a GPIO pin.
type GPIOLine struct {
	pin       gpio.PinIO
	activeLow bool
}

// OpenGPIO initializes the host drivers and configures the named pin (for
// example "GPIO22") as an input with pull. Buttons switching to ground use
// gpio.PullUp with activeLow set.
func OpenGPIO(name string, pull gpio.Pull, activeLow bool) (*GPIOLine, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing GPIO host drivers")
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, errors.Errorf("no GPIO pin named %q", name)
	}
	return NewGPIOLine(pin, pull, activeLow)
}

// NewGPIOLine configures pin as an input.
func NewGPIOLine(pin gpio.PinIO, pull gpio.Pull, activeLow bool) (*GPIOLine, error) {
	if err := pin.In(pull, gpio.NoEdge); err != nil {
		return nil, errors.Wrapf(err, "configuring %s as input", pin)
	}
	return &GPIOLine{pin: pin, activeLow: activeLow}, nil
}

// Active reports whether the button is pressed.
func (l *GPIOLine) Active() (bool, error) {
	level := l.pin.Read()
	if l.activeLow {
		return level == gpio.Low, nil
	}
	return level == gpio.High, nil
}

// Name returns the pin name.
func (l *GPIOLine) Name() string {
	return l.pin.Name()
}

// Close releases the pin.
func (l *GPIOLine) Close() error {
	return l.pin.Halt()
}

// ParsePull accepts "up", "down", "float" or "none".
func ParsePull(s string) (gpio.Pull, error) {
	switch s {
	case "up":
		return gpio.PullUp, nil
	case "down":
		return gpio.PullDown, nil
	case "float":
		return gpio.Float, nil
	case "none", "":
		return gpio.PullNoChange, nil
	default:
		return gpio.PullNoChange, errors.Errorf("unknown pull %q (want up, down, float or none)", s)
	}
}
