package core

// GPIOPin identifies a hardware GPIO pin number
type GPIOPin uint32

// GPIODriver is the abstract GPIO interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureOutput configures a pin as a digital output
	ConfigureOutput(pin GPIOPin) error

	// SetPin sets the pin to high (true) or low (false)
	SetPin(pin GPIOPin, value bool) error
}

// GPIOLEDs drives the LED pair through two GPIO outputs
type GPIOLEDs struct {
	driver     GPIODriver
	red, green GPIOPin
}

// NewGPIOLEDs configures both pins as outputs and switches them off
func NewGPIOLEDs(d GPIODriver, red, green GPIOPin) (*GPIOLEDs, error) {
	for _, pin := range []GPIOPin{red, green} {
		if err := d.ConfigureOutput(pin); err != nil {
			return nil, err
		}
	}
	l := &GPIOLEDs{driver: d, red: red, green: green}
	l.Set(false, false)
	return l, nil
}

// Set implements LEDs
func (l *GPIOLEDs) Set(red, green bool) {
	if err := l.driver.SetPin(l.red, red); err != nil {
		DebugAsync("led: red pin: " + err.Error())
	}
	if err := l.driver.SetPin(l.green, green); err != nil {
		DebugAsync("led: green pin: " + err.Error())
	}
}
