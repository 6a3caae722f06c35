//go:build rp2040 || rp2350

package pio

import (
	"device/rp"
	"machine"

	"serialmodes/core"
)

// SIOGPIODriver implements core.GPIODriver with single-cycle I/O writes.
// It is the fallback when the LEDs are not on consecutive pins or no state
// machine is free.
type SIOGPIODriver struct{}

// ConfigureOutput configures a pin as a digital output, driven low
func (SIOGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Low()
	return nil
}

// SetPin drives the pin through the SIO set/clear registers
func (SIOGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	mask := uint32(1) << pin
	if value {
		rp.SIO.GPIO_OUT_SET.Set(mask)
	} else {
		rp.SIO.GPIO_OUT_CLR.Set(mask)
	}
	return nil
}
