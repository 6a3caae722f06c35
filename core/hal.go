package core

import (
	"context"
	"time"
)

// SerialPort is the transmit side of the console UART. Both handlers send,
// so implementations must accept concurrent calls and keep each call whole.
// Send must not retain p after it returns.
type SerialPort interface {
	Send(p []byte)
}

// OneShotTimer fires a single expiry after the programmed delay. Arming
// again replaces a pending expiry.
type OneShotTimer interface {
	Arm(d time.Duration)
}

// RNG is the true random number peripheral. ReadU32 waits for a ready word
// until ctx is done.
type RNG interface {
	ReadU32(ctx context.Context) (uint32, error)
}

// BatteryMonitor reads the supply voltage and die temperature
type BatteryMonitor interface {
	// VoltageRaw returns volts in 3.8 fixed point
	VoltageRaw() uint32
	// TemperatureC returns degrees Celsius scaled by 10
	TemperatureC() int32
}

// LEDs drives the red/green indicator pair
type LEDs interface {
	Set(red, green bool)
}

// Board bundles the peripherals the firmware drives
type Board struct {
	Serial  SerialPort
	Timer   OneShotTimer
	RNG     RNG
	Battery BatteryMonitor
	LEDs    LEDs
}
