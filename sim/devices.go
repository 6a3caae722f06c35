//go:build !tinygo

package sim

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"io"
	"sync"

	"serialmodes/core"
)

// Serial writes console output to an io.Writer, one Send at a time
type Serial struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSerial wraps w
func NewSerial(w io.Writer) *Serial {
	return &Serial{w: w}
}

// Send implements core.SerialPort
func (s *Serial) Send(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w.Write(p)
}

// CryptoRNG reads words from the operating system entropy source
type CryptoRNG struct{}

// ReadU32 implements core.RNG
func (CryptoRNG) ReadU32(ctx context.Context) (uint32, error) {
	if ctx.Err() != nil {
		return 0, core.ErrRNGNotReady
	}
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, core.ErrRNGNotReady
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// Battery reports fixed readings
type Battery struct {
	Millivolts        uint32
	TemperatureTenths int32
}

// VoltageRaw implements core.BatteryMonitor
func (b Battery) VoltageRaw() uint32 {
	return core.MillivoltsToFixed(b.Millivolts)
}

// TemperatureC implements core.BatteryMonitor
func (b Battery) TemperatureC() int32 {
	return b.TemperatureTenths
}

// LEDs prints LED changes
type LEDs struct {
	mu         sync.Mutex
	w          io.Writer
	red, green bool
}

// NewLEDs writes LED state lines to w
func NewLEDs(w io.Writer) *LEDs {
	return &LEDs{w: w}
}

// Set implements core.LEDs
func (l *LEDs) Set(red, green bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.red, l.green = red, green
	io.WriteString(l.w, "[leds] red="+onOff(red)+" green="+onOff(green)+"\n")
}

// State returns the last state set
func (l *LEDs) State() (red, green bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.red, l.green
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
