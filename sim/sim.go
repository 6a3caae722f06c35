//go:build !tinygo

// Package sim runs the firmware on the host against simulated peripherals
package sim

import (
	"context"
	"errors"
	"io"
	"sync"

	"serialmodes/core"
	"serialmodes/protocol"
)

// rxFifoSize matches a small UART receive FIFO
const rxFifoSize = 32

// Options configures the simulated board
type Options struct {
	Out    io.Writer // console output
	LEDOut io.Writer // LED state lines

	Millivolts        uint32
	TemperatureTenths int32

	// StripNewlines drops CR and LF from input so typed lines frame cleanly
	StripNewlines bool
}

// Sim is firmware wired to simulated peripherals
type Sim struct {
	Firmware *core.Firmware
	Timer    *OneShot
	LEDs     *LEDs

	opts Options

	rxMu sync.Mutex
	rx   *protocol.FifoBuffer
}

// New builds a simulated board. Call Boot to start it.
func New(opts Options, cfg core.Config) *Sim {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.LEDOut == nil {
		opts.LEDOut = io.Discard
	}

	s := &Sim{
		Timer: NewOneShot(),
		LEDs:  NewLEDs(opts.LEDOut),
		opts:  opts,
		rx:    protocol.NewFifoBuffer(rxFifoSize),
	}
	s.Firmware = core.NewFirmware(core.Board{
		Serial: NewSerial(opts.Out),
		Timer:  s.Timer,
		RNG:    CryptoRNG{},
		Battery: Battery{
			Millivolts:        opts.Millivolts,
			TemperatureTenths: opts.TemperatureTenths,
		},
		LEDs: s.LEDs,
	}, cfg)
	s.Timer.Bind(s.Firmware.OnTimer)
	return s
}

// Boot arms the startup tick
func (s *Sim) Boot() {
	s.Firmware.Boot()
}

// Feed pushes received bytes through the FIFO. Every time FrameSize bytes
// are pending the receive handler runs once.
func (s *Sim) Feed(p []byte) {
	s.rxMu.Lock()
	defer s.rxMu.Unlock()

	for len(p) > 0 {
		b := p[0]
		p = p[1:]
		if s.opts.StripNewlines && (b == '\r' || b == '\n') {
			continue
		}
		s.rx.Write([]byte{b})
		if s.rx.Buffered() >= core.FrameSize {
			s.Firmware.OnReceive(s.rx)
		}
	}
}

// Run feeds r until it ends or ctx is cancelled. A clean end of input
// returns nil.
func (s *Sim) Run(ctx context.Context, r io.Reader) error {
	errc := make(chan error, 1)
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				s.Feed(buf[:n])
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				errc <- err
				return
			}
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the timer
func (s *Sim) Close() error {
	s.Timer.Stop()
	return nil
}
