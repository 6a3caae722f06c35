//go:build rp2040

package main

import (
	"machine"
	"time"

	"serialmodes/core"
	"serialmodes/protocol"
	"serialmodes/targets/pio"
)

// LED pins; consecutive so the PIO backend can drive both
const (
	ledRed   = machine.GPIO16
	ledGreen = machine.GPIO17
)

func main() {
	// Disable watchdog on boot to clear any previous state
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	console := NewConsole()
	UpdateSystemTime()

	core.SetDebugWriter(func(s string) {
		// Debug output shares the console; keep it off unless enabled
		console.Send([]byte("# " + s + protocol.LineEnd))
	})

	leds, err := pio.NewLEDs(ledRed, ledGreen)
	if err != nil {
		core.DebugPrintln("leds: " + err.Error())
		leds = nopLEDs{}
	}

	battery, err := NewBattery()
	if err != nil {
		core.DebugPrintln("battery: " + err.Error())
		return
	}

	timer := core.NewOneShot(core.DefaultScheduler())
	fw := core.NewFirmware(core.Board{
		Serial:  console,
		Timer:   timer,
		RNG:     TRNG{},
		Battery: battery,
		LEDs:    leds,
	}, core.DefaultConfig())
	timer.Bind(fw.OnTimer)

	go console.readerLoop()
	fw.Boot()

	// Main loop: receive handler, then due timers
	for {
		func() {
			defer func() {
				if r := recover(); r != nil {
					console.RX().Reset()
				}
			}()

			UpdateSystemTime()

			for console.RX().Buffered() >= core.FrameSize {
				fw.OnReceive(console.RX())
			}

			core.ProcessTimers()
		}()

		// Yield to the reader goroutine
		time.Sleep(10 * time.Microsecond)
	}
}

type nopLEDs struct{}

func (nopLEDs) Set(red, green bool) {}
