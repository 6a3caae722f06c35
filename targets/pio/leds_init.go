//go:build rp2040

package pio

import (
	"machine"

	"serialmodes/core"
)

var (
	// PIO allocation tracking
	// RP2040 has 2 PIO blocks (PIO0, PIO1) with 4 state machines each
	pioAllocations = [2][4]bool{} // [pioNum][smNum]
	nextPIONum     = uint8(0)
	nextSMNum      = uint8(0)
)

// NewLEDs returns the best LED backend for the pins. PIO needs green on the
// pin after red; anything else falls back to SIO writes.
func NewLEDs(red, green machine.Pin) (core.LEDs, error) {
	if green == red+1 {
		if pioNum, smNum, ok := allocatePIO(); ok {
			l := NewPIOLEDs(pioNum, smNum)
			if err := l.Init(red); err == nil {
				return l, nil
			}
			releasePIO(pioNum, smNum)
			core.DebugPrintln("leds: PIO init failed, using GPIO")
		}
	}
	return core.NewGPIOLEDs(SIOGPIODriver{}, core.GPIOPin(red), core.GPIOPin(green))
}

// allocatePIO allocates a PIO state machine
// Returns (pioNum, smNum, ok)
func allocatePIO() (uint8, uint8, bool) {
	// Round-robin allocation across PIO blocks and state machines
	for i := 0; i < 8; i++ { // 2 PIO × 4 SM = 8 total
		pioNum := nextPIONum
		smNum := nextSMNum

		// Advance to next slot
		nextSMNum++
		if nextSMNum >= 4 {
			nextSMNum = 0
			nextPIONum = (nextPIONum + 1) % 2
		}

		if !pioAllocations[pioNum][smNum] {
			pioAllocations[pioNum][smNum] = true
			return pioNum, smNum, true
		}
	}
	return 0, 0, false
}

func releasePIO(pioNum, smNum uint8) {
	pioAllocations[pioNum][smNum] = false
}
