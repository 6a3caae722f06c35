//go:build rp2040

package pio

// PIO LED backend using tinygo-org/pio package
// The CPU only writes a 2-bit word; the state machine latches it onto two
// consecutive pins, so an LED update is a single FIFO write.

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// buildLEDProgram creates the LED latch program using AssemblerV0
//
// Word format:
//
//	Bit 0: red (base pin)
//	Bit 1: green (base pin + 1)
func buildLEDProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),          // 0: pull block
		asm.Out(rp2pio.OutDestPins, 2).Encode(), // 1: out pins, 2
		// .wrap
	}
}

const ledPIOOrigin = -1 // Any free offset; the program has no jumps

// PIOLEDs drives a red/green pair on pins base and base+1
type PIOLEDs struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	base   machine.Pin
	offset uint8
}

// NewPIOLEDs creates a PIO LED backend on the given state machine
// pioNum: 0 for PIO0, 1 for PIO1
// smNum: 0-3 for state machine number
func NewPIOLEDs(pioNum, smNum uint8) *PIOLEDs {
	var pioHW *rp2pio.PIO
	if pioNum == 0 {
		pioHW = rp2pio.PIO0
	} else {
		pioHW = rp2pio.PIO1
	}
	return &PIOLEDs{
		pio: pioHW,
		sm:  pioHW.StateMachine(smNum),
	}
}

// Init loads the program and starts the state machine with both LEDs off
func (l *PIOLEDs) Init(base machine.Pin) error {
	l.base = base

	// Claim the state machine before touching it
	l.sm.TryClaim()

	program := buildLEDProgram()
	offset, err := l.pio.AddProgram(program, ledPIOOrigin)
	if err != nil {
		return err
	}
	l.offset = offset

	l.base.Configure(machine.PinConfig{Mode: l.pio.PinMode()})
	(l.base + 1).Configure(machine.PinConfig{Mode: l.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetOutPins(l.base, 2)
	// Shift right so bit 0 lands on the base pin; explicit PULL, no autopull
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)

	// Pin directions must be set after Init
	l.sm.Init(offset, cfg)
	l.sm.SetPindirsConsecutive(l.base, 2, true)
	l.sm.SetPinsConsecutive(l.base, 2, false)
	l.sm.SetEnabled(true)
	return nil
}

// Set implements core.LEDs
func (l *PIOLEDs) Set(red, green bool) {
	var word uint32
	if red {
		word |= 1
	}
	if green {
		word |= 2
	}
	// Two instructions per word, the FIFO drains almost immediately
	for l.sm.IsTxFIFOFull() {
	}
	l.sm.TxPut(word)
}
