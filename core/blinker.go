package core

import "time"

// BlinkerPhase is one step of the six-step LED cycle
type BlinkerPhase uint8

const (
	PhaseRed BlinkerPhase = iota
	PhaseRedOff
	PhaseGreen
	PhaseGreenOff
	PhaseBoth
	PhaseBothOff

	BlinkerPhases = 6
)

type blinkStep struct {
	red, green bool
	lit        bool // lit steps hold for BlinkOn, dark ones for BlinkOff
}

var blinkTable = [BlinkerPhases]blinkStep{
	PhaseRed:      {red: true, lit: true},
	PhaseRedOff:   {},
	PhaseGreen:    {green: true, lit: true},
	PhaseGreenOff: {},
	PhaseBoth:     {red: true, green: true, lit: true},
	PhaseBothOff:  {},
}

// PhaseFor returns the phase reached after n ticks from PhaseRed
func PhaseFor(n int) BlinkerPhase {
	n %= BlinkerPhases
	if n < 0 {
		n += BlinkerPhases
	}
	return BlinkerPhase(n)
}

// step indexes the table. Values past the last phase wrap, so every
// BlinkerPhase maps to a real step.
func (p BlinkerPhase) step() blinkStep {
	return blinkTable[p%BlinkerPhases]
}

// Next returns the following phase
func (p BlinkerPhase) Next() BlinkerPhase {
	return (p%BlinkerPhases + 1) % BlinkerPhases
}

// LEDs returns the LED state for the phase
func (p BlinkerPhase) LEDs() (red, green bool) {
	s := p.step()
	return s.red, s.green
}

// Delay returns how long the phase holds before the next tick
func (p BlinkerPhase) Delay(cfg Config) time.Duration {
	if p.step().lit {
		return cfg.BlinkOn
	}
	return cfg.BlinkOff
}
