package core

import "time"

// ActionKind is the hardware action a tick performs
type ActionKind uint8

const (
	ActNone    ActionKind = iota
	ActMenu               // print the menu
	ActStop               // print the menu, LEDs off if LEDsOff
	ActLEDs               // drive the LED pair
	ActMonitor            // sample and print battery and temperature
	ActRandom             // read and print one TRNG word
)

// Action is the side effect chosen by Step
type Action struct {
	Kind       ActionKind
	Red, Green bool
	LEDsOff    bool
}

// Rearm is the next one-shot expiry. Arm false leaves the timer idle until a
// command kicks it.
type Rearm struct {
	Arm   bool
	Delay time.Duration
}

// Step advances the mode state machine by one timer expiry. Startup is
// handled first, then a pending stop, then the active mode.
func Step(st SessionState, cfg Config) (SessionState, Action, Rearm) {
	if st.FirstStartup {
		st.FirstStartup = false
		if st.Running {
			// A command beat the first tick; its zero-delay arm merged with
			// the boot arm, so run the requested mode right after the menu.
			return st, Action{Kind: ActMenu}, Rearm{Arm: true}
		}
		return st, Action{Kind: ActMenu}, Rearm{}
	}

	if st.StopRequested {
		stopped := st.Mode
		st.Running = false
		st.StopRequested = false
		st.Phase = PhaseRed
		st.Mode = ModeIdle
		return st, Action{Kind: ActStop, LEDsOff: stopped == ModeBlinker}, Rearm{}
	}

	switch st.Mode {
	case ModeBlinker:
		phase := st.Phase
		red, green := phase.LEDs()
		st.Phase = phase.Next()
		return st, Action{Kind: ActLEDs, Red: red, Green: green}, Rearm{Arm: true, Delay: phase.Delay(cfg)}

	case ModeMonitor:
		return st, Action{Kind: ActMonitor}, Rearm{Arm: true, Delay: cfg.SampleInterval}

	case ModeTrng:
		return st, Action{Kind: ActRandom}, Rearm{Arm: true, Delay: cfg.SampleInterval}
	}

	return st, Action{}, Rearm{}
}
