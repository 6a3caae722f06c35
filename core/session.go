package core

// Mode is the active timer-driven mode
type Mode uint8

const (
	ModeIdle Mode = iota
	ModeBlinker
	ModeMonitor
	ModeTrng
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeBlinker:
		return "blinker"
	case ModeMonitor:
		return "monitor"
	case ModeTrng:
		return "trng"
	}
	return "mode(" + utoa(uint32(m)) + ")"
}

// SessionState is the state shared between the receive and timer handlers
type SessionState struct {
	Mode          Mode
	Running       bool // a timer-driven sequence is in flight
	StopRequested bool // consumed by the next tick
	Phase         BlinkerPhase
	Echo          bool
	FirstStartup  bool // true until the first tick
}

// InitialState returns the power-on state
func InitialState() SessionState {
	return SessionState{Mode: ModeIdle, Phase: PhaseRed, FirstStartup: true}
}

// Session guards a SessionState. Every access goes through the critical
// section so a whole transition is seen by the other handler or not at all.
type Session struct {
	state SessionState
}

// NewSession returns a session in the power-on state
func NewSession() *Session {
	return &Session{state: InitialState()}
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() SessionState {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return s.state
}

// Update runs fn on the state inside the critical section. fn must not block
// or call back into anything that takes the critical section.
func (s *Session) Update(fn func(st *SessionState)) {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	fn(&s.state)
}
