package core

import "serialmodes/protocol"

// Console replies
const (
	TextEchoOn  = protocol.TextEchoOn
	TextEchoOff = protocol.TextEchoOff
	TextStopped = protocol.TextStopped
	TextLedsOn  = protocol.TextLedsOn
	TextMoniOn  = protocol.TextMoniOn
	TextTrngOn  = protocol.TextTrngOn

	LineEnd = protocol.LineEnd
)

// Reply is what the receive handler sends and arms after a dispatch
type Reply struct {
	Cmd    Command // CmdUnknown when the frame was rejected or unrecognized
	Echo   []byte  // raw frame plus line end, when echo was on
	Text   string
	ArmNow bool // Running went false->true, hand off to the timer now
}

// Dispatch applies one frame to the state. It is pure: the caller runs it
// inside the critical section and performs the Reply afterwards.
func Dispatch(st SessionState, f Frame) (SessionState, Reply) {
	var reply Reply
	if st.Echo {
		reply.Echo = append(append(make([]byte, 0, FrameSize+len(LineEnd)), f[:]...), LineEnd...)
	}

	cmd := Classify(f)
	switch {
	case cmd == CmdEcho:
		st.Echo = !st.Echo
		if st.Echo {
			reply.Text = TextEchoOn
		} else {
			reply.Text = TextEchoOff
		}

	case cmd == CmdStop && st.Running && !st.StopRequested:
		st.StopRequested = true
		reply.Text = TextStopped

	case cmd == CmdLeds:
		// Repeated leds pokes are acknowledged but never restart the cycle
		st.Mode = ModeBlinker
		reply.Text = TextLedsOn
		reply.ArmNow = start(&st)

	case cmd == CmdMoni && st.Mode != ModeBlinker:
		st.Mode = ModeMonitor
		reply.Text = TextMoniOn
		reply.ArmNow = start(&st)

	case cmd == CmdTrng && st.Mode != ModeBlinker:
		st.Mode = ModeTrng
		reply.Text = TextTrngOn
		reply.ArmNow = start(&st)

	default:
		cmd = CmdUnknown
		if st.Mode == ModeBlinker {
			reply.Text = TextLedsOn
		} else {
			reply.Text = LineEnd + MenuText()
		}
	}

	reply.Cmd = cmd
	return st, reply
}

// start marks a sequence in flight and reports whether the timer must be
// kicked; a sequence already running picks the new mode up on its next tick
func start(st *SessionState) bool {
	if st.Running {
		return false
	}
	st.Running = true
	return true
}
