package core

import (
	"context"
	"errors"

	"serialmodes/protocol"
)

// ErrRNGNotReady is returned by RNG implementations that gave up waiting
var ErrRNGNotReady = errors.New("trng: number not ready")

// TextRNGNotReady is printed in place of a number when the TRNG times out
const TextRNGNotReady = protocol.TextRNGNotReady

// Firmware ties the session to the board. OnReceive and OnTimer are the two
// handlers; each may preempt the idle loop, and on the host they run on
// different goroutines.
type Firmware struct {
	session *Session
	board   Board
	cfg     Config

	line []byte // timer-context scratch for formatted output
}

// NewFirmware creates firmware in the power-on state
func NewFirmware(board Board, cfg Config) *Firmware {
	cfg.ApplyDefaults()
	return &Firmware{
		session: NewSession(),
		board:   board,
		cfg:     cfg,
		line:    make([]byte, 0, 32),
	}
}

// Session returns the shared session state
func (fw *Firmware) Session() *Session {
	return fw.session
}

// Config returns the effective configuration
func (fw *Firmware) Config() Config {
	return fw.cfg
}

// Boot arms the zero-delay startup tick that prints the menu
func (fw *Firmware) Boot() {
	fw.board.Timer.Arm(0)
}

// OnReceive is the serial-receive handler. It consumes one frame if a full
// one is pending and applies it.
func (fw *Firmware) OnReceive(src FrameSource) {
	f, ok := ReadFrame(src)
	if !ok {
		return
	}
	fw.HandleFrame(f)
}

// HandleFrame applies one frame: echo first, then the reply, then the
// zero-delay hand-off to the timer if a sequence just started
func (fw *Firmware) HandleFrame(f Frame) {
	var reply Reply
	fw.session.Update(func(st *SessionState) {
		*st, reply = Dispatch(*st, f)
	})
	RecordEvent(EvtFrame, uint32(reply.Cmd), packFrame(f))

	if len(reply.Echo) > 0 {
		fw.board.Serial.Send(reply.Echo)
	}
	if reply.Text != "" {
		fw.board.Serial.Send([]byte(reply.Text))
	}
	if reply.ArmNow {
		fw.board.Timer.Arm(0)
	}
}

// OnTimer is the one-shot expiry handler. The transition is decided inside
// the critical section; the hardware action and the re-arm happen after it.
func (fw *Firmware) OnTimer() {
	var (
		before SessionState
		act    Action
		next   Rearm
	)
	fw.session.Update(func(st *SessionState) {
		before = *st
		*st, act, next = Step(*st, fw.cfg)
	})
	RecordEvent(EvtTick, uint32(before.Mode), uint32(before.Phase))

	fw.perform(before, act)

	if next.Arm {
		fw.board.Timer.Arm(next.Delay)
	}
}

func (fw *Firmware) perform(before SessionState, act Action) {
	switch act.Kind {
	case ActMenu:
		fw.board.Serial.Send([]byte(MenuText()))

	case ActStop:
		if act.LEDsOff {
			fw.board.LEDs.Set(false, false)
		}
		RecordEvent(EvtStop, uint32(before.Mode), 0)
		DebugAsync("stopped " + before.Mode.String())
		fw.board.Serial.Send([]byte(MenuText()))

	case ActLEDs:
		fw.board.LEDs.Set(act.Red, act.Green)

	case ActMonitor:
		reading := SensorReading{
			VoltageRaw:   fw.board.Battery.VoltageRaw(),
			TemperatureC: fw.board.Battery.TemperatureC(),
		}
		fw.line = AppendMonitorLine(fw.line[:0], reading)
		fw.board.Serial.Send(fw.line)

	case ActRandom:
		v, err := fw.readRandom()
		if err != nil {
			RecordEvent(EvtRNGTimeout, 0, 0)
			DebugAsync("trng: " + err.Error())
			fw.board.Serial.Send([]byte(TextRNGNotReady))
			return
		}
		fw.line = AppendRandomLine(fw.line[:0], v)
		fw.board.Serial.Send(fw.line)
	}
}

// readRandom bounds the TRNG ready wait by cfg.RNGTimeout
func (fw *Firmware) readRandom() (uint32, error) {
	ctx, cancel := context.WithTimeout(context.Background(), fw.cfg.RNGTimeout)
	defer cancel()
	return fw.board.RNG.ReadU32(ctx)
}
