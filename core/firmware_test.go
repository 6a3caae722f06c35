package core

import (
	"strings"
	"testing"
	"time"

	"serialmodes/protocol"
)

func TestFirmwareBootPrintsMenu(t *testing.T) {
	rig := newTestRig()
	rig.fw.Boot()
	rig.sched.Advance(0)

	if got := rig.serial.Take(); got != MenuText() {
		t.Errorf("Boot output = %q, want the menu", got)
	}
	if rig.timer.Pending() {
		t.Errorf("Timer should be idle after the startup tick")
	}
	if st := rig.fw.Session().Snapshot(); st.FirstStartup || st.Running {
		t.Errorf("State after boot = %+v", st)
	}
}

func TestFirmwareBlinkerAndStop(t *testing.T) {
	rig := newTestRig()
	rig.fw.Boot()
	rig.sched.Advance(0)
	rig.serial.Take()

	rig.send("leds")
	if got := rig.serial.Take(); got != TextLedsOn {
		t.Errorf("leds reply = %q", got)
	}

	// First phase runs immediately, then lit/dark holds alternate
	rig.sched.Advance(0)
	rig.sched.Advance(1000 * time.Millisecond)
	rig.sched.Advance(400 * time.Millisecond)
	rig.sched.Advance(1000 * time.Millisecond)
	rig.sched.Advance(400 * time.Millisecond)

	want := []ledState{{true, false}, {}, {false, true}, {}, {true, true}}
	if len(rig.leds.history) != len(want) {
		t.Fatalf("LED history = %+v", rig.leds.history)
	}
	for i := range want {
		if rig.leds.history[i] != want[i] {
			t.Errorf("Phase %d leds = %+v, want %+v", i, rig.leds.history[i], want[i])
		}
	}
	if st := rig.fw.Session().Snapshot(); st.Phase != PhaseBothOff {
		t.Errorf("Phase = %d, want PhaseBothOff", st.Phase)
	}

	rig.send("stop")
	if got := rig.serial.Take(); got != TextStopped {
		t.Errorf("stop reply = %q", got)
	}

	// The stop lands on the next scheduled tick
	rig.sched.Advance(1000 * time.Millisecond)
	if got := rig.serial.Take(); got != MenuText() {
		t.Errorf("Stop tick output = %q", got)
	}
	if last, _ := rig.leds.last(); last != (ledState{}) {
		t.Errorf("LEDs left on after stop: %+v", last)
	}

	want2 := SessionState{Mode: ModeIdle, Phase: PhaseRed}
	if st := rig.fw.Session().Snapshot(); st != want2 {
		t.Errorf("State after stop = %+v, want %+v", st, want2)
	}
	if rig.timer.Pending() {
		t.Errorf("Timer should be idle after stop")
	}
}

func TestFirmwareMonitor(t *testing.T) {
	rig := newTestRig()
	rig.fw.Boot()
	rig.sched.Advance(0)
	rig.serial.Take()

	rig.send("moni")
	if got := rig.serial.Take(); got != TextMoniOn {
		t.Errorf("moni reply = %q", got)
	}

	rig.sched.Advance(0)
	rig.sched.Advance(1000 * time.Millisecond)
	if got := rig.serial.Take(); got != "25c 3.50v\r\n25c 3.50v\r\n" {
		t.Errorf("Monitor output = %q", got)
	}

	// Switching to trng keeps the sequence and the cadence
	rig.rng.values = []uint32{0, 4294967295}
	rig.send("trng")
	if got := rig.serial.Take(); got != TextTrngOn {
		t.Errorf("trng reply = %q", got)
	}
	if n := rig.sched.Advance(999 * time.Millisecond); n != 0 {
		t.Errorf("trng ticked before the monitor interval elapsed")
	}
	rig.sched.Advance(1 * time.Millisecond)
	rig.sched.Advance(1000 * time.Millisecond)
	if got := rig.serial.Take(); got != "0\r\n4294967295\r\n" {
		t.Errorf("TRNG output = %q", got)
	}
}

func TestFirmwareRNGTimeout(t *testing.T) {
	rig := newTestRig()
	rig.rng.hang = true
	rig.fw.Boot()
	rig.sched.Advance(0)
	rig.serial.Take()

	rig.send("trng")
	rig.serial.Take()
	rig.sched.Advance(0)

	if got := rig.serial.Take(); got != TextRNGNotReady {
		t.Errorf("Timeout output = %q", got)
	}
	if !rig.timer.Pending() {
		t.Errorf("TRNG mode should keep ticking after a timeout")
	}
}

func TestFirmwareCommandBeforeFirstTick(t *testing.T) {
	rig := newTestRig()
	rig.fw.Boot()

	rig.send("moni")
	if got := rig.serial.Take(); got != TextMoniOn {
		t.Errorf("moni reply = %q", got)
	}

	rig.sched.Advance(0)
	want := MenuText() + "25c 3.50v\r\n"
	if got := rig.serial.Take(); got != want {
		t.Errorf("Output = %q, want %q", got, want)
	}
	if !rig.timer.Pending() {
		t.Errorf("Monitor should be running")
	}
}

func TestFirmwareEchoAndUnknown(t *testing.T) {
	rig := newTestRig()

	rig.send("echo")
	rig.send("helo")
	got := rig.serial.Take()

	want := TextEchoOn + "helo\r\n" + LineEnd + MenuText()
	if got != want {
		t.Errorf("Output = %q, want %q", got, want)
	}

	rig.send("leds")
	rig.serial.Take()
	rig.send("moni")
	if got := rig.serial.Take(); got != "moni\r\n"+TextLedsOn {
		t.Errorf("Blinker output = %q", got)
	}
	if !strings.HasSuffix(TextLedsOn, protocol.LedsPrompt) {
		t.Errorf("Blinker reply should end with the prompt")
	}
}

func TestFirmwareOnReceive(t *testing.T) {
	rig := newTestRig()
	fifo := protocol.NewFifoBuffer(16)

	fifo.Write([]byte("ech"))
	rig.fw.OnReceive(fifo)
	if got := rig.serial.Take(); got != "" {
		t.Errorf("Partial frame produced %q", got)
	}

	fifo.Write([]byte("o"))
	rig.fw.OnReceive(fifo)
	if got := rig.serial.Take(); got != TextEchoOn {
		t.Errorf("Output = %q", got)
	}
	if !rig.fw.Session().Snapshot().Echo {
		t.Errorf("Echo should be on")
	}
}

func TestFirmwareEvents(t *testing.T) {
	rig := newTestRig()
	rig.fw.Boot()
	rig.sched.Advance(0)
	ClearEvents()

	rig.send("leds")
	rig.sched.Advance(0)

	var frames, ticks, arms int
	for _, evt := range Events() {
		switch evt.Type {
		case EvtFrame:
			frames++
			if evt.Value1 != uint32(CmdLeds) || evt.Value2 != packFrame(FrameOf("leds")) {
				t.Errorf("Frame event = %+v", evt)
			}
		case EvtTick:
			ticks++
		case EvtTimerArm:
			arms++
		}
	}
	if frames != 1 || ticks != 1 || arms != 2 {
		t.Errorf("Events frames=%d ticks=%d arms=%d", frames, ticks, arms)
	}
}
