package core

import (
	"context"
	"strings"
	"sync"
	"time"
)

// fakeSerial records everything sent
type fakeSerial struct {
	mu  sync.Mutex
	out strings.Builder
}

func (s *fakeSerial) Send(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out.Write(p)
}

// Take returns and clears the captured output
func (s *fakeSerial) Take() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.out.String()
	s.out.Reset()
	return out
}

type ledState struct{ red, green bool }

// fakeLEDs records every Set call
type fakeLEDs struct {
	history []ledState
}

func (l *fakeLEDs) Set(red, green bool) {
	l.history = append(l.history, ledState{red, green})
}

func (l *fakeLEDs) last() (ledState, bool) {
	if len(l.history) == 0 {
		return ledState{}, false
	}
	return l.history[len(l.history)-1], true
}

// fakeRNG returns values in order, or blocks until ctx is done when hang is set
type fakeRNG struct {
	values []uint32
	hang   bool
}

func (r *fakeRNG) ReadU32(ctx context.Context) (uint32, error) {
	if r.hang || len(r.values) == 0 {
		<-ctx.Done()
		return 0, ErrRNGNotReady
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v, nil
}

type fakeBattery struct {
	raw  uint32
	temp int32
}

func (b *fakeBattery) VoltageRaw() uint32  { return b.raw }
func (b *fakeBattery) TemperatureC() int32 { return b.temp }

// testRig is firmware on a virtual clock
type testRig struct {
	fw      *Firmware
	sched   *Scheduler
	timer   *OneShot
	serial  *fakeSerial
	leds    *fakeLEDs
	rng     *fakeRNG
	battery *fakeBattery
}

func newTestRig() *testRig {
	rig := &testRig{
		sched:   NewScheduler(),
		serial:  &fakeSerial{},
		leds:    &fakeLEDs{},
		rng:     &fakeRNG{},
		battery: &fakeBattery{raw: 3<<8 | 128, temp: 25},
	}
	rig.timer = NewOneShot(rig.sched)
	rig.fw = NewFirmware(Board{
		Serial:  rig.serial,
		Timer:   rig.timer,
		RNG:     rig.rng,
		Battery: rig.battery,
		LEDs:    rig.leds,
	}, Config{RNGTimeout: 5 * time.Millisecond})
	rig.timer.Bind(rig.fw.OnTimer)
	return rig
}

// send feeds a frame through the receive handler
func (r *testRig) send(cmd string) {
	r.fw.HandleFrame(FrameOf(cmd))
}
