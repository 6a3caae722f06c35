//go:build !tinygo

package sim

import (
	"sync"
	"time"

	"serialmodes/core"
)

// OneShot is a wall-clock one-shot timer. Arming replaces a pending expiry,
// and expiries never overlap: the handler of one finishes before the next
// starts, as with a timer interrupt that cannot preempt itself.
type OneShot struct {
	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	stopped bool
	fire    func()

	run sync.Mutex
}

// NewOneShot creates an unarmed timer
func NewOneShot() *OneShot {
	return &OneShot{}
}

// Bind sets the expiry handler
func (o *OneShot) Bind(fire func()) {
	o.mu.Lock()
	o.fire = fire
	o.mu.Unlock()
}

// Arm implements core.OneShotTimer
func (o *OneShot) Arm(d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		return
	}
	o.seq++
	seq := o.seq
	if o.timer != nil {
		o.timer.Stop()
	}
	o.timer = time.AfterFunc(d, func() { o.expire(seq) })
	core.RecordEvent(core.EvtTimerArm, uint32(d/time.Millisecond), 0)
}

// Stop cancels any pending expiry and ignores later arms
func (o *OneShot) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopped = true
	o.seq++
	if o.timer != nil {
		o.timer.Stop()
	}
}

func (o *OneShot) expire(seq uint64) {
	o.run.Lock()
	defer o.run.Unlock()

	o.mu.Lock()
	current := seq == o.seq && !o.stopped
	fire := o.fire
	o.mu.Unlock()

	// A re-arm that raced this expiry owns the timer now
	if !current || fire == nil {
		return
	}
	fire()
}
