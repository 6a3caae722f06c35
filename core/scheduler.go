package core

import "time"

// Timer represents a scheduled event
type Timer struct {
	WakeTime uint32
	Handler  func(*Timer) uint8
	Next     *Timer

	pending bool
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

// Scheduler keeps a wake-time ordered list of software timers. The list and
// the scheduler clock are only touched inside the critical section; handlers
// run outside it so they can take the critical section themselves.
type Scheduler struct {
	timerList   *Timer
	currentTime uint32
}

var defaultScheduler = NewScheduler()

// NewScheduler creates an empty scheduler with its clock at zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// DefaultScheduler returns the scheduler driven by ProcessTimers
func DefaultScheduler() *Scheduler {
	return defaultScheduler
}

// Now returns the scheduler clock in timer ticks
func (s *Scheduler) Now() uint32 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return s.currentTime
}

// ScheduleTimer (re)inserts t to fire at wake. A timer that is already
// pending is moved rather than duplicated.
func (s *Scheduler) ScheduleTimer(t *Timer, wake uint32) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	s.removeTimer(t)
	t.WakeTime = wake
	s.insertTimer(t)
}

// CancelTimer removes t if it is pending
func (s *Scheduler) CancelTimer(t *Timer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	s.removeTimer(t)
}

// NextWake returns the wake time of the earliest pending timer
func (s *Scheduler) NextWake() (uint32, bool) {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	if s.timerList == nil {
		return 0, false
	}
	return s.timerList.WakeTime, true
}

// insertTimer inserts a timer in sorted order by WakeTime
// Must be called inside the critical section
func (s *Scheduler) insertTimer(t *Timer) {
	t.pending = true
	if s.timerList == nil || timerBefore(t.WakeTime, s.timerList.WakeTime) {
		t.Next = s.timerList
		s.timerList = t
		return
	}

	current := s.timerList
	for current.Next != nil && !timerBefore(t.WakeTime, current.Next.WakeTime) {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

// removeTimer unlinks t from the list
// Must be called inside the critical section
func (s *Scheduler) removeTimer(t *Timer) {
	if !t.pending {
		return
	}
	t.pending = false
	if s.timerList == t {
		s.timerList = t.Next
		t.Next = nil
		return
	}
	for cur := s.timerList; cur != nil; cur = cur.Next {
		if cur.Next == t {
			cur.Next = t.Next
			break
		}
	}
	t.Next = nil
}

// popDue unlinks the first timer due at or before now
func (s *Scheduler) popDue(now uint32) *Timer {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	s.currentTime = now
	t := s.timerList
	if t == nil || timerBefore(now, t.WakeTime) {
		return nil
	}
	s.timerList = t.Next
	t.Next = nil // Clear Next pointer to avoid circular references
	t.pending = false
	return t
}

// Dispatch advances the clock to now and runs every due timer. Returns the
// number of handlers called.
func (s *Scheduler) Dispatch(now uint32) int {
	fired := 0
	for {
		timer := s.popDue(now)
		if timer == nil {
			return fired
		}
		fired++
		if timer.Handler(timer) == SF_RESCHEDULE {
			s.ScheduleTimer(timer, timer.WakeTime)
		}
	}
}

// Advance moves the clock forward by d, firing timers in wake order with the
// clock set to each wake time, so handlers that re-arm relative to Now see
// the time they were due.
func (s *Scheduler) Advance(d time.Duration) int {
	target := s.Now() + TicksFromDuration(d)
	fired := 0
	for {
		wake, ok := s.NextWake()
		if !ok || timerBefore(target, wake) {
			break
		}
		fired += s.Dispatch(wake)
	}
	state := disableInterrupts()
	s.currentTime = target
	restoreInterrupts(state)
	return fired
}

// OneShot is a single re-armable one-shot timer on a Scheduler. Arming
// replaces any pending expiry, like reloading a hardware one-shot counter.
type OneShot struct {
	sched *Scheduler
	timer Timer
	fire  func()
}

// NewOneShot creates an unarmed one-shot timer
func NewOneShot(s *Scheduler) *OneShot {
	o := &OneShot{sched: s}
	o.timer.Handler = func(*Timer) uint8 {
		if o.fire != nil {
			o.fire()
		}
		return SF_DONE
	}
	return o
}

// Bind sets the expiry handler
func (o *OneShot) Bind(fire func()) {
	o.fire = fire
}

// Arm implements OneShotTimer
func (o *OneShot) Arm(d time.Duration) {
	o.sched.ScheduleTimer(&o.timer, o.sched.Now()+TicksFromDuration(d))
	RecordEvent(EvtTimerArm, uint32(d/time.Millisecond), 0)
}

// Pending reports whether the timer is armed
func (o *OneShot) Pending() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return o.timer.pending
}
