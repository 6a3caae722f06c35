package core

import (
	"sync/atomic"
	"time"
)

// TimerFreq is the tick rate of the system clock (1MHz microsecond counter)
const TimerFreq = 1000000

// systemTicks is written by the board main loop and read by handlers
var systemTicks uint32

// GetTime returns the current system time in timer ticks
func GetTime() uint32 {
	return atomic.LoadUint32(&systemTicks)
}

// SetTime sets the current system time (for testing/hardware integration)
func SetTime(ticks uint32) {
	atomic.StoreUint32(&systemTicks, ticks)
}

// TimerFromMS converts milliseconds to timer ticks
func TimerFromMS(ms uint32) uint32 {
	return ms * (TimerFreq / 1000)
}

// TicksFromDuration converts a duration to timer ticks, rounding down.
// Negative durations are treated as zero.
func TicksFromDuration(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	return uint32(d / (time.Second / TimerFreq))
}

// DurationFromTicks converts timer ticks back to a duration
func DurationFromTicks(ticks uint32) time.Duration {
	return time.Duration(ticks) * (time.Second / TimerFreq)
}

// timerBefore reports whether tick a comes before tick b, tolerating wrap
// of the 32-bit counter.
func timerBefore(a, b uint32) bool {
	return int32(a-b) < 0
}

// ProcessTimers runs due timers on the default scheduler against the
// current system time
func ProcessTimers() {
	defaultScheduler.Dispatch(GetTime())
}
