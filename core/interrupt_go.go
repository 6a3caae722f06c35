//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// irqMask stands in for masking both interrupt sources. On the host the
// receive and timer handlers run on separate goroutines, so the critical
// section has to be a real lock. It is not reentrant.
var irqMask sync.Mutex

// disableInterrupts enters the critical section
func disableInterrupts() State {
	irqMask.Lock()
	return 0
}

// restoreInterrupts leaves the critical section
func restoreInterrupts(state State) {
	irqMask.Unlock()
}
