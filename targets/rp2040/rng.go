//go:build rp2040

package main

import (
	"context"
	"machine"
	"time"

	"serialmodes/core"
)

// rngPoll paces retries while the generator is not ready
const rngPoll = 50 * time.Microsecond

// TRNG implements core.RNG on the ring-oscillator generator
type TRNG struct{}

// ReadU32 retries until a word is ready or ctx is done
func (TRNG) ReadU32(ctx context.Context) (uint32, error) {
	for {
		v, err := machine.GetRNG()
		if err == nil {
			return v, nil
		}
		select {
		case <-ctx.Done():
			return 0, core.ErrRNGNotReady
		default:
		}
		time.Sleep(rngPoll)
	}
}
