package core

import (
	"sync"
	"testing"
)

func TestSessionUpdateIsAtomic(t *testing.T) {
	s := NewSession()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s.Update(func(st *SessionState) {
					// Running and Mode always move together
					if st.Running != (st.Mode != ModeIdle) {
						t.Errorf("Torn state %+v", *st)
					}
					if st.Running {
						st.Running = false
						st.Mode = ModeIdle
					} else {
						st.Running = true
						st.Mode = ModeTrng
					}
				})
			}
		}()
	}
	wg.Wait()

	st := s.Snapshot()
	if st.Running || st.Mode != ModeIdle {
		t.Errorf("Even number of toggles should end idle, got %+v", st)
	}
}

func TestModeString(t *testing.T) {
	for m, want := range map[Mode]string{
		ModeIdle:    "idle",
		ModeBlinker: "blinker",
		ModeMonitor: "monitor",
		ModeTrng:    "trng",
		Mode(9):     "mode(9)",
	} {
		if m.String() != want {
			t.Errorf("Mode(%d).String() = %q, want %q", m, m.String(), want)
		}
	}
}
