package core

import (
	"testing"

	"serialmodes/protocol"
)

func TestReadFrame(t *testing.T) {
	fifo := protocol.NewFifoBuffer(16)

	fifo.Write([]byte("led"))
	if _, ok := ReadFrame(fifo); ok {
		t.Fatalf("ReadFrame should wait for a full frame")
	}
	if fifo.Available() != 3 {
		t.Errorf("Partial frame consumed: %d bytes left", fifo.Available())
	}

	fifo.Write([]byte("smoni"))
	f, ok := ReadFrame(fifo)
	if !ok || f != FrameOf("leds") {
		t.Errorf("First frame = %q %v", f, ok)
	}
	f, ok = ReadFrame(fifo)
	if !ok || f != FrameOf("moni") {
		t.Errorf("Second frame = %q %v", f, ok)
	}
	if _, ok := ReadFrame(fifo); ok {
		t.Errorf("Empty FIFO produced a frame")
	}
}

func TestFrameOf(t *testing.T) {
	if FrameOf("ab") != (Frame{'a', 'b', 0, 0}) {
		t.Errorf("Short input should be zero padded")
	}
	if FrameOf("trngX") != FrameOf("trng") {
		t.Errorf("Long input should be truncated")
	}
	if packFrame(FrameOf("stop")) != 0x73746F70 {
		t.Errorf("packFrame = %#x", packFrame(FrameOf("stop")))
	}
}
