package core

import "serialmodes/protocol"

// FrameSize is the receive FIFO threshold: one interrupt, one command
const FrameSize = protocol.FrameSize

// Frame is one 4-byte command token
type Frame [FrameSize]byte

// FrameSource is the receive side of a serial peripheral
type FrameSource interface {
	Buffered() int
	ReadByte() (byte, error)
}

// FrameOf builds a frame from the first four bytes of s, zero padded
func FrameOf(s string) Frame {
	var f Frame
	copy(f[:], s)
	return f
}

func (f Frame) String() string {
	return string(f[:])
}

// ReadFrame consumes exactly one frame from src. With fewer than FrameSize
// bytes pending nothing is consumed and ok is false.
func ReadFrame(src FrameSource) (f Frame, ok bool) {
	if src.Buffered() < FrameSize {
		return f, false
	}
	for i := range f {
		b, err := src.ReadByte()
		if err != nil {
			return f, false
		}
		f[i] = b
	}
	return f, true
}

// packFrame packs a frame into a word for the event ring
func packFrame(f Frame) uint32 {
	return uint32(f[0])<<24 | uint32(f[1])<<16 | uint32(f[2])<<8 | uint32(f[3])
}
