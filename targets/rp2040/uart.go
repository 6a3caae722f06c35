//go:build rp2040

package main

import (
	"machine"
	"sync"
	"time"

	"serialmodes/protocol"
)

// Console UART pins
const (
	uartTX = machine.GPIO0
	uartRX = machine.GPIO1
)

// Console is the UART0 console. Received bytes are moved into a FIFO that
// the main loop drains one frame at a time.
type Console struct {
	uart *machine.UART
	rx   *protocol.FifoBuffer

	txMu sync.Mutex

	overruns uint32
}

// NewConsole configures UART0 at the console baud rate
func NewConsole() *Console {
	c := &Console{
		uart: machine.UART0,
		rx:   protocol.NewFifoBuffer(64),
	}
	c.uart.Configure(machine.UARTConfig{
		BaudRate: protocol.Baud,
		TX:       uartTX,
		RX:       uartRX,
	})
	return c
}

// Send implements core.SerialPort
func (c *Console) Send(p []byte) {
	c.txMu.Lock()
	defer c.txMu.Unlock()
	c.uart.Write(p)
}

// RX returns the receive FIFO
func (c *Console) RX() *protocol.FifoBuffer {
	return c.rx
}

// readerLoop runs in a goroutine, moving UART bytes into the FIFO
func (c *Console) readerLoop() {
	for {
		for c.uart.Buffered() > 0 {
			b, err := c.uart.ReadByte()
			if err != nil {
				break
			}
			if c.rx.Write([]byte{b}) == 0 {
				// FIFO full, drop
				c.overruns++
			}
		}
		// Yield to avoid a busy loop
		time.Sleep(100 * time.Microsecond)
	}
}
