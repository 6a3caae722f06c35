// Package board is the host side of the serial console: it sends 4-byte
// command frames and turns the board's text output into reports.
package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/golang/glog"

	"serialmodes/host/serial"
	"serialmodes/protocol"
)

// ErrBadFrame is returned for commands that are not exactly one frame long
var ErrBadFrame = errors.New("command must be exactly 4 bytes")

// ErrClosed is returned after Close
var ErrClosed = errors.New("board connection closed")

// idleBackoff paces retries while the port reports an idle line
const idleBackoff = 10 * time.Millisecond

// Client is a connection to a board
type Client struct {
	port io.ReadWriteCloser

	writeMu sync.Mutex
	reports chan protocol.Report
	done    chan struct{}

	mu     sync.Mutex
	closed bool
	err    error
}

// Dial opens the serial device and starts reading from it
func Dial(cfg *serial.Config) (*Client, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, err
	}
	glog.Infof("connected to %s at %d baud", cfg.Device, cfg.Baud)
	return NewClient(port), nil
}

// NewClient starts reading reports from an open port
func NewClient(port io.ReadWriteCloser) *Client {
	c := &Client{
		port:    port,
		reports: make(chan protocol.Report, 64),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Reports delivers parsed output lines. The channel is closed when the
// connection ends.
func (c *Client) Reports() <-chan protocol.Report {
	return c.reports
}

// Send writes one command frame
func (c *Client) Send(cmd string) error {
	if len(cmd) != protocol.FrameSize {
		return fmt.Errorf("%q: %w", cmd, ErrBadFrame)
	}
	if c.isClosed() {
		return ErrClosed
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if _, err := c.port.Write([]byte(cmd)); err != nil {
		return fmt.Errorf("failed to send %q: %w", cmd, err)
	}
	glog.V(2).Infof("TX %q", cmd)
	return nil
}

// Await returns the next report of the given kind. Reports of other kinds
// are dropped.
func (c *Client) Await(ctx context.Context, kind protocol.ReportKind) (protocol.Report, error) {
	for {
		select {
		case r, ok := <-c.reports:
			if !ok {
				return protocol.Report{}, c.Err()
			}
			if r.Kind == kind {
				return r, nil
			}
		case <-ctx.Done():
			return protocol.Report{}, ctx.Err()
		}
	}
}

// Err returns the error that ended the read loop, if any
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	if c.closed {
		return ErrClosed
	}
	return nil
}

// Close closes the port and waits for the reader to stop
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	err := c.port.Close()
	<-c.done
	return err
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Client) readLoop() {
	defer close(c.done)
	defer close(c.reports)

	var (
		buf  = make([]byte, 256)
		line []byte
	)
	for {
		n, err := c.port.Read(buf)
		for _, b := range buf[:n] {
			if b != '\n' {
				line = append(line, b)
				continue
			}
			c.deliver(protocol.ParseLine(string(line)))
			line = line[:0]
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF) && !c.isClosed():
			// tarm/serial reports an idle line this way
			time.Sleep(idleBackoff)
		default:
			if !c.isClosed() {
				glog.Warningf("serial read failed: %v", err)
				c.mu.Lock()
				c.err = err
				c.mu.Unlock()
			}
			return
		}
	}
}

func (c *Client) deliver(r protocol.Report) {
	if r.Kind == protocol.ReportOther && r.Line == "" {
		return
	}
	glog.V(2).Infof("RX %s %q", r.Kind, r.Line)
	select {
	case c.reports <- r:
	default:
		glog.Warningf("report dropped: %q", r.Line)
	}
}
