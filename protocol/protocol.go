// Package protocol defines the serial console wire format: 4-byte command
// frames in, CRLF terminated text out
package protocol

// Version represents the firmware version
const Version = "0.1.0"

// Wire constants
const (
	Baud      = 9600 // 8N1, no flow control
	FrameSize = 4    // receive FIFO threshold, one command per interrupt
	LineEnd   = "\r\n"
)

// Command names
const (
	CmdStop = "stop"
	CmdEcho = "echo"
	CmdLeds = "leds"
	CmdMoni = "moni"
	CmdTrng = "trng"
)

// Console replies
const (
	TextEchoOn      = "Echo mode on\r\n"
	TextEchoOff     = "Echo mode off\r\n"
	TextStopped     = "Operation stopped - waiting for next input\r\n"
	TextLedsOn      = "LED blinker mode on\r\nPlease use (stop) to safely stop the blinker mode and return to the main menu\r\n" + LedsPrompt
	TextMoniOn      = "Temperature and Battery monitor mode on\r\n"
	TextTrngOn      = "TRNG mode on\r\n"
	TextRNGNotReady = "TRNG not ready\r\n"

	// LedsPrompt trails the blinker acknowledgement without a line end
	LedsPrompt = "(leds) "

	MenuHeaderPrefix = "Menu for "
)
