package core

import (
	"sync"

	"serialmodes/protocol"
)

// Command is a recognized command token
type Command uint8

const (
	CmdUnknown Command = iota
	CmdStop
	CmdEcho
	CmdLeds
	CmdMoni
	CmdTrng
)

func (c Command) String() string {
	switch c {
	case CmdStop:
		return "stop"
	case CmdEcho:
		return "echo"
	case CmdLeds:
		return "leds"
	case CmdMoni:
		return "moni"
	case CmdTrng:
		return "trng"
	}
	return "unknown"
}

// CommandInfo describes one command for matching and for the menu
type CommandInfo struct {
	Cmd  Command
	Name Frame
	Help string
}

// CommandRegistry holds the recognized commands in menu order
type CommandRegistry struct {
	mu       sync.RWMutex
	commands []CommandInfo
	menu     string // Serialized menu for the serial console
}

var globalRegistry = NewDefaultRegistry()

// NewCommandRegistry creates an empty command registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{}
}

// NewDefaultRegistry returns a registry with the five console commands
func NewDefaultRegistry() *CommandRegistry {
	r := NewCommandRegistry()
	r.Register(CmdStop, protocol.CmdStop, "stop current operation, reset system, and wait for next input")
	r.Register(CmdEcho, protocol.CmdEcho, "enables echo mode for user input to the UART")
	r.Register(CmdLeds, protocol.CmdLeds, "runs blinker mode, cycles through red, green, and red + green every second")
	r.Register(CmdMoni, protocol.CmdMoni, "runs temperature and battery monitoring")
	r.Register(CmdTrng, protocol.CmdTrng, "output a random number using TRNG to UART")
	return r
}

// Register adds a command. Names must be exactly FrameSize bytes; matching
// is exact and case-sensitive. Registering a name twice replaces its entry.
func (r *CommandRegistry) Register(cmd Command, name string, help string) {
	if len(name) != FrameSize {
		panic("command name must be 4 bytes: " + name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	info := CommandInfo{Cmd: cmd, Name: FrameOf(name), Help: help}
	for i := range r.commands {
		if r.commands[i].Name == info.Name {
			r.commands[i] = info
			r.rebuildMenu()
			return
		}
	}
	r.commands = append(r.commands, info)
	r.rebuildMenu()
}

// Lookup classifies a frame. Frames that match nothing are CmdUnknown.
func (r *CommandRegistry) Lookup(f Frame) Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.commands {
		if c.Name == f {
			return c.Cmd
		}
	}
	return CmdUnknown
}

// Count returns the number of registered commands
func (r *CommandRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Commands returns the registered commands in menu order
func (r *CommandRegistry) Commands() []CommandInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]CommandInfo, len(r.commands))
	copy(out, r.commands)
	return out
}

// Menu returns the menu text
func (r *CommandRegistry) Menu() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.menu
}

// rebuildMenu rebuilds the menu string
// Must be called with lock held
func (r *CommandRegistry) rebuildMenu() {
	menu := protocol.MenuHeaderPrefix + itoa(len(r.commands)) + " user commands:\r\n"
	for _, c := range r.commands {
		menu += "(" + c.Name.String() + ") - " + c.Help + "\r\n"
	}
	r.menu = menu
}

// Classify looks a frame up in the global registry
func Classify(f Frame) Command {
	return globalRegistry.Lookup(f)
}

// MenuText returns the global menu
func MenuText() string {
	return globalRegistry.Menu()
}
