package core

import (
	"strings"
	"testing"
)

func TestCommandRegistry(t *testing.T) {
	registry := NewCommandRegistry()

	registry.Register(CmdEcho, "echo", "toggle echo")

	if registry.Count() != 1 {
		t.Errorf("Expected 1 command, got %d", registry.Count())
	}

	if cmd := registry.Lookup(FrameOf("echo")); cmd != CmdEcho {
		t.Errorf("Expected CmdEcho, got %s", cmd)
	}

	// Matching is exact and case-sensitive
	for _, in := range []string{"ECHO", "Echo", "ech", "ehco"} {
		if cmd := registry.Lookup(FrameOf(in)); cmd != CmdUnknown {
			t.Errorf("Lookup(%q): expected CmdUnknown, got %s", in, cmd)
		}
	}

	// Re-registering replaces rather than duplicates
	registry.Register(CmdEcho, "echo", "toggle echo mode")
	if registry.Count() != 1 {
		t.Errorf("Expected 1 command after re-register, got %d", registry.Count())
	}
}

func TestCommandRegistryRejectsBadName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for a 5-byte command name")
		}
	}()
	NewCommandRegistry().Register(CmdStop, "stops", "")
}

func TestDefaultMenu(t *testing.T) {
	menu := MenuText()

	if !strings.HasPrefix(menu, "Menu for 5 user commands:\r\n") {
		t.Errorf("Unexpected menu header: %q", menu)
	}

	want := []string{"(stop) - ", "(echo) - ", "(leds) - ", "(moni) - ", "(trng) - "}
	last := -1
	for _, item := range want {
		idx := strings.Index(menu, item)
		if idx < 0 {
			t.Errorf("Menu missing %q", item)
			continue
		}
		if idx < last {
			t.Errorf("Menu item %q out of order", item)
		}
		last = idx
	}

	if !strings.HasSuffix(menu, "\r\n") {
		t.Error("Menu should end with CRLF")
	}

	t.Logf("Menu:\n%s", menu)
}

func TestDefaultRegistryCommands(t *testing.T) {
	want := []Command{CmdStop, CmdEcho, CmdLeds, CmdMoni, CmdTrng}
	registry := NewDefaultRegistry()
	got := registry.Commands()
	if len(got) != len(want) {
		t.Fatalf("Expected %d commands, got %d", len(want), len(got))
	}
	for i, info := range got {
		if info.Cmd != want[i] || info.Name.String() != want[i].String() {
			t.Errorf("Command %d = %s %q, want %s", i, info.Cmd, info.Name.String(), want[i])
		}
		if info.Help == "" {
			t.Errorf("Command %s has no help text", info.Cmd)
		}
	}

	// The copy is detached from the registry
	got[0].Help = "changed"
	if registry.Commands()[0].Help == "changed" {
		t.Errorf("Commands returned the registry's own slice")
	}
}
