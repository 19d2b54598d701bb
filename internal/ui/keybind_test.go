package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeybindRegistry_BindLookup(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "")
	reg.BindWithDesc("SPC q", tea.Quit, "")
	reg.BindWithDesc("j", nil, "")

	if reg.Lookup("q") == nil {
		t.Error("expected q to be bound")
	}
	if reg.Lookup("SPC q") == nil {
		t.Error("expected SPC q to be bound")
	}
	if reg.Lookup("unknown") != nil {
		t.Error("expected unknown to be unbound")
	}
}

func TestKeyHandler_LeaderKey(t *testing.T) {
	reg := NewKeybindRegistry()
	var executed bool
	reg.BindWithDesc("SPC x", func() tea.Msg {
		executed = true
		return nil
	}, "")
	h := NewKeyHandler(reg)

	// Press space -> leader waiting (Bubble Tea reports space as " ")
	consumed, cmd := h.Handle(keyMsg(" "))
	if !consumed || cmd != nil {
		t.Errorf("space: consumed=%v cmd=%v", consumed, cmd)
	}
	if !h.LeaderWaiting {
		t.Error("expected leader waiting after space")
	}

	// Press x -> execute SPC x
	consumed, cmd = h.Handle(keyMsg("x"))
	if !consumed {
		t.Errorf("x: expected consumed")
	}
	if h.LeaderWaiting {
		t.Error("leader should not be waiting after completing sequence")
	}
	if cmd != nil {
		cmd()
		if !executed {
			t.Error("expected command to execute")
		}
	}
}

func TestKeyHandler_EscCancelsLeader(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("SPC x", tea.Quit, "")
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	if !h.LeaderWaiting {
		t.Fatal("expected leader waiting")
	}

	consumed, cmd := h.Handle(keyMsg("esc"))
	if !consumed || cmd != nil {
		t.Errorf("esc: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("esc should cancel leader mode")
	}
}

func TestKeyHandler_SingleKey(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "")
	h := NewKeyHandler(reg)

	consumed, cmd := h.Handle(keyMsg("q"))
	if !consumed || cmd == nil {
		t.Errorf("q: consumed=%v cmd=%v", consumed, cmd)
	}
}

func TestKeyHandler_UnboundFallsThrough(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "")
	h := NewKeyHandler(reg)

	consumed, _ := h.Handle(keyMsg("j"))
	if consumed {
		t.Error("unbound j should not be consumed")
	}
}

func TestKeyHandler_UnknownLeaderSequenceFallsThrough(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("SPC r", tea.Quit, "")
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	consumed, cmd := h.Handle(keyMsg("1"))
	if consumed || cmd != nil {
		t.Errorf("1 after SPC: consumed=%v cmd=%v, want it passed to the input", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("unknown continuation should leave leader mode")
	}
}

func TestKeyHandler_UnknownLeaderSequenceUsesDirectBinding(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("SPC r", tea.Quit, "")
	reg.BindWithDesc("enter", tea.Quit, "")
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	consumed, cmd := h.Handle(keyMsg("enter"))
	if !consumed || cmd == nil {
		t.Errorf("enter after SPC: consumed=%v cmd=%v, want the enter binding", consumed, cmd)
	}
}

func TestKeyHandler_DigitsFallThrough(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("enter", tea.Quit, "")
	reg.BindWithDesc("SPC q", tea.Quit, "")
	h := NewKeyHandler(reg)

	for _, d := range []string{"4", "5", "0"} {
		if consumed, _ := h.Handle(keyMsg(d)); consumed {
			t.Errorf("digit %q should reach the input", d)
		}
	}
}

func TestKeybindRegistry_LeaderHints(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("SPC r", tea.Quit, "Reset")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "quit")

	hints := reg.LeaderHints("")
	if len(hints) != 2 {
		t.Fatalf("LeaderHints = %v, want 2 entries", hints)
	}
	if hints["r"] != "Reset" || hints["q"] != "Quit" {
		t.Errorf("LeaderHints = %v", hints)
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("enter", tea.Quit, "verify")
	reg.BindWithDesc("SPC r", tea.Quit, "Reset")
	h := NewKeyHandler(reg)
	km := NewKeyMap(reg, h)

	idle := km.ShortHelp()
	if len(idle) != 2 {
		t.Fatalf("idle short help has %d bindings, want enter + SPC menu", len(idle))
	}
	if idle[0].Help().Key != "enter" || idle[1].Help().Key != "SPC" {
		t.Errorf("idle short help = %q, %q", idle[0].Help().Key, idle[1].Help().Key)
	}

	h.Handle(keyMsg(" "))
	leader := km.ShortHelp()
	if len(leader) != 2 {
		t.Fatalf("leader short help has %d bindings, want r + esc", len(leader))
	}
	if leader[0].Help().Key != "r" || leader[1].Help().Key != "esc" {
		t.Errorf("leader short help = %q, %q", leader[0].Help().Key, leader[1].Help().Key)
	}
}

// keyMsg creates a tea.KeyMsg for testing. Bubble Tea uses KeyType and Runes.
// KeySpace.String() returns " ", KeyEsc returns "esc", etc.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "q":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	case "x":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}
	case "j":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
