package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bowling/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"a", runeKey('a'), core.ActionMoveLeft, false},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionMoveLeft, false},
		{"d", runeKey('d'), core.ActionMoveRight, false},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionMoveRight, false},
		{"e", runeKey('e'), core.ActionLaunch, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionLaunch, false},
		{"r", runeKey('r'), core.ActionReset, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%s) = (%v, %v), want (%v, %v)",
					tt.name, action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrameKeepsOrder(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	for _, r := range []rune{'a', 'a', 'e', 'z', 'd'} {
		if km.MapKeyToFrame(runeKey(r), &frame) {
			t.Fatalf("key %q reported quit", r)
		}
	}

	want := []core.Action{core.ActionMoveLeft, core.ActionMoveLeft, core.ActionLaunch, core.ActionMoveRight}
	if len(frame.Actions) != len(want) {
		t.Fatalf("frame = %v, want %v", frame.Actions, want)
	}
	for i := range want {
		if frame.Actions[i] != want[i] {
			t.Errorf("Actions[%d] = %v, want %v", i, frame.Actions[i], want[i])
		}
	}

	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q should report quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit should not be queued as a lane action")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('b'), MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%s) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
