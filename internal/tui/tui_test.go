package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/msarac/nexus/internal/provider"
)

func newTestModel() Model {
	return New(&provider.Mock{Response: "hi"}, "system prompt", "monokai")
}

func press(m Model, runes string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(runes)})
	return next.(Model)
}

func enter(m Model) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestHelpCommand(t *testing.T) {
	m := newTestModel()
	m = press(m, "/help")
	m, cmd := enter(m)

	if cmd != nil {
		t.Error("/help should not start a stream")
	}
	if len(m.entries) != 1 || !strings.Contains(m.entries[0].content, "/clear") {
		t.Errorf("help entry missing: %+v", m.entries)
	}
	if !strings.Contains(m.View(), "/clear") {
		t.Error("help text not rendered")
	}
}

func TestClearCommand(t *testing.T) {
	m := newTestModel()
	m.entries = []chatEntry{{role: "user", content: "old"}}
	m.history = []provider.Message{provider.User("old")}

	m = press(m, "/clear")
	m, _ = enter(m)

	if len(m.entries) != 0 || len(m.history) != 0 {
		t.Errorf("conversation not cleared: %d entries, %d history", len(m.entries), len(m.history))
	}
}

func TestExitCommandQuits(t *testing.T) {
	m := newTestModel()
	m = press(m, "/exit")
	_, cmd := enter(m)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if msg := cmd(); msg == nil {
		t.Error("quit command returned nil msg")
	}
}

func TestSubmitStartsStream(t *testing.T) {
	m := newTestModel()
	m = press(m, "what does main do")
	m, cmd := enter(m)

	if !m.streaming {
		t.Error("model should be streaming after submit")
	}
	if cmd == nil {
		t.Fatal("expected batch command")
	}
	if len(m.history) != 1 || m.history[0].Role != provider.RoleUser {
		t.Errorf("history = %+v", m.history)
	}
}

func TestStreamLifecycle(t *testing.T) {
	m := newTestModel()
	m = press(m, "hello")
	m, _ = enter(m)

	next, _ := m.Update(chunkMsg("partial "))
	m = next.(Model)
	next, _ = m.Update(chunkMsg("answer"))
	m = next.(Model)

	if m.pending != "partial answer" {
		t.Errorf("pending = %q", m.pending)
	}
	if !strings.Contains(m.View(), "thinking") {
		t.Error("spinner line missing during stream")
	}

	next, _ = m.Update(doneMsg{})
	m = next.(Model)

	if m.streaming {
		t.Error("still streaming after done")
	}
	last := m.entries[len(m.entries)-1]
	if last.role != "assistant" || last.content != "partial answer" {
		t.Errorf("final entry = %+v", last)
	}
	if len(m.history) != 2 {
		t.Errorf("history length = %d, want 2 (user + assistant)", len(m.history))
	}
}

func TestEnterIgnoredWhileStreaming(t *testing.T) {
	m := newTestModel()
	m = press(m, "first")
	m, _ = enter(m)

	m = press(m, "second")
	before := len(m.history)
	m, _ = enter(m)
	if len(m.history) != before {
		t.Error("submit should be ignored while streaming")
	}
}

func TestErrMsgRendered(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(errMsg{err: errTest})
	m = next.(Model)

	if !strings.Contains(m.View(), "boom") {
		t.Error("error not rendered in view")
	}
}

var errTest = &testErr{}

type testErr struct{}

func (*testErr) Error() string { return "boom" }
