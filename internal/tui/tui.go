// Package tui implements the interactive chat session as a bubbletea
// program. One session holds one conversation; context carries across turns
// until /clear.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msarac/nexus/internal/provider"
	"github.com/msarac/nexus/internal/ui"
)

const helpText = `Commands:
  /help   show this help
  /clear  reset the conversation
  /exit   leave the chat`

type chatEntry struct {
	role    string
	content string
}

// Stream messages delivered from the provider goroutine.
type streamStartedMsg struct{ ch <-chan provider.StreamChunk }
type chunkMsg string
type doneMsg struct{}
type errMsg struct{ err error }

// Model is the bubbletea model for a chat session.
type Model struct {
	input   textarea.Model
	spin    spinner.Model
	entries []chatEntry
	history []provider.Message

	prov      provider.Provider
	system    string
	theme     string
	streaming bool
	pending   string
	chunks    <-chan provider.StreamChunk
	cancel    context.CancelFunc

	width  int
	height int
	err    error
}

// New creates a chat model backed by prov. system seeds every conversation.
func New(prov provider.Provider, system, theme string) Model {
	input := textarea.New()
	input.Placeholder = "Ask about your code (/help for commands)"
	input.SetHeight(3)
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorAccent))

	return Model{
		input:  input,
		spin:   spin,
		prov:   prov,
		system: system,
		theme:  theme,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case streamStartedMsg:
		m.chunks = msg.ch
		return m, m.waitForChunk()

	case chunkMsg:
		m.pending += string(msg)
		return m, m.waitForChunk()

	case doneMsg:
		m.entries = append(m.entries, chatEntry{role: "assistant", content: m.pending})
		m.history = append(m.history, provider.Message{Role: provider.RoleAssistant, Content: m.pending})
		m.pending = ""
		m.streaming = false
		m.cancel = nil
		return m, nil

	case errMsg:
		m.err = msg.err
		m.pending = ""
		m.streaming = false
		m.cancel = nil
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.streaming {
			return m, nil
		}
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.Reset()
		return m.submit(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	switch text {
	case "/exit", "/quit":
		return m, tea.Quit
	case "/clear":
		m.entries = nil
		m.history = nil
		m.err = nil
		return m, nil
	case "/help":
		m.entries = append(m.entries, chatEntry{role: "system", content: helpText})
		return m, nil
	}

	m.err = nil
	m.entries = append(m.entries, chatEntry{role: "user", content: text})
	m.history = append(m.history, provider.Message{Role: provider.RoleUser, Content: text})

	messages := make([]provider.Message, 0, len(m.history)+1)
	messages = append(messages, provider.System(m.system))
	messages = append(messages, m.history...)

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.streaming = true

	return m, tea.Batch(m.spin.Tick, m.startStream(ctx, messages), textarea.Blink)
}

func (m Model) startStream(ctx context.Context, messages []provider.Message) tea.Cmd {
	prov := m.prov
	return func() tea.Msg {
		ch, err := prov.Stream(ctx, messages)
		if err != nil {
			return errMsg{err}
		}
		return streamStartedMsg{ch: ch}
	}
}

func (m Model) waitForChunk() tea.Cmd {
	return func() tea.Msg {
		return m.readChunk()
	}
}

func (m Model) readChunk() tea.Msg {
	chunk, ok := <-m.chunks
	if !ok || chunk.Done {
		return doneMsg{}
	}
	if chunk.Err != nil {
		return errMsg{chunk.Err}
	}
	return chunkMsg(chunk.Content)
}
