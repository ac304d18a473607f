package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/msarac/nexus/internal/ui"
)

var (
	userLabel      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ui.ColorPrimary)).Render("you")
	assistantLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ui.ColorAccent)).Render("nexus")
	systemLabel    = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorMuted)).Render("·")
	errLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorError))
	thinkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorMuted))
)

func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	var sb strings.Builder

	for _, e := range m.entries {
		sb.WriteString(m.renderEntry(e, width))
		sb.WriteString("\n\n")
	}

	if m.streaming {
		if m.pending != "" {
			sb.WriteString(m.renderEntry(chatEntry{role: "assistant", content: m.pending}, width))
			sb.WriteString("\n")
		}
		sb.WriteString(m.spin.View())
		sb.WriteString(thinkStyle.Render(" thinking..."))
		sb.WriteString("\n\n")
	}

	if m.err != nil {
		sb.WriteString(errLineStyle.Render("error: " + m.err.Error()))
		sb.WriteString("\n\n")
	}

	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(thinkStyle.Render("enter to send · esc to quit"))

	return sb.String()
}

func (m Model) renderEntry(e chatEntry, width int) string {
	label := systemLabel
	body := e.content
	switch e.role {
	case "user":
		label = userLabel
	case "assistant":
		label = assistantLabel
		body = ui.RenderMarkdown(e.content, m.theme)
	}
	return label + "\n" + ansi.Wrap(body, width-2, "")
}
