// Package ui renders terminal output: headers, status lines, and AI
// responses with highlighted code blocks.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Design system colors.
const (
	ColorPrimary = "#64B5F6"
	ColorSuccess = "#A5D6A7"
	ColorAccent  = "#FFCA28"
	ColorError   = "#EF9A9A"
	ColorMuted   = "#546E7A"
	ColorFg      = "#D4D4D7"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimary))
	accentStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	fgStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorFg))
)

const ruleWidth = 50

// Printer writes styled output to a single destination, usually stdout.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Header prints a command banner with an optional detail line.
func (p *Printer) Header(title, detail string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, headerStyle.Render("  "+title))
	if detail != "" {
		fmt.Fprintf(p.w, "%s %s\n", mutedStyle.Render("  │"), fgStyle.Render(detail))
	}
	fmt.Fprintln(p.w, mutedStyle.Render("  ╰"+strings.Repeat("─", ruleWidth)))
	fmt.Fprintln(p.w)
}

// Status prints a transient progress line.
func (p *Printer) Status(message string) {
	fmt.Fprintln(p.w, mutedStyle.Render("  ⠋ "+message))
}

// Success prints a completion line.
func (p *Printer) Success(message string) {
	fmt.Fprintln(p.w, successStyle.Render("  ✓ "+message))
}

// Warning prints a non-fatal notice.
func (p *Printer) Warning(message string) {
	fmt.Fprintln(p.w, accentStyle.Render("  ! "+message))
}

// Error prints an error line.
func (p *Printer) Error(message string) {
	fmt.Fprintln(p.w, errorStyle.Render("  ✗ Error: "+message))
}

// KeyValue prints an aligned "key: value" detail line.
func (p *Printer) KeyValue(key, value string) {
	fmt.Fprintf(p.w, "  %s %s\n", mutedStyle.Render(key+":"), fgStyle.Render(value))
}
