package ui

import (
	"fmt"
	"strings"

	"github.com/msarac/nexus/internal/highlight"
)

// Response prints an AI response inside a framed block, routing fenced code
// through the syntax highlighter.
func (p *Printer) Response(title, response, theme string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, accentStyle.Render("  "+title))
	fmt.Fprintln(p.w, mutedStyle.Render("  ╭"+strings.Repeat("─", ruleWidth)))

	for _, line := range strings.Split(RenderMarkdown(response, theme), "\n") {
		fmt.Fprintf(p.w, "%s %s\n", mutedStyle.Render("  │"), line)
	}

	fmt.Fprintln(p.w, mutedStyle.Render("  ╰"+strings.Repeat("─", ruleWidth)))
	fmt.Fprintln(p.w)
}

// RenderMarkdown highlights fenced code blocks and styles the prose around
// them. Everything outside fences passes through with foreground styling
// only; markdown structure is left to the model.
func RenderMarkdown(text, theme string) string {
	var out []string
	var code []string
	inFence := false
	lang := ""

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inFence {
				block := strings.Join(code, "\n")
				out = append(out, highlight.Highlight(block, lang, theme))
				code = code[:0]
				inFence = false
				continue
			}
			inFence = true
			lang = strings.TrimPrefix(trimmed, "```")
			continue
		}
		if inFence {
			code = append(code, line)
			continue
		}
		out = append(out, fgStyle.Render(line))
	}

	// Unterminated fence: flush what we have, unhighlighted.
	if inFence && len(code) > 0 {
		out = append(out, strings.Join(code, "\n"))
	}

	return strings.Join(out, "\n")
}
