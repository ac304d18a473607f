package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderMarkdownHighlightsFences(t *testing.T) {
	text := "Here is the fix:\n```rust\nfn main() {}\n```\nDone."

	out := RenderMarkdown(text, "monokai")
	if strings.Contains(out, "```") {
		t.Error("fence markers should be stripped")
	}
	if !strings.Contains(out, "fn main() {}") && !strings.Contains(out, "fn") {
		t.Errorf("code block content missing:\n%q", out)
	}
}

func TestRenderMarkdownUnterminatedFence(t *testing.T) {
	text := "```python\nprint('hi')"

	out := RenderMarkdown(text, "monokai")
	if !strings.Contains(out, "print('hi')") {
		t.Errorf("unterminated fence content lost:\n%q", out)
	}
}

func TestResponseFrame(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Response("Nexus AI", "hello", "monokai")

	out := buf.String()
	if !strings.Contains(out, "Nexus AI") {
		t.Error("missing title")
	}
	if !strings.Contains(out, "╭") || !strings.Contains(out, "╰") {
		t.Error("missing frame")
	}
	if !strings.Contains(out, "hello") {
		t.Error("missing body")
	}
}

func TestPrinterLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Header("Indexing", "current directory")
	p.Status("scanning")
	p.Success("done")
	p.Warning("no files")
	p.Error("boom")
	p.KeyValue("Files", "12")

	out := buf.String()
	for _, want := range []string{"Indexing", "current directory", "scanning", "done", "no files", "Error: boom", "Files", "12"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
