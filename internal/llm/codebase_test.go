package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/msarac/nexus/internal/treesitter"
)

func parseFixture(t *testing.T, path, src string) *treesitter.ParsedFile {
	t.Helper()
	p, err := treesitter.NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	t.Cleanup(p.Close)

	f, err := p.ParseSource(context.Background(), path, []byte(src))
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return f
}

func TestBuildCodebaseContext(t *testing.T) {
	files := []*treesitter.ParsedFile{
		parseFixture(t, "src/auth.rs", `fn login(user: &str) -> bool {
    true
}

struct Session {
    token: String,
}
`),
		parseFixture(t, "src/util.py", "def helper():\n    pass\n"),
	}

	out := BuildCodebaseContext(files, "how does login work")

	if !strings.Contains(out, "### Codebase Overview") {
		t.Error("missing overview section")
	}
	if !strings.Contains(out, "- 2 files indexed") {
		t.Errorf("wrong file count:\n%s", out)
	}
	if !strings.Contains(out, "### Relevant Symbols") {
		t.Error("missing relevant symbols section")
	}
	if !strings.Contains(out, "- `login` (fn) in `src/auth.rs` (lines 1-3)") {
		t.Errorf("missing login symbol line:\n%s", out)
	}
	if !strings.Contains(out, "fn login(user: &str) -> bool {") {
		t.Error("missing login signature block")
	}
	if strings.Contains(out, "`Session`") {
		t.Error("Session does not match the question and should not be listed")
	}
	if !strings.Contains(out, "### File Structure") {
		t.Error("missing file structure section")
	}
	if !strings.Contains(out, "- `src/`") {
		t.Errorf("missing directory entry:\n%s", out)
	}
	if !strings.Contains(out, "`auth.rs` (1 functions, 1 types)") {
		t.Errorf("missing auth.rs summary:\n%s", out)
	}
}

func TestBuildCodebaseContextDeterministic(t *testing.T) {
	files := []*treesitter.ParsedFile{
		parseFixture(t, "b/one.rs", "fn one() {}\n"),
		parseFixture(t, "a/two.rs", "fn two() {}\n"),
	}

	first := BuildCodebaseContext(files, "anything")
	for i := 0; i < 5; i++ {
		if got := BuildCodebaseContext(files, "anything"); got != first {
			t.Fatal("context output varies between calls")
		}
	}

	// Directories render in sorted order regardless of input order.
	if strings.Index(first, "- `a/`") > strings.Index(first, "- `b/`") {
		t.Errorf("directories not sorted:\n%s", first)
	}
}

func TestBuildCodebaseContextNoMatches(t *testing.T) {
	files := []*treesitter.ParsedFile{
		parseFixture(t, "m.rs", "fn main() {}\n"),
	}

	out := BuildCodebaseContext(files, "zzz qqq")
	if strings.Contains(out, "### Relevant Symbols") {
		t.Error("relevant symbols section should be omitted when nothing matches")
	}
	if !strings.Contains(out, "- 1 files indexed") {
		t.Errorf("missing overview:\n%s", out)
	}
}
