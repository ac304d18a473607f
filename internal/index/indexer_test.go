package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/msarac/nexus/internal/treesitter"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newIndexer(t *testing.T) *Indexer {
	t.Helper()
	parser, err := treesitter.NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	t.Cleanup(parser.Close)
	return New(parser)
}

func TestIndexCountsAndSymbols(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.rs", "fn main() {}\n")
	writeFile(t, root, "lib/util.py", "def helper():\n    pass\n")
	writeFile(t, root, "web/app.ts", "function render(): void {}\n")

	res, err := newIndexer(t).Index(context.Background(), root)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	if res.FilesIndexed != 3 {
		t.Errorf("FilesIndexed = %d, want 3", res.FilesIndexed)
	}
	if res.FilesSkipped != 0 || len(res.Errors) != 0 {
		t.Errorf("unexpected skips: skipped=%d errors=%v", res.FilesSkipped, res.Errors)
	}
	if res.Symbols.Functions != 3 {
		t.Errorf("Functions = %d, want 3", res.Symbols.Functions)
	}
	if res.TotalLines == 0 {
		t.Error("TotalLines should be nonzero")
	}

	for _, f := range res.Files {
		if filepath.IsAbs(f.Path) {
			t.Errorf("file path %q should be relative to the root", f.Path)
		}
	}
}

func TestIndexConfiguredExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.rs", "fn main() {}\n")
	writeFile(t, root, "schema.gen.rs", "fn generated() {}\n")
	writeFile(t, root, "sandbox/scratch.py", "def scratch():\n    pass\n")

	ix := newIndexer(t)
	ix.SetExcludePatterns([]string{"*.gen.rs", "sandbox", "[bad-pattern"})

	res, err := ix.Index(context.Background(), root)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	if res.FilesIndexed != 1 {
		t.Errorf("FilesIndexed = %d, want 1", res.FilesIndexed)
	}
	for _, f := range res.Files {
		if f.Path != "main.rs" {
			t.Errorf("excluded file was indexed: %q", f.Path)
		}
	}
	// Configured excludes are filters, not errors.
	if res.FilesSkipped != 0 || len(res.Errors) != 0 {
		t.Errorf("unexpected skips: skipped=%d errors=%v", res.FilesSkipped, res.Errors)
	}
}

func TestIndexMalformedFilesAreSkipped(t *testing.T) {
	// Malformed files must be counted and recorded without aborting the run,
	// wherever they fall in the walk order.
	root := t.TempDir()
	writeFile(t, root, "aaa_broken.rs", "fn fn fn {{{")
	writeFile(t, root, "mmm_good.rs", "fn ok() {}\n")
	writeFile(t, root, "nnn_good.py", "def ok():\n    pass\n")
	writeFile(t, root, "zzz_broken.py", "def def def (((")

	res, err := newIndexer(t).Index(context.Background(), root)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	if res.FilesIndexed != 2 {
		t.Errorf("FilesIndexed = %d, want 2", res.FilesIndexed)
	}
	if res.FilesSkipped != 2 {
		t.Errorf("FilesSkipped = %d, want 2", res.FilesSkipped)
	}
	if len(res.Errors) != 2 {
		t.Fatalf("len(Errors) = %d, want 2", len(res.Errors))
	}
	for _, fe := range res.Errors {
		if fe.Path == "" || fe.Message == "" {
			t.Errorf("error entry missing detail: %+v", fe)
		}
	}
}

func TestIndexExcludedDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.rs", "fn main() {}\n")
	writeFile(t, root, "node_modules/pkg/index.js", "function hidden() {}\n")
	writeFile(t, root, "target/debug/gen.rs", "fn hidden() {}\n")
	writeFile(t, root, "__pycache__/mod.py", "def hidden():\n    pass\n")
	writeFile(t, root, ".cache/tool.py", "def hidden():\n    pass\n")
	writeFile(t, root, ".hidden.rs", "fn hidden() {}\n")

	res, err := newIndexer(t).Index(context.Background(), root)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	if res.FilesIndexed != 1 {
		t.Errorf("FilesIndexed = %d, want 1 (only src/main.rs)", res.FilesIndexed)
	}
}

func TestIndexGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "generated/\n*.gen.ts\n")
	writeFile(t, root, "src/app.ts", "function run(): void {}\n")
	writeFile(t, root, "src/api.gen.ts", "function ignored(): void {}\n")
	writeFile(t, root, "generated/out.rs", "fn ignored() {}\n")

	res, err := newIndexer(t).Index(context.Background(), root)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	if res.FilesIndexed != 1 {
		t.Errorf("FilesIndexed = %d, want 1", res.FilesIndexed)
	}
	if len(res.Files) == 1 && res.Files[0].Path != filepath.Join("src", "app.ts") {
		t.Errorf("indexed %q, want src/app.ts", res.Files[0].Path)
	}
}

func TestIndexUnsupportedExtensionsIgnored(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# docs\n")
	writeFile(t, root, "Cargo.toml", "[package]\n")
	writeFile(t, root, "main.rs", "fn main() {}\n")

	res, err := newIndexer(t).Index(context.Background(), root)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	if res.FilesIndexed != 1 {
		t.Errorf("FilesIndexed = %d, want 1", res.FilesIndexed)
	}
	if res.FilesSkipped != 0 {
		t.Errorf("unsupported extensions should not count as skipped, got %d", res.FilesSkipped)
	}
}

func TestIndexOversizedFileIgnored(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "big.rs", "fn big() {}\n")
	writeFile(t, root, "small.rs", "fn small() {}\n")

	ix := newIndexer(t)
	ix.SetMaxFileSize(5)

	res, err := ix.Index(context.Background(), root)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if res.FilesIndexed != 0 {
		t.Errorf("FilesIndexed = %d, want 0 with a 5-byte cap", res.FilesIndexed)
	}
	if res.FilesSkipped != 0 {
		t.Errorf("oversized files should be ignored silently, got skipped=%d", res.FilesSkipped)
	}
}

func TestIndexMissingRoot(t *testing.T) {
	_, err := newIndexer(t).Index(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for nonexistent root")
	}
}
