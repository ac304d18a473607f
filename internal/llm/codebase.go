package llm

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/msarac/nexus/internal/treesitter"
)

const (
	maxRelevantSymbols = 10
	maxDirsShown       = 5
	maxFilesPerDir     = 3
)

// BuildCodebaseContext renders an indexed corpus into a markdown context
// block for codebase questions: an overview, symbols relevant to the
// question, and a directory-grouped file summary. Output is deterministic
// for a given corpus and question.
func BuildCodebaseContext(files []*treesitter.ParsedFile, question string) string {
	var parts []string

	questionLower := strings.ToLower(question)
	keywords := make([]string, 0)
	for _, w := range strings.Fields(questionLower) {
		if len(w) > 2 {
			keywords = append(keywords, w)
		}
	}

	parts = append(parts, fmt.Sprintf(
		"### Codebase Overview\n- %d files indexed\n- Languages: Rust, Python, JavaScript, TypeScript\n",
		len(files)))

	type hit struct {
		file *treesitter.ParsedFile
		sym  treesitter.Symbol
	}
	var relevant []hit
	for _, f := range files {
		for _, sym := range f.Symbols {
			symLower := strings.ToLower(sym.Name)
			for _, kw := range keywords {
				if strings.Contains(symLower, kw) || strings.Contains(kw, symLower) {
					relevant = append(relevant, hit{f, sym})
					break
				}
			}
		}
	}

	if len(relevant) > 0 {
		parts = append(parts, "### Relevant Symbols\n")
		for i, h := range relevant {
			if i >= maxRelevantSymbols {
				break
			}
			parts = append(parts, fmt.Sprintf("- `%s` (%s) in `%s` (lines %d-%d)",
				h.sym.Name, h.sym.Kind, h.file.Path, h.sym.StartLine, h.sym.EndLine))
			if h.sym.Signature != "" {
				parts = append(parts, fmt.Sprintf("  ```\n  %s\n  ```", h.sym.Signature))
			}
		}
	}

	parts = append(parts, "\n### File Structure\n")

	byDir := make(map[string][]*treesitter.ParsedFile)
	for _, f := range files {
		dir := filepath.Dir(f.Path)
		byDir[dir] = append(byDir[dir], f)
	}
	dirs := make([]string, 0, len(byDir))
	for d := range byDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	for i, dir := range dirs {
		if i >= maxDirsShown {
			break
		}
		parts = append(parts, fmt.Sprintf("- `%s/`", dir))
		dirFiles := byDir[dir]
		for j, f := range dirFiles {
			if j >= maxFilesPerDir {
				break
			}
			counts := f.Counts()
			parts = append(parts, fmt.Sprintf("  - `%s` (%d functions, %d types)",
				filepath.Base(f.Path), counts.Functions, counts.Types))
		}
		if len(dirFiles) > maxFilesPerDir {
			parts = append(parts, fmt.Sprintf("  - ... and %d more", len(dirFiles)-maxFilesPerDir))
		}
	}

	return strings.Join(parts, "\n")
}
