// Package index walks a directory tree and parses every supported source
// file into an in-memory corpus. Nothing is persisted; each run re-parses.
package index

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/msarac/nexus/internal/treesitter"
)

// excludedDirs are never descended into, in addition to dot-directories.
var excludedDirs = map[string]bool{
	"node_modules": true,
	"target":       true,
	"build":        true,
	"dist":         true,
	"__pycache__":  true,
	"vendor":       true,
	".git":         true,
}

// DefaultMaxFileSize caps the size of files considered for parsing.
const DefaultMaxFileSize = 10 << 20 // 10 MB

// FileError records a file that was skipped and why.
type FileError struct {
	Path    string
	Message string
}

// Result aggregates one indexing run.
type Result struct {
	Files        []*treesitter.ParsedFile
	FilesIndexed int
	FilesSkipped int
	TotalLines   int
	Symbols      treesitter.SymbolCounts
	TimeTaken    time.Duration
	Errors       []FileError
}

// Indexer drives the parser over a directory tree. It owns the parser for
// the duration of a run; create one Indexer per goroutine if parallelizing.
type Indexer struct {
	parser      *treesitter.Parser
	maxFileSize int64
	excludes    []string
}

// New creates an indexer around an initialized parser.
func New(parser *treesitter.Parser) *Indexer {
	return &Indexer{parser: parser, maxFileSize: DefaultMaxFileSize}
}

// SetMaxFileSize overrides the per-file size cap in bytes. Zero or negative
// restores the default.
func (ix *Indexer) SetMaxFileSize(n int64) {
	if n <= 0 {
		n = DefaultMaxFileSize
	}
	ix.maxFileSize = n
}

// SetExcludePatterns adds user-configured glob patterns matched against entry
// base names during the walk, on top of the fixed denylist.
func (ix *Indexer) SetExcludePatterns(patterns []string) {
	ix.excludes = patterns
}

// excluded reports whether a base name matches any configured pattern.
// Malformed patterns never match.
func (ix *Indexer) excluded(name string) bool {
	for _, pat := range ix.excludes {
		if ok, err := filepath.Match(pat, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Index walks root and parses every supported file. Per-file parse and read
// errors are recorded and skipped; the walk never aborts because of one bad
// file. Only a root that cannot be walked at all is a hard error.
func (ix *Indexer) Index(ctx context.Context, root string) (*Result, error) {
	start := time.Now()

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	matcher := loadGitignore(abs)

	res := &Result{}
	walkErr := filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == abs {
				return walkErr
			}
			// Unreadable subtree: skip and continue.
			log.Debug().Err(walkErr).Str("path", path).Msg("walk error, skipping")
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		name := d.Name()
		rel, relErr := filepath.Rel(abs, path)
		if relErr != nil || rel == "." {
			return nil
		}

		if d.IsDir() {
			if strings.HasPrefix(name, ".") || excludedDirs[name] || ix.excluded(name) {
				return filepath.SkipDir
			}
			if matcher != nil && matcher.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || strings.HasPrefix(name, ".") || ix.excluded(name) {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		if !treesitter.Supported(path) {
			return nil
		}
		if info, err := d.Info(); err != nil || info.Size() > ix.maxFileSize {
			return nil
		}

		parsed, err := ix.parser.ParseFile(ctx, path)
		if err != nil {
			res.FilesSkipped++
			res.Errors = append(res.Errors, FileError{Path: rel, Message: err.Error()})
			log.Debug().Err(err).Str("path", rel).Msg("skipping file")
			return nil
		}

		parsed.Path = rel
		res.Files = append(res.Files, parsed)
		res.FilesIndexed++
		res.TotalLines += parsed.LineCount
		res.Symbols.Add(parsed.Counts())
		return nil
	})
	if walkErr != nil && !errors.Is(walkErr, context.Canceled) {
		return nil, walkErr
	}

	res.TimeTaken = time.Since(start)
	return res, nil
}

// loadGitignore reads the single top-level .gitignore if present. Nested
// .gitignore files in subdirectories are intentionally not consulted.
func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	matcher, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("ignoring unreadable .gitignore")
		return nil
	}
	return matcher
}
