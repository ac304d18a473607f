package treesitter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrUnsupportedLanguage is returned when parsing is requested for a language
// without a registered grammar. Callers are expected to check Supported()
// during directory walks and treat this as a normal skip condition.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ErrParseFailed is returned when a grammar cannot produce a clean syntax
// tree for the input. Recoverable: callers skip the file and continue.
var ErrParseFailed = errors.New("parse failed")

// Parser holds one tree-sitter parser per supported language. Instances are
// reused across files but are not safe for concurrent use; give each worker
// its own Parser when parallelizing.
type Parser struct {
	parsers map[Language]*sitter.Parser
}

// NewParser constructs parsers for every supported grammar. A grammar that
// fails to load is a hard error: indexing cannot proceed at all.
func NewParser() (*Parser, error) {
	grammars := map[Language]*sitter.Language{
		LangRust:       rust.GetLanguage(),
		LangPython:     python.GetLanguage(),
		LangJavaScript: javascript.GetLanguage(),
		LangTypeScript: typescript.GetLanguage(),
	}

	parsers := make(map[Language]*sitter.Parser, len(grammars))
	for lang, grammar := range grammars {
		if grammar == nil {
			return nil, fmt.Errorf("grammar init failed for %s", lang)
		}
		p := sitter.NewParser()
		p.SetLanguage(grammar)
		parsers[lang] = p
	}

	return &Parser{parsers: parsers}, nil
}

// Close releases the underlying tree-sitter parsers.
func (p *Parser) Close() {
	for _, sp := range p.parsers {
		sp.Close()
	}
}

// Parse produces a syntax tree for content in the given language.
// The caller owns the returned tree and must Close it.
func (p *Parser) Parse(ctx context.Context, content []byte, lang Language) (*sitter.Tree, error) {
	sp, ok := p.parsers[lang]
	if !ok {
		return nil, ErrUnsupportedLanguage
	}
	tree, err := sp.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	if tree.RootNode().HasError() {
		tree.Close()
		return nil, fmt.Errorf("%w: syntax errors in input", ErrParseFailed)
	}
	return tree, nil
}

// ParseFile reads and parses a single file. IO errors and parse errors
// propagate to the caller; there is no batch to continue with here.
func (p *Parser) ParseFile(ctx context.Context, path string) (*ParsedFile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return p.ParseSource(ctx, path, src)
}

// ParseSource parses source bytes, classifying the language from path.
func (p *Parser) ParseSource(ctx context.Context, path string, src []byte) (*ParsedFile, error) {
	lang := LanguageFromPath(path)
	if lang == LangUnknown {
		return nil, ErrUnsupportedLanguage
	}

	tree, err := p.Parse(ctx, src, lang)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	content := string(src)
	return &ParsedFile{
		Path:      path,
		Language:  lang,
		Content:   content,
		Symbols:   Extract(tree.RootNode(), src, lang),
		LineCount: int(tree.RootNode().EndPoint().Row) + 1,
	}, nil
}

// Lines splits the file content into physical lines.
func (f *ParsedFile) Lines() []string {
	return strings.Split(f.Content, "\n")
}
