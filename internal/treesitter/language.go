package treesitter

import (
	"path/filepath"
	"strings"
)

// Language identifies a supported tree-sitter grammar.
type Language int

const (
	LangUnknown Language = iota
	LangRust
	LangPython
	LangJavaScript
	LangTypeScript
)

// extToLang maps lowercase file extensions (without the dot) to languages.
var extToLang = map[string]Language{
	"rs":  LangRust,
	"py":  LangPython,
	"pyw": LangPython,
	"js":  LangJavaScript,
	"jsx": LangJavaScript,
	"mjs": LangJavaScript,
	"cjs": LangJavaScript,
	"ts":  LangTypeScript,
	"tsx": LangTypeScript,
	"mts": LangTypeScript,
	"cts": LangTypeScript,
}

// LanguageFromExtension returns the language for a file extension
// (with or without a leading dot, case-insensitive).
func LanguageFromExtension(ext string) Language {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if lang, ok := extToLang[ext]; ok {
		return lang
	}
	return LangUnknown
}

// LanguageFromPath classifies a file path by its extension.
func LanguageFromPath(path string) Language {
	return LanguageFromExtension(filepath.Ext(path))
}

// Supported returns true if the file extension has a tree-sitter grammar.
func Supported(path string) bool {
	return LanguageFromPath(path) != LangUnknown
}

// String returns the human-readable language name.
func (l Language) String() string {
	switch l {
	case LangRust:
		return "Rust"
	case LangPython:
		return "Python"
	case LangJavaScript:
		return "JavaScript"
	case LangTypeScript:
		return "TypeScript"
	default:
		return "Unknown"
	}
}

// Chroma returns the Chroma lexer name for syntax highlighting.
func (l Language) Chroma() string {
	switch l {
	case LangRust:
		return "rust"
	case LangPython:
		return "python"
	case LangJavaScript:
		return "javascript"
	case LangTypeScript:
		return "typescript"
	default:
		return ""
	}
}
