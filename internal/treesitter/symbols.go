// Package treesitter provides tree-sitter based code parsing for structural
// symbol extraction. Parsed files feed the indexer, the relevance search
// engine, and LLM context assembly.
package treesitter

// SymbolKind classifies extracted symbols.
type SymbolKind int

const (
	KindFunction SymbolKind = iota
	KindStruct
	KindClass
	KindEnum
	KindTrait
	KindInterface
	KindModule
	KindConstant
	KindImpl
	KindTypeAlias
)

// String returns a short label for the symbol kind.
func (k SymbolKind) String() string {
	switch k {
	case KindFunction:
		return "fn"
	case KindStruct:
		return "struct"
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	case KindTrait:
		return "trait"
	case KindInterface:
		return "interface"
	case KindModule:
		return "mod"
	case KindConstant:
		return "const"
	case KindImpl:
		return "impl"
	case KindTypeAlias:
		return "type"
	default:
		return "unknown"
	}
}

// Symbol is a single named entity discovered in a parsed file.
// StartLine and EndLine are 1-indexed and inclusive.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	StartLine int
	EndLine   int
	Signature string // first physical line of the node's source, best-effort
}

// ParsedFile is the unit of indexing output for one file. Symbols are in
// pre-order AST traversal order.
type ParsedFile struct {
	Path      string
	Language  Language
	Content   string
	Symbols   []Symbol
	LineCount int
}

// SymbolCounts aggregates symbols per coarse category.
type SymbolCounts struct {
	Functions   int
	Types       int // structs + classes
	Enums       int
	Traits      int // traits + interfaces
	Modules     int
	Constants   int
	Impls       int
	TypeAliases int
}

// Counts tallies the file's symbols per category.
func (f *ParsedFile) Counts() SymbolCounts {
	var c SymbolCounts
	for _, s := range f.Symbols {
		switch s.Kind {
		case KindFunction:
			c.Functions++
		case KindStruct, KindClass:
			c.Types++
		case KindEnum:
			c.Enums++
		case KindTrait, KindInterface:
			c.Traits++
		case KindModule:
			c.Modules++
		case KindConstant:
			c.Constants++
		case KindImpl:
			c.Impls++
		case KindTypeAlias:
			c.TypeAliases++
		}
	}
	return c
}

// Add accumulates other into c.
func (c *SymbolCounts) Add(other SymbolCounts) {
	c.Functions += other.Functions
	c.Types += other.Types
	c.Enums += other.Enums
	c.Traits += other.Traits
	c.Modules += other.Modules
	c.Constants += other.Constants
	c.Impls += other.Impls
	c.TypeAliases += other.TypeAliases
}

// Total returns the sum over all categories.
func (c SymbolCounts) Total() int {
	return c.Functions + c.Types + c.Enums + c.Traits +
		c.Modules + c.Constants + c.Impls + c.TypeAliases
}
