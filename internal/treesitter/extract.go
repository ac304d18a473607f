package treesitter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Extract walks a syntax tree in pre-order and returns every symbol the
// language's node table recognizes. Nodes without a discoverable name are
// skipped silently; traversal always continues into children, so nested
// functions, inner classes, and impls inside modules are all found.
func Extract(root *sitter.Node, src []byte, lang Language) []Symbol {
	var syms []Symbol
	walk(root, src, lang, &syms)
	return syms
}

func walk(node *sitter.Node, src []byte, lang Language, syms *[]Symbol) {
	switch lang {
	case LangRust:
		extractRust(node, src, syms)
	case LangPython:
		extractPython(node, src, syms)
	case LangJavaScript, LangTypeScript:
		extractJS(node, src, syms)
	}

	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		walk(node.Child(i), src, lang, syms)
	}
}

func extractRust(node *sitter.Node, src []byte, syms *[]Symbol) {
	switch node.Type() {
	case "function_item", "function_signature_item":
		appendNamed(node, src, KindFunction, true, syms)
	case "struct_item":
		appendNamed(node, src, KindStruct, false, syms)
	case "enum_item":
		appendNamed(node, src, KindEnum, false, syms)
	case "impl_item":
		// Impl blocks have no name field; synthesize one from the type.
		if typeNode := node.ChildByFieldName("type"); typeNode != nil {
			*syms = append(*syms, Symbol{
				Name:      "impl " + typeNode.Content(src),
				Kind:      KindImpl,
				StartLine: startLine(node),
				EndLine:   endLine(node),
			})
		}
	case "trait_item":
		appendNamed(node, src, KindTrait, false, syms)
	case "mod_item":
		appendNamed(node, src, KindModule, false, syms)
	case "const_item", "static_item":
		appendNamed(node, src, KindConstant, false, syms)
	}
}

func extractPython(node *sitter.Node, src []byte, syms *[]Symbol) {
	switch node.Type() {
	case "function_definition":
		appendNamed(node, src, KindFunction, true, syms)
	case "class_definition":
		appendNamed(node, src, KindClass, false, syms)
	}
}

func extractJS(node *sitter.Node, src []byte, syms *[]Symbol) {
	switch node.Type() {
	case "function_declaration", "method_definition", "arrow_function":
		// Anonymous arrow functions have no name field and are skipped.
		appendNamed(node, src, KindFunction, true, syms)
	case "class_declaration":
		appendNamed(node, src, KindClass, false, syms)
	case "interface_declaration":
		appendNamed(node, src, KindInterface, false, syms)
	case "type_alias_declaration":
		appendNamed(node, src, KindTypeAlias, false, syms)
	}
}

// appendNamed records a symbol for node if it exposes a "name" field child.
func appendNamed(node *sitter.Node, src []byte, kind SymbolKind, withSig bool, syms *[]Symbol) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	sym := Symbol{
		Name:      nameNode.Content(src),
		Kind:      kind,
		StartLine: startLine(node),
		EndLine:   endLine(node),
	}
	if withSig {
		sym.Signature = firstLine(node.Content(src))
	}
	*syms = append(*syms, sym)
}

// firstLine returns the first physical line of text. This is a best-effort
// one-line preview, not a parsed signature; multi-line declarations truncate.
func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

func startLine(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1 // 1-indexed
}

func endLine(node *sitter.Node) int {
	return int(node.EndPoint().Row) + 1
}
