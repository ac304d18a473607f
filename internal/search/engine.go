// Package search ranks indexed symbols against a free-text query. Scoring is
// heuristic and lexical; there is no embedding model behind it.
package search

import (
	"sort"
	"strings"

	"github.com/msarac/nexus/internal/treesitter"
)

// MatchType classifies how a result matched the query, strongest first.
type MatchType int

const (
	ExactName MatchType = iota
	PartialName
	ContentMatch
	ContextMatch
)

func (m MatchType) String() string {
	switch m {
	case ExactName:
		return "exact"
	case PartialName:
		return "partial"
	case ContentMatch:
		return "content"
	case ContextMatch:
		return "context"
	default:
		return "unknown"
	}
}

// Result is one ranked hit.
type Result struct {
	File      *treesitter.ParsedFile
	Symbol    treesitter.Symbol
	Score     float64
	MatchType MatchType
}

// Engine searches an indexed corpus. It holds no state beyond the files,
// so one engine can serve many queries.
type Engine struct {
	files []*treesitter.ParsedFile
}

// NewEngine wraps an indexed corpus for querying.
func NewEngine(files []*treesitter.ParsedFile) *Engine {
	return &Engine{files: files}
}

// Search scores every symbol in the corpus against the query and returns the
// top maxResults hits, best first. Ties are broken by file path, then by
// start line, so repeated queries return identical orderings.
func (e *Engine) Search(query string, maxResults int) []Result {
	query = strings.TrimSpace(query)
	if query == "" || maxResults <= 0 {
		return nil
	}

	queryLower := strings.ToLower(query)
	keywords := extractKeywords(queryLower)

	var results []Result
	for _, f := range e.files {
		contentLower := strings.ToLower(f.Content)
		for _, sym := range f.Symbols {
			score, match := scoreSymbol(sym, f, contentLower, queryLower, keywords)
			if score <= 0 {
				continue
			}
			results = append(results, Result{
				File:      f,
				Symbol:    sym,
				Score:     score,
				MatchType: match,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].File.Path != results[j].File.Path {
			return results[i].File.Path < results[j].File.Path
		}
		return results[i].Symbol.StartLine < results[j].Symbol.StartLine
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// scoreSymbol applies the match tiers in order and stops at the first hit:
// exact name, partial name, whole-query content match, then keyword context.
func scoreSymbol(sym treesitter.Symbol, f *treesitter.ParsedFile, contentLower, queryLower string, keywords []string) (float64, MatchType) {
	nameLower := strings.ToLower(sym.Name)

	var base float64
	var match MatchType

	switch {
	case nameLower == queryLower:
		base, match = 100, ExactName
	case strings.Contains(nameLower, queryLower) || strings.Contains(queryLower, nameLower):
		base, match = 80, PartialName
	default:
		if n := countKeywordHits(nameLower, keywords); n > 0 {
			base, match = 50+float64(n)*10, PartialName
			break
		}
		span := symbolSpan(f, sym, contentLower)
		if strings.Contains(span, queryLower) {
			base, match = 30, ContentMatch
			break
		}
		if n := countKeywordHits(span, keywords); n > 0 {
			base, match = 20+float64(n)*5, ContextMatch
		}
	}

	if base == 0 {
		return 0, 0
	}
	return base * kindMultiplier(sym.Kind), match
}

func kindMultiplier(kind treesitter.SymbolKind) float64 {
	switch kind {
	case treesitter.KindFunction:
		return 1.2
	case treesitter.KindStruct, treesitter.KindClass:
		return 1.15
	case treesitter.KindTrait, treesitter.KindInterface:
		return 1.1
	default:
		return 1.0
	}
}

// symbolSpan returns the lowercased source lines of the symbol's body.
func symbolSpan(f *treesitter.ParsedFile, sym treesitter.Symbol, contentLower string) string {
	lines := strings.Split(contentLower, "\n")
	start := sym.StartLine - 1
	end := sym.EndLine
	if start < 0 {
		start = 0
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start >= end {
		return ""
	}
	return strings.Join(lines[start:end], "\n")
}

// extractKeywords splits a lowercased query on whitespace into words longer
// than two characters. Short tokens like "to" and "fn" add noise, not signal.
// Punctuation stays inside its word, so "parse-core" is one keyword.
func extractKeywords(queryLower string) []string {
	var kws []string
	for _, w := range strings.Fields(queryLower) {
		if len(w) > 2 {
			kws = append(kws, w)
		}
	}
	return kws
}

func countKeywordHits(haystack string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			n++
		}
	}
	return n
}
