package llm

import (
	"fmt"
	"sort"
	"strings"
)

// ContextChunk is one candidate piece of context for a prompt.
type ContextChunk struct {
	Source     string
	Content    string
	Relevance  float64
	TokenCount int
}

// ContextBuilder accumulates chunks and renders the best ones into a prompt
// section without exceeding a token budget.
type ContextBuilder struct {
	maxTokens int
	chunks    []ContextChunk
}

// NewContextBuilder creates a builder with the given token budget.
func NewContextBuilder(maxTokens int) *ContextBuilder {
	return &ContextBuilder{maxTokens: maxTokens}
}

// Add inserts a chunk, keeping the list sorted by relevance descending.
// Equal relevance preserves insertion order.
func (b *ContextBuilder) Add(chunk ContextChunk) {
	b.chunks = append(b.chunks, chunk)
	sort.SliceStable(b.chunks, func(i, j int) bool {
		return b.chunks[i].Relevance > b.chunks[j].Relevance
	})
}

// Build renders chunks in relevance order until the next chunk would exceed
// the budget, then stops. Later smaller chunks are not pulled forward; the
// cutoff is a hard break, which keeps the output prefix-stable as the budget
// grows.
func (b *ContextBuilder) Build() string {
	var sb strings.Builder
	used := 0

	for _, chunk := range b.chunks {
		if used+chunk.TokenCount > b.maxTokens {
			break
		}
		fmt.Fprintf(&sb, "\n// Source: %s\n", chunk.Source)
		sb.WriteString(chunk.Content)
		sb.WriteByte('\n')
		used += chunk.TokenCount
	}

	return sb.String()
}

// Len reports the number of accumulated chunks.
func (b *ContextBuilder) Len() int {
	return len(b.chunks)
}

// EstimateTokens approximates the token count of text. Four bytes per token
// is a deliberate rough heuristic; budgets built on it should leave slack.
func EstimateTokens(text string) int {
	return len(text) / 4
}
