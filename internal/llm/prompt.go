// Package llm assembles prompts and context for provider calls. System
// prompts live in embedded markdown files so they can be edited without
// touching Go code.
package llm

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed prompts/ask.md
var askPrompt string

//go:embed prompts/chat.md
var chatPrompt string

//go:embed prompts/commit.md
var commitPrompt string

//go:embed prompts/fix.md
var fixPrompt string

//go:embed prompts/test.md
var testPrompt string

//go:embed prompts/doc.md
var docPrompt string

//go:embed prompts/refactor.md
var refactorPrompt string

//go:embed prompts/convert.md
var convertPrompt string

//go:embed prompts/optimize.md
var optimizePrompt string

//go:embed prompts/diff.md
var diffPrompt string

//go:embed prompts/explain_brief.md
var explainBriefPrompt string

//go:embed prompts/explain_detailed.md
var explainDetailedPrompt string

//go:embed prompts/explain_expert.md
var explainExpertPrompt string

//go:embed prompts/review_security.md
var reviewSecurityPrompt string

//go:embed prompts/review_performance.md
var reviewPerformancePrompt string

//go:embed prompts/review_practices.md
var reviewPracticesPrompt string

//go:embed prompts/review_all.md
var reviewAllPrompt string

// AskPrompt is the system prompt for codebase questions.
func AskPrompt() string { return askPrompt }

// ChatPrompt is the system prompt for interactive chat sessions.
func ChatPrompt() string { return chatPrompt }

// CommitPrompt is the system prompt for commit message generation.
func CommitPrompt() string { return commitPrompt }

// FixPrompt is the system prompt for bug fixing.
func FixPrompt() string { return fixPrompt }

// TestPrompt is the system prompt for test generation.
func TestPrompt() string { return testPrompt }

// DocPrompt is the system prompt for documentation generation.
func DocPrompt() string { return docPrompt }

// RefactorPrompt is the system prompt for refactoring.
func RefactorPrompt() string { return refactorPrompt }

// ConvertPrompt is the system prompt for language conversion.
func ConvertPrompt() string { return convertPrompt }

// OptimizePrompt is the system prompt for performance analysis.
func OptimizePrompt() string { return optimizePrompt }

// DiffPrompt is the system prompt for git diff analysis.
func DiffPrompt() string { return diffPrompt }

// ExplainPrompt selects the system prompt for the requested explanation
// depth. Unknown depths fall back to the detailed prompt.
func ExplainPrompt(depth string) string {
	switch strings.ToLower(depth) {
	case "brief":
		return explainBriefPrompt
	case "expert":
		return explainExpertPrompt
	default:
		return explainDetailedPrompt
	}
}

// ReviewPrompt selects the system prompt for the requested review focus.
// Unknown focuses fall back to the comprehensive prompt.
func ReviewPrompt(focus string) string {
	switch strings.ToLower(focus) {
	case "security", "sec":
		return reviewSecurityPrompt
	case "performance", "perf":
		return reviewPerformancePrompt
	case "best-practices", "bp", "practices":
		return reviewPracticesPrompt
	default:
		return reviewAllPrompt
	}
}

// GeneratePrompt builds the system prompt for code generation in the named
// language. The response is saved to a file verbatim, so the prompt forbids
// markdown fences and prose.
func GeneratePrompt(language string) string {
	return fmt.Sprintf(`You are NEXUS AI, an expert code generator.

Your task is to generate clean, idiomatic, production-ready %[1]s code based on the user's description.

Guidelines:
- Write complete, working code (not pseudocode)
- Follow %[1]s best practices and conventions
- Include necessary imports/dependencies
- Add brief, helpful comments where appropriate
- Handle errors appropriately
- Make the code modular and testable
- Use descriptive variable and function names

Output Format:
- Return ONLY the code, no explanations before or after
- Do not wrap the code in markdown code blocks
- Start directly with the code (imports, etc.)
- End with the last line of code

The user will save this directly to a file, so it must be valid, compilable/runnable code.`, language)
}
