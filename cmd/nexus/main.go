// nexus is an AI-augmented developer tool: it parses your codebase with
// tree-sitter and answers questions, fixes bugs, and writes tests against it.
package main

import (
	"os"

	"github.com/msarac/nexus/cmd/nexus/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
