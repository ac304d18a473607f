package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/llm"
)

var flagRefactorWrite bool

var refactorCmd = &cobra.Command{
	Use:   "refactor <file> <description>",
	Short: "Refactor a file per your instructions",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runRefactor,
}

func runRefactor(cmd *cobra.Command, args []string) error {
	path := args[0]
	description := strings.Join(args[1:], " ")
	out.Header("NEXUS Refactor", description)

	source, lang, err := readSourceFile(path)
	if err != nil {
		return err
	}

	prov, err := newProvider()
	if err != nil {
		return err
	}
	defer prov.Close()
	if err := requireCodeConsent(prov); err != nil {
		return err
	}

	prompt := fmt.Sprintf("Refactor the following %s code. Goal: %s\n\n%s",
		lang, description, codeBlock(lang, source))

	out.Status("Refactoring...")
	resp, err := cachedChat(cmd.Context(), prov, modelFor(prov), llm.RefactorPrompt(), prompt)
	if err != nil {
		return err
	}

	if flagRefactorWrite {
		code := extractCode(resp)
		if code == "" {
			out.Warning("Model returned no code; nothing written")
			out.Response("Refactoring", resp, theme())
			return nil
		}
		if err := os.WriteFile(path, []byte(code+"\n"), 0644); err != nil {
			return err
		}
		out.Success("Wrote refactored code to " + path)
		return nil
	}

	out.Response("Refactoring", resp, theme())
	out.KeyValue("Hint", "re-run with --write to apply")
	return nil
}

func init() {
	refactorCmd.Flags().BoolVar(&flagRefactorWrite, "write", false, "write the refactored code back to the file")
}
