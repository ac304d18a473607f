package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/llm"
)

var (
	flagDocOutput string
	flagDocInline bool
)

var docCmd = &cobra.Command{
	Use:   "doc <file>",
	Short: "Generate documentation for a file",
	Long: `Generates documentation for the file. By default the result prints to the
terminal; --output saves it to a markdown file, --inline asks the model to
return the source with doc comments added and writes it back.`,
	Args: cobra.ExactArgs(1),
	RunE: runDoc,
}

func runDoc(cmd *cobra.Command, args []string) error {
	path := args[0]
	out.Header("NEXUS Doc", path)

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

	var prompt string
	if flagDocInline {
		prompt = fmt.Sprintf("Add documentation comments to the following %s code and return the complete annotated source:\n\n%s",
			lang, codeBlock(lang, source))
	} else {
		prompt = fmt.Sprintf("Write documentation for the following %s code from %s:\n\n%s",
			lang, path, codeBlock(lang, source))
	}

	out.Status("Documenting...")
	resp, err := cachedChat(cmd.Context(), prov, modelFor(prov), llm.DocPrompt(), prompt)
	if err != nil {
		return err
	}

	switch {
	case flagDocInline:
		code := extractCode(resp)
		if err := os.WriteFile(path, []byte(code+"\n"), 0644); err != nil {
			return err
		}
		out.Success("Updated " + path + " with doc comments")
	case flagDocOutput != "":
		if err := os.WriteFile(flagDocOutput, []byte(resp+"\n"), 0644); err != nil {
			return err
		}
		out.Success("Wrote documentation to " + flagDocOutput)
	default:
		out.Response("Documentation", resp, theme())
	}
	return nil
}

func init() {
	docCmd.Flags().StringVarP(&flagDocOutput, "output", "o", "", "write documentation to this file")
	docCmd.Flags().BoolVar(&flagDocInline, "inline", false, "add doc comments directly to the source file")
}
