package cmd

import (
	"fmt"
	"os"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/highlight"
	"github.com/msarac/nexus/internal/llm"
)

var (
	flagFixError string
	flagFixWrite bool
)

var fixCmd = &cobra.Command{
	Use:   "fix <file>",
	Short: "Generate a fix for a broken file",
	Long: `Sends the file (and an optional error message) to the AI and shows the
proposed fix as a unified diff. With --write the fixed version replaces the
file on disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func runFix(cmd *cobra.Command, args []string) error {
	path := args[0]
	out.Header("NEXUS Fix", path)

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

	prompt := fmt.Sprintf("Fix the following %s code:\n\n%s", lang, codeBlock(lang, source))
	if flagFixError != "" {
		prompt += "\n\nThe code produces this error:\n" + flagFixError
	}

	out.Status("Analyzing...")
	resp, err := cachedChat(cmd.Context(), prov, modelFor(prov), llm.FixPrompt(), prompt)
	if err != nil {
		return err
	}

	fixed := extractCode(resp)
	if fixed == "" {
		out.Warning("Model returned no code")
		out.Response("Fix", resp, theme())
		return nil
	}
	if fixed[len(fixed)-1] != '\n' {
		fixed += "\n"
	}

	edits := myers.ComputeEdits(span.URIFromPath(path), source, fixed)
	if len(edits) == 0 {
		out.Success("No changes needed")
		return nil
	}

	unified := fmt.Sprint(gotextdiff.ToUnified(path, path+" (fixed)", source, edits))
	fmt.Fprintln(cmd.OutOrStdout(), highlight.Highlight(unified, "diff", theme()))

	if flagFixWrite {
		if err := os.WriteFile(path, []byte(fixed), 0644); err != nil {
			return err
		}
		out.Success("Wrote fix to " + path)
	} else {
		out.KeyValue("Hint", "re-run with --write to apply")
	}
	return nil
}

func init() {
	fixCmd.Flags().StringVar(&flagFixError, "error", "", "error message the code produces")
	fixCmd.Flags().BoolVar(&flagFixWrite, "write", false, "write the fix back to the file")
}
