package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/llm"
)

var flagExplainDepth string

var explainCmd = &cobra.Command{
	Use:   "explain <file>",
	Short: "Explain what a file does",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	path := args[0]
	out.Header("NEXUS Explain", fmt.Sprintf("%s (%s)", path, flagExplainDepth))

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

	prompt := fmt.Sprintf("Explain the following %s code from %s:\n\n%s",
		lang, path, codeBlock(lang, source))

	out.Status("Reading the code...")
	resp, err := cachedChat(cmd.Context(), prov, modelFor(prov), llm.ExplainPrompt(flagExplainDepth), prompt)
	if err != nil {
		return err
	}

	out.Response("Explanation", resp, theme())
	return nil
}

func init() {
	explainCmd.Flags().StringVar(&flagExplainDepth, "depth", "detailed", "explanation depth: brief, detailed, or expert")
}
