package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/llm"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize <file>",
	Short: "Suggest performance improvements for a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runOptimize,
}

func runOptimize(cmd *cobra.Command, args []string) error {
	path := args[0]
	out.Header("NEXUS Optimize", path)

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

	prompt := fmt.Sprintf("Analyze the following %s code for performance issues:\n\n%s",
		lang, codeBlock(lang, source))

	out.Status("Analyzing performance...")
	resp, err := cachedChat(cmd.Context(), prov, modelFor(prov), llm.OptimizePrompt(), prompt)
	if err != nil {
		return err
	}

	out.Response("Optimization report", resp, theme())
	return nil
}
