package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/git"
	"github.com/msarac/nexus/internal/llm"
)

var (
	flagDiffStaged bool
	flagDiffFile   string
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Summarize and assess the current git diff",
	Args:  cobra.NoArgs,
	RunE:  runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out.Header("NEXUS Diff", "")

	diff, err := git.Diff(ctx, flagDiffStaged, flagDiffFile)
	if err != nil {
		return err
	}
	if strings.TrimSpace(diff) == "" {
		out.Warning("No changes to analyze")
		return nil
	}

	prov, err := newProvider()
	if err != nil {
		return err
	}
	defer prov.Close()
	if err := requireCodeConsent(prov); err != nil {
		return err
	}

	prompt := "```diff\n" + git.TruncateDiff(diff) + "\n```"

	out.Status("Analyzing changes...")
	resp, err := cachedChat(ctx, prov, modelFor(prov), llm.DiffPrompt(), prompt)
	if err != nil {
		return err
	}

	out.Response("Change analysis", resp, theme())
	return nil
}

func init() {
	diffCmd.Flags().BoolVar(&flagDiffStaged, "staged", false, "analyze staged changes only")
	diffCmd.Flags().StringVar(&flagDiffFile, "file", "", "restrict the diff to one file")
}
