package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/git"
	"github.com/msarac/nexus/internal/llm"
)

var flagCommitExecute bool

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Generate a commit message from staged changes",
	Args:  cobra.NoArgs,
	RunE:  runCommit,
}

func runCommit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out.Header("NEXUS Commit", "")

	diff, err := git.StagedDiff(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(diff) == "" {
		out.Warning("No staged changes; stage files with git add first")
		return nil
	}

	files, err := git.NameStatus(ctx, true)
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

	prompt := "Changed files:\n" + files + "\nDiff:\n```diff\n" + git.TruncateDiff(diff) + "\n```"

	out.Status("Writing commit message...")
	resp, err := cachedChat(ctx, prov, modelFor(prov), llm.CommitPrompt(), prompt)
	if err != nil {
		return err
	}

	message := strings.TrimSpace(extractCode(resp))
	out.Response("Commit message", message, theme())

	if flagCommitExecute {
		if _, err := git.Commit(ctx, message); err != nil {
			return err
		}
		out.Success("Committed")
	} else {
		out.KeyValue("Hint", "re-run with --execute to commit")
	}
	return nil
}

func init() {
	commitCmd.Flags().BoolVar(&flagCommitExecute, "execute", false, "create the commit with the generated message")
}
