package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/llm"
)

var flagReviewFocus string

var reviewCmd = &cobra.Command{
	Use:   "review <file>",
	Short: "Review a file for problems",
	Args:  cobra.ExactArgs(1),
	RunE:  runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	path := args[0]
	out.Header("NEXUS Review", fmt.Sprintf("%s (focus: %s)", path, flagReviewFocus))

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

	prompt := fmt.Sprintf("Review the following %s code from %s:\n\n%s",
		lang, path, codeBlock(lang, source))

	out.Status("Reviewing...")
	resp, err := cachedChat(cmd.Context(), prov, modelFor(prov), llm.ReviewPrompt(flagReviewFocus), prompt)
	if err != nil {
		return err
	}

	out.Response("Review", resp, theme())
	return nil
}

func init() {
	reviewCmd.Flags().StringVar(&flagReviewFocus, "focus", "all", "review focus: security, performance, best-practices, or all")
}
