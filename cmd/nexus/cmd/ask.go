package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/llm"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the AI a question about this codebase",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	out.Header("NEXUS Ask", question)

	prov, err := newProvider()
	if err != nil {
		return err
	}
	defer prov.Close()

	prompt := question
	if allowCode(prov) {
		out.Status("Indexing codebase...")
		res, err := indexCurrentDir(cmd.Context())
		if err != nil {
			return err
		}
		prompt = llm.BuildCodebaseContext(res.Files, question) +
			"\n### Question\n" + question
	} else {
		out.Warning("Codebase context withheld: privacy.send_code_to_cloud is false")
	}

	out.Status("Thinking...")
	resp, err := cachedChat(cmd.Context(), prov, modelFor(prov), llm.AskPrompt(), prompt)
	if err != nil {
		return err
	}

	out.Response("Answer", resp, theme())
	return nil
}
