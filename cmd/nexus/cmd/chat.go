package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/llm"
	"github.com/msarac/nexus/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	prov, err := newProvider()
	if err != nil {
		return err
	}
	defer prov.Close()

	model := tui.New(prov, llm.ChatPrompt(), theme())
	_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
	return err
}
