package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/llm"
	"github.com/msarac/nexus/internal/treesitter"
)

var (
	flagGenOutput   string
	flagGenLanguage string
)

var generateCmd = &cobra.Command{
	Use:   "generate <description>",
	Short: "Generate code from a description",
	Long: `Generates code matching the description. The language comes from --language,
or from the --output file extension when given, defaulting to Rust.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	description := strings.Join(args, " ")
	language := generateLanguage()
	out.Header("NEXUS Generate", language+": "+description)

	prov, err := newProvider()
	if err != nil {
		return err
	}
	defer prov.Close()

	out.Status("Generating...")
	resp, err := cachedChat(cmd.Context(), prov, modelFor(prov), llm.GeneratePrompt(language), description)
	if err != nil {
		return err
	}

	// The generate prompt forbids fences, but models slip; strip defensively.
	code := extractCode(resp)

	if flagGenOutput == "" {
		out.Response("Generated code", "```"+strings.ToLower(language)+"\n"+code+"\n```", theme())
		return nil
	}
	if err := os.WriteFile(flagGenOutput, []byte(code+"\n"), 0644); err != nil {
		return err
	}
	out.Success("Wrote generated code to " + flagGenOutput)
	return nil
}

func generateLanguage() string {
	if flagGenLanguage != "" {
		return flagGenLanguage
	}
	if flagGenOutput != "" {
		if lang := treesitter.LanguageFromPath(flagGenOutput); lang != treesitter.LangUnknown {
			return lang.String()
		}
	}
	return "Rust"
}

func init() {
	generateCmd.Flags().StringVarP(&flagGenOutput, "output", "o", "", "write generated code to this file")
	generateCmd.Flags().StringVarP(&flagGenLanguage, "language", "l", "", "target language")
}
