package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/llm"
	"github.com/msarac/nexus/internal/shell"
	"github.com/msarac/nexus/internal/treesitter"
)

var (
	flagTestOutput string
	flagTestRun    bool
)

var testCmd = &cobra.Command{
	Use:   "test <file>",
	Short: "Generate unit tests for a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	path := args[0]
	out.Header("NEXUS Test", path)

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

	prompt := fmt.Sprintf("Generate unit tests for the following %s code from %s:\n\n%s",
		lang, path, codeBlock(lang, source))

	out.Status("Generating tests...")
	resp, err := cachedChat(cmd.Context(), prov, modelFor(prov), llm.TestPrompt(), prompt)
	if err != nil {
		return err
	}

	if flagTestOutput == "" {
		out.Response("Generated tests", resp, theme())
		return nil
	}

	code := extractCode(resp)
	if err := os.WriteFile(flagTestOutput, []byte(code+"\n"), 0644); err != nil {
		return err
	}
	out.Success("Wrote tests to " + flagTestOutput)

	if flagTestRun {
		runner := testRunner(lang, flagTestOutput)
		if runner == "" {
			out.Warning("No test runner known for " + lang.String())
			return nil
		}
		out.Status("Running: " + runner)
		sh := shell.New(".")
		if err := sh.ExecStream(cmd.Context(), runner, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
			return fmt.Errorf("tests failed (exit %d)", shell.ExitCode(err))
		}
		out.Success("Tests passed")
	}
	return nil
}

// testRunner picks the conventional test command for the language.
func testRunner(lang treesitter.Language, testFile string) string {
	switch lang {
	case treesitter.LangRust:
		return "cargo test"
	case treesitter.LangPython:
		return "python -m pytest " + testFile
	case treesitter.LangJavaScript, treesitter.LangTypeScript:
		return "npx jest " + testFile
	default:
		return ""
	}
}

func init() {
	testCmd.Flags().StringVarP(&flagTestOutput, "output", "o", "", "write generated tests to this file")
	testCmd.Flags().BoolVar(&flagTestRun, "run", false, "run the generated tests (requires --output)")
}
