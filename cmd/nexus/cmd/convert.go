package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/llm"
)

var (
	flagConvertTo     string
	flagConvertOutput string
)

// convertExt maps target language names to conventional file extensions.
var convertExt = map[string]string{
	"rust":       ".rs",
	"python":     ".py",
	"javascript": ".js",
	"typescript": ".ts",
	"go":         ".go",
	"ruby":       ".rb",
	"java":       ".java",
	"c":          ".c",
	"cpp":        ".cpp",
	"c++":        ".cpp",
}

var convertCmd = &cobra.Command{
	Use:   "convert <file> --to <language>",
	Short: "Convert a file to another language",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	path := args[0]
	target := strings.ToLower(flagConvertTo)
	out.Header("NEXUS Convert", fmt.Sprintf("%s → %s", path, target))

	source, lang, err := readSourceFile(path)
	if err != nil {
		return err
	}
	if strings.EqualFold(lang.String(), target) {
		return fmt.Errorf("%s is already %s", path, lang)
	}

	prov, err := newProvider()
	if err != nil {
		return err
	}
	defer prov.Close()
	if err := requireCodeConsent(prov); err != nil {
		return err
	}

	prompt := fmt.Sprintf("Convert the following %s code to %s:\n\n%s",
		lang, target, codeBlock(lang, source))

	out.Status("Converting...")
	resp, err := cachedChat(cmd.Context(), prov, modelFor(prov), llm.ConvertPrompt(), prompt)
	if err != nil {
		return err
	}

	outPath := flagConvertOutput
	if outPath == "" {
		ext, ok := convertExt[target]
		if !ok {
			out.Response("Converted code", resp, theme())
			return nil
		}
		outPath = strings.TrimSuffix(path, filepath.Ext(path)) + ext
	}

	code := extractCode(resp)
	if err := os.WriteFile(outPath, []byte(code+"\n"), 0644); err != nil {
		return err
	}
	out.Success("Wrote converted code to " + outPath)
	return nil
}

func init() {
	convertCmd.Flags().StringVar(&flagConvertTo, "to", "", "target language (required)")
	convertCmd.Flags().StringVarP(&flagConvertOutput, "output", "o", "", "output file path")
	convertCmd.MarkFlagRequired("to")
}
