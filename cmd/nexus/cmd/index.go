package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Parse the codebase and report what was found",
	Args:  cobra.NoArgs,
	RunE:  runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	out.Header("Indexing codebase", "")

	res, err := indexCurrentDir(cmd.Context())
	if err != nil {
		return err
	}

	out.Success(fmt.Sprintf("Indexed %d files in %s", res.FilesIndexed, res.TimeTaken.Round(timeRounding)))
	out.KeyValue("Lines", fmt.Sprintf("%d", res.TotalLines))
	out.KeyValue("Functions", fmt.Sprintf("%d", res.Symbols.Functions))
	out.KeyValue("Types", fmt.Sprintf("%d", res.Symbols.Types))
	out.KeyValue("Enums", fmt.Sprintf("%d", res.Symbols.Enums))
	out.KeyValue("Traits", fmt.Sprintf("%d", res.Symbols.Traits))
	out.KeyValue("Modules", fmt.Sprintf("%d", res.Symbols.Modules))
	out.KeyValue("Constants", fmt.Sprintf("%d", res.Symbols.Constants))

	if res.FilesSkipped > 0 {
		out.Warning(fmt.Sprintf("%d files skipped", res.FilesSkipped))
		if cfg.Verbose {
			for _, fe := range res.Errors {
				out.KeyValue(fe.Path, fe.Message)
			}
		}
	}
	return nil
}
