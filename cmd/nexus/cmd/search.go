package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/search"
)

var flagSearchMax int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed symbols by relevance",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	out.Header("Searching", query)

	res, err := indexCurrentDir(cmd.Context())
	if err != nil {
		return err
	}

	engine := search.NewEngine(res.Files)
	hits := engine.Search(query, flagSearchMax)
	if len(hits) == 0 {
		out.Warning("No matches found")
		return nil
	}

	for i, hit := range hits {
		out.KeyValue(
			fmt.Sprintf("%2d. %s %s", i+1, hit.Symbol.Kind, hit.Symbol.Name),
			fmt.Sprintf("%s:%d-%d  score %.0f (%s)",
				hit.File.Path, hit.Symbol.StartLine, hit.Symbol.EndLine,
				hit.Score, hit.MatchType),
		)
		if sig := strings.TrimSpace(hit.Symbol.Signature); sig != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", sig)
		}
	}
	out.Success(fmt.Sprintf("%d results from %d files", len(hits), res.FilesIndexed))
	return nil
}

func init() {
	searchCmd.Flags().IntVar(&flagSearchMax, "max", 10, "maximum number of results")
}
