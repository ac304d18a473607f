package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/config"
)

var (
	flagConfig   string
	flagVerbose  bool
	flagProvider string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "nexus",
	Short: "nexus — AI-augmented developer tool",
	Long: `nexus parses your codebase with tree-sitter and puts an LLM behind it:
ask questions, search symbols, generate fixes, tests, docs, and commits.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg.Verbose = flagVerbose
		return nil
	},
}

func setupLogging() {
	level := zerolog.WarnLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "override the configured AI provider")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(docCmd)
	rootCmd.AddCommand(refactorCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(infoCmd)
}
