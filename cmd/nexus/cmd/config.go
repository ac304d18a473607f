package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/config"
)

var (
	flagConfigShow bool
	flagConfigInit bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize the configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	switch {
	case flagConfigInit:
		path, created, err := config.Init()
		if err != nil {
			return err
		}
		if created {
			out.Success("Wrote default config to " + path)
		} else {
			out.Warning("Config already exists at " + path)
		}
		return nil
	case flagConfigShow:
		encoded, err := cfg.Encode()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), encoded)
		return nil
	default:
		return cmd.Help()
	}
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigShow, "show", false, "print the effective configuration")
	configCmd.Flags().BoolVar(&flagConfigInit, "init", false, "write a default config file")
}
