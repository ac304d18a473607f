package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/msarac/nexus/internal/config"
	"github.com/msarac/nexus/internal/store"
)

const version = "0.1.0"

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show version, configuration, and cache details",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	out.Header("NEXUS", "v"+version)

	dir, err := config.DataDir()
	if err == nil {
		out.KeyValue("Config dir", dir)
	}
	out.KeyValue("Default provider", cfg.AI.DefaultProvider)
	out.KeyValue("Local fallback", fmt.Sprintf("%t", cfg.AI.LocalFallback))
	out.KeyValue("Send code to cloud", fmt.Sprintf("%t", cfg.Privacy.SendCodeToCloud))
	out.KeyValue("Telemetry", fmt.Sprintf("%t", cfg.General.Telemetry))
	if len(cfg.Index.ExcludePatterns) > 0 {
		out.KeyValue("Index excludes", strings.Join(cfg.Index.ExcludePatterns, ", "))
	}

	names := make([]string, 0, len(cfg.AI.Providers))
	for name := range cfg.AI.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := cfg.AI.Providers[name]
		detail := p.Model
		if p.APIKeyEnv != "" {
			if p.APIKey() != "" {
				detail += " (key set)"
			} else {
				detail += " (no " + p.APIKeyEnv + ")"
			}
		}
		out.KeyValue("Provider "+name, detail)
	}

	if err == nil {
		cache, cerr := store.Open(filepath.Join(dir, "responses.db"), 24*time.Hour)
		if cerr == nil {
			if n, serr := cache.Stats(); serr == nil {
				out.KeyValue("Cached responses", fmt.Sprintf("%d", n))
			}
			cache.Close()
		}
	}

	out.KeyValue("Languages", strings.Join([]string{"Rust", "Python", "JavaScript", "TypeScript"}, ", "))
	return nil
}
