package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/msarac/nexus/internal/config"
	"github.com/msarac/nexus/internal/index"
	"github.com/msarac/nexus/internal/provider"
	"github.com/msarac/nexus/internal/store"
	"github.com/msarac/nexus/internal/treesitter"
	"github.com/msarac/nexus/internal/ui"
)

// out is the shared printer for all commands.
var out = ui.NewPrinter(os.Stdout)

// timeRounding trims sub-millisecond noise from reported durations.
const timeRounding = time.Millisecond

func theme() string {
	if cfg != nil && cfg.General.Theme == "light" {
		return "github"
	}
	return "monokai"
}

// indexCurrentDir parses every supported file under the working directory.
func indexCurrentDir(ctx context.Context) (*index.Result, error) {
	parser, err := treesitter.NewParser()
	if err != nil {
		return nil, err
	}
	defer parser.Close()

	ix := index.New(parser)
	ix.SetMaxFileSize(cfg.Index.MaxFileSizeBytes())
	ix.SetExcludePatterns(cfg.Index.ExcludePatterns)
	return ix.Index(ctx, ".")
}

// newProvider builds the configured provider, honoring the --provider flag.
func newProvider() (provider.Provider, error) {
	return provider.FromConfig(cfg, flagProvider)
}

// allowCode reports whether file contents may leave the machine for this
// provider. Local models always see code.
func allowCode(prov provider.Provider) bool {
	return prov.Name() == "local" || cfg.Privacy.SendCodeToCloud
}

// requireCodeConsent fails commands that cannot work without sending source
// to a cloud provider.
func requireCodeConsent(prov provider.Provider) error {
	if allowCode(prov) {
		return nil
	}
	return fmt.Errorf("provider %q is a cloud service and privacy.send_code_to_cloud is false; enable it in the config or use --provider local", prov.Name())
}

// openCache opens the response cache in the data directory. A cache failure
// is not fatal; commands run uncached.
func openCache() *store.Cache {
	dir, err := config.EnsureDataDir()
	if err != nil {
		log.Debug().Err(err).Msg("response cache unavailable")
		return nil
	}
	c, err := store.Open(filepath.Join(dir, "responses.db"), 24*time.Hour)
	if err != nil {
		log.Debug().Err(err).Msg("response cache unavailable")
		return nil
	}
	return c
}

// cachedChat sends prompt through the provider, consulting the response
// cache first. system may be empty.
func cachedChat(ctx context.Context, prov provider.Provider, model, system, prompt string) (string, error) {
	cache := openCache()
	defer cache.Close()

	key := store.Key(prov.Name(), model, system+"\x00"+prompt)
	if resp, ok := cache.Get(key); ok {
		log.Debug().Msg("response cache hit")
		return resp, nil
	}

	messages := []provider.Message{}
	if system != "" {
		messages = append(messages, provider.System(system))
	}
	messages = append(messages, provider.User(prompt))

	resp, err := prov.Chat(ctx, messages)
	if err != nil {
		return "", err
	}
	cache.Set(key, resp)
	return resp, nil
}

// modelFor returns the configured model string for the provider name, for
// cache key scoping.
func modelFor(prov provider.Provider) string {
	if pc, ok := cfg.AI.Providers[prov.Name()]; ok {
		return pc.Model
	}
	return ""
}

// readSourceFile loads a file and verifies the language is supported.
func readSourceFile(path string) (string, treesitter.Language, error) {
	lang := treesitter.LanguageFromPath(path)
	if lang == treesitter.LangUnknown {
		return "", lang, fmt.Errorf("unsupported file type: %s", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", lang, err
	}
	return string(content), lang, nil
}

// codeBlock wraps source in a markdown fence tagged with the language.
func codeBlock(lang treesitter.Language, source string) string {
	return fmt.Sprintf("```%s\n%s\n```", lang.Chroma(), source)
}

// extractCode pulls the first fenced code block out of a model response.
// Responses without fences are returned trimmed as-is.
func extractCode(response string) string {
	trimmed := strings.TrimSpace(response)
	start := strings.Index(trimmed, "```")
	if start < 0 {
		return trimmed
	}
	rest := trimmed[start+3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	}
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimRight(rest, "\n")
}
