package provider

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/msarac/nexus/internal/config"
)

// FromConfig builds the named provider from configuration. An empty name
// selects the configured default. Cloud providers without an exported API
// key fall back to the local provider when local_fallback is enabled.
func FromConfig(cfg *config.Config, name string) (Provider, error) {
	if name == "" {
		name = cfg.AI.DefaultProvider
	}

	pc, ok := cfg.AI.Providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
	}

	if name != "local" && pc.APIKey() == "" {
		if cfg.AI.LocalFallback {
			if local, ok := cfg.AI.Providers["local"]; ok {
				log.Debug().Str("provider", name).Str("env", pc.APIKeyEnv).
					Msg("api key not set, falling back to local provider")
				return build("local", local)
			}
		}
		return nil, fmt.Errorf("%w: %s (set %s)", ErrNoAPIKey, name, pc.APIKeyEnv)
	}

	return build(name, pc)
}

func build(name string, pc config.ProviderConfig) (Provider, error) {
	switch name {
	case "claude":
		return NewAnthropic(pc.Endpoint, pc.APIKey(), pc.Model, pc.MaxTokens, pc.Temperature), nil
	case "openai":
		return NewOpenAI(pc.Endpoint, pc.APIKey(), pc.Model, pc.MaxTokens, pc.Temperature), nil
	case "local":
		return NewOllama(pc.Endpoint, pc.Model, pc.Temperature), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
	}
}
