// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	General GeneralConfig `toml:"general"`
	AI      AIConfig      `toml:"ai"`
	Privacy PrivacyConfig `toml:"privacy"`
	Index   IndexConfig   `toml:"index"`

	// Verbose is set from the command line, never from the file.
	Verbose bool `toml:"-"`
}

// GeneralConfig holds tool-wide settings.
type GeneralConfig struct {
	Theme     string `toml:"theme"`
	Telemetry bool   `toml:"telemetry"`
}

// AIConfig selects and configures LLM providers.
type AIConfig struct {
	DefaultProvider string                    `toml:"default_provider"`
	LocalFallback   bool                      `toml:"local_fallback"`
	Providers       map[string]ProviderConfig `toml:"providers"`
}

// ProviderConfig holds settings for one LLM provider. The API key itself is
// never stored in the file; APIKeyEnv names the environment variable to read.
type ProviderConfig struct {
	APIKeyEnv   string  `toml:"api_key_env"`
	Endpoint    string  `toml:"endpoint"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
}

// APIKey resolves the provider's API key from the environment. Empty when
// APIKeyEnv is unset or the variable is not exported.
func (p ProviderConfig) APIKey() string {
	if p.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(p.APIKeyEnv)
}

// PrivacyConfig gates what leaves the machine.
type PrivacyConfig struct {
	SendCodeToCloud bool `toml:"send_code_to_cloud"`
}

// IndexConfig tunes the file indexer.
type IndexConfig struct {
	ExcludePatterns []string `toml:"exclude_patterns"`
	MaxFileSizeMB   int      `toml:"max_file_size_mb"`
}

// MaxFileSizeBytes converts the configured cap to bytes, defaulting to 10MB.
func (i IndexConfig) MaxFileSizeBytes() int64 {
	mb := i.MaxFileSizeMB
	if mb <= 0 {
		mb = 10
	}
	return int64(mb) << 20
}

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			Theme:     "dark",
			Telemetry: false,
		},
		AI: AIConfig{
			DefaultProvider: "claude",
			LocalFallback:   true,
			Providers: map[string]ProviderConfig{
				"claude": {
					APIKeyEnv:   "ANTHROPIC_API_KEY",
					Endpoint:    "https://api.anthropic.com",
					Model:       "claude-3-opus-20240229",
					MaxTokens:   4096,
					Temperature: 0.7,
				},
				"openai": {
					APIKeyEnv:   "OPENAI_API_KEY",
					Endpoint:    "https://api.openai.com",
					Model:       "gpt-4o",
					MaxTokens:   4096,
					Temperature: 0.7,
				},
				"local": {
					Endpoint:  "http://localhost:11434",
					Model:     "codellama",
					MaxTokens: 4096,
				},
			},
		},
		Privacy: PrivacyConfig{
			SendCodeToCloud: false,
		},
		Index: IndexConfig{
			ExcludePatterns: []string{"node_modules", ".git", "target", "__pycache__", "*.lock"},
			MaxFileSizeMB:   10,
		},
	}
}

// Load reads configuration from path, or from the default location when path
// is empty. A missing file is not an error: the defaults apply. Environment
// variable overrides run after decoding, then validation.
func Load(path string) (*Config, error) {
	if path == "" {
		dir, err := DataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.toml")
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error joining every problem found in the configuration.
func (c *Config) Validate() error {
	var errs []error

	if len(c.AI.Providers) == 0 {
		errs = append(errs, errors.New("ai.providers: at least one provider must be configured"))
	} else {
		for name, p := range c.AI.Providers {
			errs = append(errs, validateProvider(name, p)...)
		}
	}

	if c.AI.DefaultProvider != "" {
		if _, ok := c.AI.Providers[c.AI.DefaultProvider]; !ok {
			errs = append(errs, fmt.Errorf("ai.default_provider=%q does not exist in ai.providers", c.AI.DefaultProvider))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validateProvider(name string, p ProviderConfig) []error {
	var errs []error

	if p.Model == "" {
		errs = append(errs, fmt.Errorf("ai.providers.%s.model is required", name))
	}
	if p.Endpoint != "" {
		if err := validateEndpoint(p.Endpoint); err != nil {
			errs = append(errs, fmt.Errorf("ai.providers.%s.endpoint=%q is invalid: %v", name, p.Endpoint, err))
		}
	}
	if p.Temperature < 0.0 || p.Temperature > 2.0 {
		errs = append(errs, fmt.Errorf("ai.providers.%s.temperature=%v must be between 0.0 and 2.0", name, p.Temperature))
	}

	return errs
}

func validateEndpoint(value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("missing scheme or host")
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"NEXUS_PROVIDER", func(v string) {
			if v != "" {
				cfg.AI.DefaultProvider = v
			}
		}},
		{"NEXUS_OLLAMA_ENDPOINT", func(v string) {
			if v != "" {
				p := cfg.AI.Providers["local"]
				p.Endpoint = v
				cfg.AI.Providers["local"] = p
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// Encode renders the configuration as TOML, for `nexus config --show`.
func (c *Config) Encode() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DataDir returns the path to the nexus data directory (~/.config/nexus).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "nexus"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}

// Init writes the default configuration to the standard location if no file
// exists yet. Returns the path and whether a new file was written.
func Init() (string, bool, error) {
	dir, err := EnsureDataDir()
	if err != nil {
		return "", false, err
	}
	path := filepath.Join(dir, "config.toml")

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	content, err := Default().Encode()
	if err != nil {
		return "", false, err
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", false, err
	}
	return path, true, nil
}
