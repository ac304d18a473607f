package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.AI.DefaultProvider != "claude" {
		t.Errorf("default provider = %q, want claude", cfg.AI.DefaultProvider)
	}
	if _, ok := cfg.AI.Providers["local"]; !ok {
		t.Error("default config should include a local provider")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.AI.DefaultProvider != "claude" {
		t.Errorf("missing file should yield defaults, got provider %q", cfg.AI.DefaultProvider)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[general]
theme = "light"

[ai]
default_provider = "openai"

[ai.providers.openai]
api_key_env = "OPENAI_API_KEY"
model = "gpt-4o-mini"
temperature = 0.2

[index]
max_file_size_mb = 2
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.Theme != "light" {
		t.Errorf("theme = %q, want light", cfg.General.Theme)
	}
	if cfg.AI.DefaultProvider != "openai" {
		t.Errorf("default provider = %q, want openai", cfg.AI.DefaultProvider)
	}
	if got := cfg.AI.Providers["openai"].Model; got != "gpt-4o-mini" {
		t.Errorf("model = %q", got)
	}
	if got := cfg.Index.MaxFileSizeBytes(); got != 2<<20 {
		t.Errorf("MaxFileSizeBytes = %d, want %d", got, 2<<20)
	}
}

func TestLoadInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not valid = = toml"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := &Config{
		AI: AIConfig{
			DefaultProvider: "ghost",
			Providers: map[string]ProviderConfig{
				"bad": {Endpoint: "not-a-url", Temperature: 5.0},
			},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	for _, want := range []string{"model is required", "endpoint", "temperature", "default_provider"} {
		if !strings.Contains(msg, want) {
			t.Errorf("validation error missing %q:\n%s", want, msg)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NEXUS_PROVIDER", "local")
	t.Setenv("NEXUS_OLLAMA_ENDPOINT", "http://remote:11434")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.DefaultProvider != "local" {
		t.Errorf("NEXUS_PROVIDER override not applied, got %q", cfg.AI.DefaultProvider)
	}
	if got := cfg.AI.Providers["local"].Endpoint; got != "http://remote:11434" {
		t.Errorf("NEXUS_OLLAMA_ENDPOINT override not applied, got %q", got)
	}
}

func TestAPIKeyResolution(t *testing.T) {
	t.Setenv("NEXUS_TEST_KEY", "sk-test")

	p := ProviderConfig{APIKeyEnv: "NEXUS_TEST_KEY"}
	if got := p.APIKey(); got != "sk-test" {
		t.Errorf("APIKey = %q, want sk-test", got)
	}
	if got := (ProviderConfig{}).APIKey(); got != "" {
		t.Errorf("APIKey without env name = %q, want empty", got)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	out, err := Default().Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(out, "default_provider") || !strings.Contains(out, "[ai.providers.claude]") {
		t.Errorf("encoded config looks wrong:\n%s", out)
	}
}
