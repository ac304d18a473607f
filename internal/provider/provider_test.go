package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/msarac/nexus/internal/config"
)

func TestToAnthropicMessagesHoistsSystem(t *testing.T) {
	system, msgs := toAnthropicMessages([]Message{
		System("first rule"),
		User("hello"),
		System("second rule"),
		{Role: RoleAssistant, Content: "hi"},
	})

	if system != "first rule\n\nsecond rule" {
		t.Errorf("system = %q", system)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != RoleUser || msgs[1].Role != RoleAssistant {
		t.Errorf("unexpected roles: %+v", msgs)
	}
}

func TestMergeConsecutiveSystemMessages(t *testing.T) {
	merged := mergeConsecutiveSystemMessages([]ollamaReqMessage{
		{Role: RoleSystem, Content: "a"},
		{Role: RoleSystem, Content: "b"},
		{Role: RoleUser, Content: "q"},
		{Role: RoleSystem, Content: "c"},
	})

	if len(merged) != 3 {
		t.Fatalf("got %d messages, want 3: %+v", len(merged), merged)
	}
	if merged[0].Content != "a\n\nb" {
		t.Errorf("merged system = %q", merged[0].Content)
	}
	if merged[2].Role != RoleSystem || merged[2].Content != "c" {
		t.Errorf("trailing system not preserved: %+v", merged[2])
	}
}

func TestParseChatCompletionSSE(t *testing.T) {
	stream := strings.Join([]string{
		`data: {"choices":[{"delta":{"role":"assistant","content":"Hel"}}]}`,
		``,
		`data: {"choices":[{"delta":{"content":"lo"}}]}`,
		``,
		`data: not-json`,
		``,
		`data: [DONE]`,
		``,
	}, "\n")

	ch := make(chan StreamChunk)
	go func() {
		defer close(ch)
		parseChatCompletionSSE(context.Background(), strings.NewReader(stream), ch)
	}()

	var content strings.Builder
	done := false
	for chunk := range ch {
		if chunk.Err != nil {
			t.Fatalf("unexpected stream error: %v", chunk.Err)
		}
		content.WriteString(chunk.Content)
		if chunk.Done {
			done = true
		}
	}
	if content.String() != "Hello" {
		t.Errorf("streamed content = %q, want Hello", content.String())
	}
	if !done {
		t.Error("missing Done chunk")
	}
}

func TestParseAnthropicSSE(t *testing.T) {
	stream := strings.Join([]string{
		`event: message_start`,
		`data: {"type":"message_start"}`,
		``,
		`event: content_block_delta`,
		`data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Hi "}}`,
		``,
		`event: content_block_delta`,
		`data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"there"}}`,
		``,
		`event: message_stop`,
		`data: {"type":"message_stop"}`,
		``,
	}, "\n")

	ch := make(chan StreamChunk)
	go func() {
		defer close(ch)
		parseAnthropicSSE(context.Background(), strings.NewReader(stream), ch)
	}()

	var content strings.Builder
	for chunk := range ch {
		content.WriteString(chunk.Content)
	}
	if content.String() != "Hi there" {
		t.Errorf("streamed content = %q, want %q", content.String(), "Hi there")
	}
}

func TestOllamaChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"pong"}}]}`))
	}))
	defer srv.Close()

	p := NewOllama(srv.URL, "codellama", 0.7)
	defer p.Close()

	got, err := p.Chat(context.Background(), []Message{User("ping")})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if got != "pong" {
		t.Errorf("Chat = %q, want pong", got)
	}
}

func TestOllamaChatErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllama(srv.URL, "ghost", 0.7)
	defer p.Close()

	if _, err := p.Chat(context.Background(), []Message{User("ping")}); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestAnthropicChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "sk-test" {
			t.Errorf("x-api-key = %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got == "" {
			t.Error("missing anthropic-version header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"answer"}]}`))
	}))
	defer srv.Close()

	p := NewAnthropic(srv.URL, "sk-test", "claude-3-opus-20240229", 0, 0.7)
	defer p.Close()

	got, err := p.Chat(context.Background(), []Message{System("sys"), User("q")})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if got != "answer" {
		t.Errorf("Chat = %q, want answer", got)
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.AI.Providers["claude"] = config.ProviderConfig{
		APIKeyEnv: "NEXUS_TEST_ANTHROPIC_KEY",
		Endpoint:  "https://api.anthropic.com",
		Model:     "claude-3-opus-20240229",
	}
	return cfg
}

func TestFromConfigUnknownProvider(t *testing.T) {
	_, err := FromConfig(testConfig(), "ghost")
	if !errors.Is(err, ErrProviderNotFound) {
		t.Errorf("expected ErrProviderNotFound, got %v", err)
	}
}

func TestFromConfigLocalFallback(t *testing.T) {
	cfg := testConfig()
	cfg.AI.LocalFallback = true

	p, err := FromConfig(cfg, "claude")
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	defer p.Close()
	if p.Name() != "local" {
		t.Errorf("expected fallback to local, got %q", p.Name())
	}
}

func TestFromConfigNoKeyNoFallback(t *testing.T) {
	cfg := testConfig()
	cfg.AI.LocalFallback = false

	_, err := FromConfig(cfg, "claude")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestFromConfigWithKey(t *testing.T) {
	t.Setenv("NEXUS_TEST_ANTHROPIC_KEY", "sk-unit")

	p, err := FromConfig(testConfig(), "claude")
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	defer p.Close()
	if p.Name() != "claude" {
		t.Errorf("provider = %q, want claude", p.Name())
	}
}

func TestMockStream(t *testing.T) {
	m := &Mock{Response: "ok"}
	ch, err := m.Stream(context.Background(), []Message{User("hi")})
	if err != nil {
		t.Fatal(err)
	}
	got, err := collectStream(ch)
	if err != nil {
		t.Fatal(err)
	}
	if got != "ok" {
		t.Errorf("collectStream = %q, want ok", got)
	}
}
