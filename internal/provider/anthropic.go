package provider

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

const anthropicVersion = "2023-06-01"

// AnthropicProvider talks to the Anthropic Messages API.
type AnthropicProvider struct {
	endpoint    string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// NewAnthropic creates a provider for the Messages API at endpoint.
func NewAnthropic(endpoint, apiKey, model string, maxTokens int, temperature float64) *AnthropicProvider {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &AnthropicProvider{
		endpoint:    strings.TrimRight(endpoint, "/"),
		apiKey:      apiKey,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		httpClient:  &http.Client{},
	}
}

func (p *AnthropicProvider) Name() string { return "claude" }

func (p *AnthropicProvider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	Messages    []anthropicMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature,omitempty"`
	Stream      bool               `json:"stream,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// toAnthropicMessages hoists system messages out of the conversation; the
// Messages API carries them in a top-level field.
func toAnthropicMessages(messages []Message) (string, []anthropicMessage) {
	var systemParts []string
	var result []anthropicMessage

	for _, m := range messages {
		if m.Role == RoleSystem {
			systemParts = append(systemParts, m.Content)
			continue
		}
		result = append(result, anthropicMessage{Role: m.Role, Content: m.Content})
	}

	return strings.Join(systemParts, "\n\n"), result
}

func (p *AnthropicProvider) buildRequest(messages []Message, stream bool) ([]byte, error) {
	system, msgs := toAnthropicMessages(messages)
	return json.Marshal(anthropicRequest{
		Model:       p.model,
		Messages:    msgs,
		System:      system,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
		Stream:      stream,
	})
}

func (p *AnthropicProvider) headers() map[string]string {
	return map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": anthropicVersion,
	}
}

// Chat sends a non-streaming request and returns the concatenated text blocks.
func (p *AnthropicProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	body, err := p.buildRequest(messages, false)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range p.headers() {
		req.Header.Set(k, v)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("anthropic response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("anthropic %s: %s", parsed.Error.Type, parsed.Error.Message)
		}
		return "", fmt.Errorf("anthropic status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

// Stream sends a streaming request over SSE.
func (p *AnthropicProvider) Stream(ctx context.Context, messages []Message) (<-chan StreamChunk, error) {
	body, err := p.buildRequest(messages, true)
	if err != nil {
		return nil, err
	}

	reader, err := httpDoSSE(ctx, httpRequestConfig{
		client:   p.httpClient,
		url:      p.endpoint + "/v1/messages",
		body:     body,
		headers:  p.headers(),
		provider: p.Name(),
		model:    p.model,
	})
	if err != nil {
		return nil, err
	}

	ch := make(chan StreamChunk)
	go func() {
		defer close(ch)
		defer reader.Close()
		parseAnthropicSSE(ctx, reader, ch)
	}()

	return ch, nil
}

type anthropicContentBlockDelta struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	} `json:"delta"`
}

// parseAnthropicSSE reads Anthropic Messages API SSE events and emits text
// deltas. Event types other than content_block_delta and message_stop are
// ignored.
func parseAnthropicSSE(ctx context.Context, reader io.Reader, ch chan<- StreamChunk) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 512*1024)

	var currentEventType string

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "event: ") {
			currentEventType = strings.TrimPrefix(line, "event: ")
			continue
		}
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")

		switch currentEventType {
		case "message_stop":
			trySend(ctx, ch, StreamChunk{Done: true})
			return

		case "content_block_delta":
			var evt anthropicContentBlockDelta
			if err := json.Unmarshal([]byte(data), &evt); err != nil {
				log.Warn().Err(err).Msg("Failed to parse anthropic content_block_delta")
				continue
			}
			if evt.Delta.Type == "text_delta" && evt.Delta.Text != "" {
				if !trySend(ctx, ch, StreamChunk{Content: evt.Delta.Text}) {
					return
				}
			}
		}

		currentEventType = ""
	}

	if err := scanner.Err(); err != nil {
		trySend(ctx, ch, StreamChunk{Err: err})
		return
	}

	// Stream ended without message_stop
	trySend(ctx, ch, StreamChunk{Done: true})
}
