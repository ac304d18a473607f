package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// OllamaProvider talks to a local Ollama daemon through its OpenAI-compatible
// chat completions endpoint.
type OllamaProvider struct {
	baseURL     string
	endpoint    string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewOllama creates a provider for the daemon at endpoint, typically
// http://localhost:11434.
func NewOllama(endpoint, model string, temperature float64) *OllamaProvider {
	endpoint = strings.TrimRight(endpoint, "/")
	return &OllamaProvider{
		baseURL:     endpoint + "/v1",
		endpoint:    endpoint,
		model:       model,
		temperature: temperature,
		httpClient:  &http.Client{},
	}
}

func (p *OllamaProvider) Name() string { return "local" }

func (p *OllamaProvider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}

type ollamaChatRequest struct {
	Model       string             `json:"model"`
	Messages    []ollamaReqMessage `json:"messages"`
	Temperature float32            `json:"temperature,omitempty"`
	Stream      bool               `json:"stream"`
}

type ollamaReqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *OllamaProvider) buildRequest(messages []Message, stream bool) ([]byte, error) {
	msgs := make([]ollamaReqMessage, len(messages))
	for i, m := range messages {
		msgs[i] = ollamaReqMessage{Role: m.Role, Content: m.Content}
	}
	return json.Marshal(ollamaChatRequest{
		Model:       p.model,
		Messages:    mergeConsecutiveSystemMessages(msgs),
		Temperature: float32(p.temperature),
		Stream:      stream,
	})
}

func (p *OllamaProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	body, err := p.buildRequest(messages, false)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var parsed ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("ollama: empty response")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (p *OllamaProvider) Stream(ctx context.Context, messages []Message) (<-chan StreamChunk, error) {
	body, err := p.buildRequest(messages, true)
	if err != nil {
		return nil, err
	}

	reader, err := httpDoSSE(ctx, httpRequestConfig{
		client:   p.httpClient,
		url:      p.baseURL + "/chat/completions",
		body:     body,
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
		parseChatCompletionSSE(ctx, reader, ch)
	}()

	return ch, nil
}

// Model describes an installed Ollama model.
type Model struct {
	Name       string
	Size       int64
	ModifiedAt time.Time
	Family     string
	ParamSize  string
}

type ollamaListResponse struct {
	Models []struct {
		Name       string    `json:"name"`
		Size       int64     `json:"size"`
		ModifiedAt time.Time `json:"modified_at"`
		Details    struct {
			Family    string `json:"family"`
			ParamSize string `json:"parameter_size"`
		} `json:"details"`
	} `json:"models"`
}

// ListModels queries the daemon's native tags endpoint.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]Model, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("list models status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var listResp ollamaListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, err
	}

	models := make([]Model, len(listResp.Models))
	for i, m := range listResp.Models {
		models[i] = Model{
			Name:       m.Name,
			Size:       m.Size,
			ModifiedAt: m.ModifiedAt,
			Family:     m.Details.Family,
			ParamSize:  m.Details.ParamSize,
		}
	}
	return models, nil
}

// mergeConsecutiveSystemMessages collapses runs of system messages into one.
// Local models handle a single system turn far better than several.
func mergeConsecutiveSystemMessages(messages []ollamaReqMessage) []ollamaReqMessage {
	if len(messages) == 0 {
		return messages
	}

	result := make([]ollamaReqMessage, 0, len(messages))
	var systemBuffer strings.Builder
	inSystemRun := false

	flush := func() {
		if inSystemRun {
			result = append(result, ollamaReqMessage{Role: RoleSystem, Content: systemBuffer.String()})
			systemBuffer.Reset()
			inSystemRun = false
		}
	}

	for _, msg := range messages {
		if msg.Role == RoleSystem {
			if inSystemRun {
				systemBuffer.WriteString("\n\n")
			}
			inSystemRun = true
			systemBuffer.WriteString(msg.Content)
			continue
		}
		flush()
		result = append(result, msg)
	}
	flush()

	log.Debug().
		Int("original_count", len(messages)).
		Int("merged_count", len(result)).
		Msg("Merged consecutive system messages")

	return result
}
