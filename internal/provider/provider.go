// Package provider defines the LLM provider interface and implementations.
package provider

import (
	"context"
	"errors"
)

// ErrProviderNotFound is returned when a requested provider doesn't exist.
var ErrProviderNotFound = errors.New("provider not found")

// ErrNoAPIKey is returned when a cloud provider is selected but its API key
// environment variable is not set.
var ErrNoAPIKey = errors.New("api key not set")

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message.
type Message struct {
	Role    string
	Content string
}

// System builds a system message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// User builds a user message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// StreamChunk represents a chunk of streamed response.
type StreamChunk struct {
	Content string
	Done    bool
	Err     error
}

// Provider defines the interface for LLM providers.
type Provider interface {
	// Name returns the provider's identifier.
	Name() string

	// Chat sends messages and returns the complete response.
	Chat(ctx context.Context, messages []Message) (string, error)

	// Stream sends messages and returns a channel of response chunks. The
	// channel is closed after a Done or Err chunk.
	Stream(ctx context.Context, messages []Message) (<-chan StreamChunk, error)

	// Close closes idle HTTP connections and cleans up resources.
	Close() error
}

// trySend delivers evt unless the context is cancelled first.
func trySend(ctx context.Context, ch chan<- StreamChunk, evt StreamChunk) bool {
	select {
	case ch <- evt:
		return true
	case <-ctx.Done():
		return false
	}
}

// collectStream drains a stream channel into a single string. Providers that
// only implement streaming use it to satisfy Chat.
func collectStream(ch <-chan StreamChunk) (string, error) {
	var sb []byte
	for chunk := range ch {
		if chunk.Err != nil {
			return "", chunk.Err
		}
		sb = append(sb, chunk.Content...)
		if chunk.Done {
			break
		}
	}
	return string(sb), nil
}
