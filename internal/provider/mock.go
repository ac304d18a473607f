package provider

import "context"

// Mock is a canned-response provider for tests.
type Mock struct {
	Response string
	ChatErr  error

	// LastMessages records the messages from the most recent call.
	LastMessages []Message
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Chat(_ context.Context, messages []Message) (string, error) {
	m.LastMessages = messages
	if m.ChatErr != nil {
		return "", m.ChatErr
	}
	return m.Response, nil
}

func (m *Mock) Stream(ctx context.Context, messages []Message) (<-chan StreamChunk, error) {
	m.LastMessages = messages
	if m.ChatErr != nil {
		return nil, m.ChatErr
	}

	ch := make(chan StreamChunk)
	go func() {
		defer close(ch)
		for _, r := range m.Response {
			if !trySend(ctx, ch, StreamChunk{Content: string(r)}) {
				return
			}
		}
		trySend(ctx, ch, StreamChunk{Done: true})
	}()
	return ch, nil
}

func (m *Mock) Close() error { return nil }
