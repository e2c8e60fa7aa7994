package provider

import "context"

// LLMProvider defines the interface for interacting with a text-generation
// backend.
type LLMProvider interface {
	Stream(ctx context.Context, req CompletionRequest) (<-chan StreamEvent, error)
}

// CompletionRequest represents a request to an LLM for completion.
// Temperature is a pointer so that an explicit 0 (deterministic sampling)
// survives serialization instead of being treated as unset.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature *float64  `json:"temperature,omitempty"`
	Stop        []string  `json:"stop,omitempty"`
}

// Message represents a single message in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// StreamEvent represents a single event in a streaming response.
type StreamEvent struct {
	Type  string // "text_delta", "stop", or "error"
	Text  string
	Error error
}

// NewUserMessage creates a new user message.
func NewUserMessage(text string) Message {
	return Message{Role: "user", Content: text}
}

// Temp returns a pointer to t, for building requests.
func Temp(t float64) *float64 {
	return &t
}
