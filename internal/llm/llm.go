// Package llm is the boundary between the extractor and a hosted model.
package llm

import "context"

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client completes a conversation and returns the model's text.
type Client interface {
	Complete(ctx context.Context, system string, messages []Message, maxTokens int) (string, error)
	Model() string
}

// User wraps content as a user turn.
func User(content string) Message {
	return Message{Role: "user", Content: content}
}
