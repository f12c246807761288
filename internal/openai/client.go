// Package openai adapts the openai-go chat completions API to llm.Client.
// Any OpenAI-compatible endpoint works through the base URL.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/MikeSquared-Agency/onesheet/internal/llm"
)

const DefaultModel = "gpt-4o"

type Client struct {
	model  string
	client openai.Client
}

var _ llm.Client = (*Client)(nil)

// NewClient builds a client. baseURL may be empty for the public API.
func NewClient(apiKey, model, baseURL string, opts ...option.RequestOption) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing")
	}
	if model == "" {
		model = DefaultModel
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: 120 * time.Second}),
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, opts...)
	return &Client{model: model, client: openai.NewClient(reqOpts...)}, nil
}

func (c *Client) Model() string {
	return c.model
}

// Complete sends the conversation as a chat completion and returns the first
// choice's content.
func (c *Client) Complete(ctx context.Context, system string, messages []llm.Message, maxTokens int) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	if system != "" {
		msgs = append(msgs, openai.SystemMessage(system))
	}
	for _, m := range messages {
		switch m.Role {
		case "assistant":
			msgs = append(msgs, openai.ChatCompletionMessageParamOfAssistant(m.Content))
		case "system":
			msgs = append(msgs, openai.SystemMessage(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: msgs,
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", errors.New("openai: empty content")
	}
	return content, nil
}
