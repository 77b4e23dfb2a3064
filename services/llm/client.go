package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	// DefaultModel is the chat model used for extraction
	DefaultModel = "gpt-3.5-turbo"
	// DefaultMaxTokens caps each completion
	DefaultMaxTokens = 1500
	// DefaultTimeout bounds a single completion request
	DefaultTimeout = 120 * time.Second
)

// Completer sends one system+user exchange to a chat model and returns the
// text of the first choice. An empty string means the model returned nothing.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config holds configuration for the chat completion client
type Config struct {
	APIKey    string
	BaseURL   string // empty means the SDK default (api.openai.com)
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// Client calls the OpenAI chat completions API. Requests are never retried.
type Client struct {
	client    openai.Client
	model     string
	maxTokens int
}

var _ Completer = (*Client)(nil)

// NewClient creates a chat completion client
func NewClient(config Config) *Client {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultMaxTokens
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(config.Timeout),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	return &Client{
		client:    openai.NewClient(opts...),
		model:     config.Model,
		maxTokens: config.MaxTokens,
	}
}

// Complete implements Completer
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		MaxTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
