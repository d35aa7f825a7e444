package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"

	"github.com/cleanos-ai/cleanos/internal/providers"
)

// DefaultAnthropicMaxTokens caps responses when a request sets no limit.
const DefaultAnthropicMaxTokens = 4096

// AnthropicClientInterface defines the interface for Anthropic API client.
// This allows for mocking in tests.
type AnthropicClientInterface interface {
	CreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error)
	CreateMessageStream(ctx context.Context, params anthropic.MessageNewParams) *ssestream.Stream[anthropic.MessageStreamEventUnion]
}

// anthropicClientWrapper wraps the real Anthropic client to implement AnthropicClientInterface.
type anthropicClientWrapper struct {
	client anthropic.Client
}

func (w *anthropicClientWrapper) CreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	return w.client.Messages.New(ctx, params)
}

func (w *anthropicClientWrapper) CreateMessageStream(ctx context.Context, params anthropic.MessageNewParams) *ssestream.Stream[anthropic.MessageStreamEventUnion] {
	return w.client.Messages.NewStreaming(ctx, params)
}

// AnthropicProvider implements Provider for Claude using Anthropic's API.
type AnthropicProvider struct {
	client AnthropicClientInterface
	model  string
}

// NewAnthropicProvider creates a Claude provider. Any model id is accepted
// since the live catalog lists models newer than the built-in table.
func NewAnthropicProvider(apiKey, model string) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("claude API key is required")
	}

	if model == "" {
		model = providers.DefaultModel(providers.Claude)
	}

	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(NewHTTPClient()),
	)

	return &AnthropicProvider{
		client: &anthropicClientWrapper{client: client},
		model:  model,
	}, nil
}

// NewAnthropicProviderWithClient creates an Anthropic provider with a custom client.
// This is useful for testing.
func NewAnthropicProviderWithClient(client AnthropicClientInterface, model string) *AnthropicProvider {
	if model == "" {
		model = providers.DefaultModel(providers.Claude)
	}
	return &AnthropicProvider{
		client: client,
		model:  model,
	}
}

// params builds the request parameters shared by Chat and ChatSync.
func (p *AnthropicProvider) params(messages []Message, opts ChatOptions) anthropic.MessageNewParams {
	model := opts.Model
	if model == "" {
		model = p.model
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultAnthropicMaxTokens
	}

	anthropicMessages, systemPrompt := p.convertMessages(messages)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages:  anthropicMessages,
	}
	if opts.Temperature > 0 {
		params.Temperature = anthropic.Float(opts.Temperature)
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemPrompt},
		}
	}
	return params
}

// Chat sends messages and returns a streaming response.
func (p *AnthropicProvider) Chat(ctx context.Context, messages []Message, opts ChatOptions) (*StreamReader, error) {
	params := p.params(messages, opts)
	sr := NewStreamReader()

	go func() {
		defer sr.Close()

		stream := p.client.CreateMessageStream(ctx, params)
		if stream == nil {
			sr.Send(StreamChunk{Error: fmt.Errorf("claude stream: no stream")})
			return
		}

		for stream.Next() {
			event := stream.Current()

			// Extract text from content block delta events
			switch eventVariant := event.AsAny().(type) {
			case anthropic.ContentBlockDeltaEvent:
				switch deltaVariant := eventVariant.Delta.AsAny().(type) {
				case anthropic.TextDelta:
					sr.Send(StreamChunk{Text: deltaVariant.Text})
				}
			case anthropic.MessageStopEvent:
				sr.Send(StreamChunk{Done: true})
			}
		}

		if err := stream.Err(); err != nil {
			sr.Send(StreamChunk{Error: fmt.Errorf("claude stream: %w", err)})
		}
	}()

	return sr, nil
}

// ChatSync sends messages and waits for complete response.
func (p *AnthropicProvider) ChatSync(ctx context.Context, messages []Message, opts ChatOptions) (*Response, error) {
	msg, err := p.client.CreateMessage(ctx, p.params(messages, opts))
	if err != nil {
		return nil, fmt.Errorf("claude chat: %w", err)
	}

	// Type is checked directly so hand-built messages work too.
	var content string
	for _, block := range msg.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	return &Response{
		Content:      content,
		Model:        string(msg.Model),
		FinishReason: string(msg.StopReason),
		Usage: Usage{
			PromptTokens:     int(msg.Usage.InputTokens),
			CompletionTokens: int(msg.Usage.OutputTokens),
			TotalTokens:      int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}, nil
}

// convertMessages converts generic messages to Anthropic format.
// System messages are extracted and returned separately since Anthropic
// uses a dedicated system parameter.
func (p *AnthropicProvider) convertMessages(messages []Message) ([]anthropic.MessageParam, string) {
	var anthropicMessages []anthropic.MessageParam
	var systemPrompt string

	for _, msg := range messages {
		switch msg.Role {
		case "system":
			// Anthropic uses a separate system parameter
			systemPrompt = msg.Content
		case "user":
			anthropicMessages = append(anthropicMessages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		case "assistant":
			anthropicMessages = append(anthropicMessages, anthropic.NewAssistantMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		}
	}

	return anthropicMessages, systemPrompt
}

// Name returns the provider id.
func (p *AnthropicProvider) Name() string {
	return providers.Claude
}

// Models returns the built-in Claude model ids.
func (p *AnthropicProvider) Models() []string {
	return knownModels(providers.Claude)
}

// DefaultModel returns the model used when a request names none.
func (p *AnthropicProvider) DefaultModel() string {
	return p.model
}
