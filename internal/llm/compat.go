package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/cleanos-ai/cleanos/internal/providers"
)

// Base URLs of the OpenAI-compatible endpoints.
const (
	OpenAIBaseURL = "https://api.openai.com/v1"
	GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	KimiBaseURL   = "https://api.moonshot.cn/v1"
)

var compatBaseURLs = map[string]string{
	providers.OpenAI: OpenAIBaseURL,
	providers.Gemini: GeminiBaseURL,
	providers.Kimi:   KimiBaseURL,
}

// Attribution headers sent with every outbound request.
const (
	RefererHeader = "HTTP-Referer"
	TitleHeader   = "X-Title"
	AppReferer    = "https://github.com/cleanos-ai/cleanos"
	AppTitle      = "CleanOS AI"
)

// HeaderTransport adds the CleanOS attribution headers to each request.
type HeaderTransport struct {
	Base http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *HeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set(RefererHeader, AppReferer)
	req.Header.Set(TitleHeader, AppTitle)
	return base.RoundTrip(req)
}

// NewHTTPClient returns an http.Client that sends the attribution headers.
func NewHTTPClient() *http.Client {
	return &http.Client{Transport: &HeaderTransport{Base: http.DefaultTransport}}
}

// CompatProvider implements Provider for the OpenAI-compatible APIs
// (OpenAI, Gemini and Kimi).
type CompatProvider struct {
	id           string
	baseURL      string
	client       *openai.Client
	defaultModel string
}

// NewCompatProvider creates a provider for one of the OpenAI-compatible ids.
func NewCompatProvider(id, apiKey, model string) (*CompatProvider, error) {
	baseURL, ok := compatBaseURLs[id]
	if !ok {
		return nil, fmt.Errorf("%s is not an OpenAI-compatible provider", id)
	}
	return newCompatProvider(id, apiKey, model, baseURL)
}

func newCompatProvider(id, apiKey, model, baseURL string) (*CompatProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s API key is required", id)
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = NewHTTPClient()

	if model == "" {
		model = providers.DefaultModel(id)
	}

	return &CompatProvider{
		id:           id,
		baseURL:      baseURL,
		client:       openai.NewClientWithConfig(cfg),
		defaultModel: model,
	}, nil
}

func (p *CompatProvider) request(messages []Message, opts ChatOptions, stream bool) openai.ChatCompletionRequest {
	model := opts.Model
	if model == "" {
		model = p.defaultModel
	}

	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: convertToOpenAIMessages(messages),
		Stream:   stream,
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	if opts.Temperature > 0 {
		req.Temperature = float32(opts.Temperature)
	}
	return req
}

// Chat sends messages and returns a streaming response.
func (p *CompatProvider) Chat(ctx context.Context, messages []Message, opts ChatOptions) (*StreamReader, error) {
	stream, err := p.client.CreateChatCompletionStream(ctx, p.request(messages, opts, true))
	if err != nil {
		return nil, fmt.Errorf("%s stream: %w", p.id, err)
	}

	reader := NewStreamReader()

	go func() {
		defer reader.Close()
		defer func() {
			_ = stream.Close()
		}()

		for {
			response, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				reader.Send(StreamChunk{Done: true})
				return
			}
			if err != nil {
				reader.Send(StreamChunk{Error: fmt.Errorf("%s stream recv: %w", p.id, err)})
				return
			}

			if len(response.Choices) == 0 {
				continue
			}
			choice := response.Choices[0]
			if choice.Delta.Content != "" {
				reader.Send(StreamChunk{Text: choice.Delta.Content})
			}
			if choice.FinishReason != "" {
				reader.Send(StreamChunk{Done: true})
				return
			}
		}
	}()

	return reader, nil
}

// ChatSync sends messages and waits for complete response.
func (p *CompatProvider) ChatSync(ctx context.Context, messages []Message, opts ChatOptions) (*Response, error) {
	resp, err := p.client.CreateChatCompletion(ctx, p.request(messages, opts, false))
	if err != nil {
		return nil, fmt.Errorf("%s chat: %w", p.id, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s returned no choices", p.id)
	}

	choice := resp.Choices[0]
	return &Response{
		Content:      choice.Message.Content,
		Model:        resp.Model,
		FinishReason: string(choice.FinishReason),
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// convertToOpenAIMessages converts generic messages to the OpenAI wire format.
func convertToOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		out[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}
	return out
}

// Name returns the provider id.
func (p *CompatProvider) Name() string {
	return p.id
}

// Models returns the built-in model ids for this provider.
func (p *CompatProvider) Models() []string {
	return knownModels(p.id)
}

// DefaultModel returns the default model for this provider.
func (p *CompatProvider) DefaultModel() string {
	return p.defaultModel
}

// BaseURL returns the API endpoint this provider talks to.
func (p *CompatProvider) BaseURL() string {
	return p.baseURL
}
