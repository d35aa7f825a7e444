package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAnthropicClient implements AnthropicClientInterface for testing.
type mockAnthropicClient struct {
	messageResponse *anthropic.Message
	messageErr      error
	capturedParams  anthropic.MessageNewParams
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	m.capturedParams = params
	if m.messageErr != nil {
		return nil, m.messageErr
	}
	return m.messageResponse, nil
}

func (m *mockAnthropicClient) CreateMessageStream(ctx context.Context, params anthropic.MessageNewParams) *ssestream.Stream[anthropic.MessageStreamEventUnion] {
	return nil
}

func textMessage(model, text string) *anthropic.Message {
	return &anthropic.Message{
		Model:      anthropic.Model(model),
		StopReason: "end_turn",
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: text},
		},
		Usage: anthropic.Usage{InputTokens: 10, OutputTokens: 8},
	}
}

func TestNewAnthropicProvider(t *testing.T) {
	t.Run("default model", func(t *testing.T) {
		p, err := NewAnthropicProvider("sk-ant-test", "")
		require.NoError(t, err)
		assert.Equal(t, "claude-sonnet-4-20250514", p.DefaultModel())
	})

	t.Run("catalog model accepted", func(t *testing.T) {
		p, err := NewAnthropicProvider("sk-ant-test", "claude-opus-4-1")
		require.NoError(t, err)
		assert.Equal(t, "claude-opus-4-1", p.DefaultModel())
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := NewAnthropicProvider("", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key is required")
	})
}

func TestAnthropicProvider_Identity(t *testing.T) {
	p := NewAnthropicProviderWithClient(&mockAnthropicClient{}, "")

	assert.Equal(t, "claude", p.Name())
	assert.Equal(t, []string{
		"claude-opus-4-20250514",
		"claude-sonnet-4-20250514",
		"claude-3-5-haiku-20241022",
	}, p.Models())

	var _ Provider = p
}

func TestAnthropicProvider_ConvertMessages(t *testing.T) {
	p := NewAnthropicProviderWithClient(&mockAnthropicClient{}, "")

	tests := []struct {
		name       string
		messages   []Message
		wantCount  int
		wantSystem string
	}{
		{"empty", nil, 0, ""},
		{"user only", []Message{NewUserMessage("Hello!")}, 1, ""},
		{
			"system is lifted out",
			[]Message{NewSystemMessage("Be brief."), NewUserMessage("Hello!")},
			1, "Be brief.",
		},
		{
			"conversation",
			[]Message{
				NewSystemMessage("Be brief."),
				NewUserMessage("Hello!"),
				NewAssistantMessage("Hi."),
				NewUserMessage("What is using my disk?"),
			},
			3, "Be brief.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, system := p.convertMessages(tt.messages)
			assert.Len(t, msgs, tt.wantCount)
			assert.Equal(t, tt.wantSystem, system)
		})
	}
}

func TestAnthropicProvider_ChatSync(t *testing.T) {
	client := &mockAnthropicClient{messageResponse: textMessage("claude-sonnet-4-20250514", "OK")}
	p := NewAnthropicProviderWithClient(client, "")

	resp, err := p.ChatSync(context.Background(), []Message{
		NewSystemMessage("You analyse disk usage."),
		NewUserMessage(ConnectionPrompt),
	}, ChatOptions{})
	require.NoError(t, err)

	assert.Equal(t, "OK", resp.Content)
	assert.Equal(t, "end_turn", resp.FinishReason)
	assert.Equal(t, 18, resp.Usage.TotalTokens)

	params := client.capturedParams
	assert.Equal(t, anthropic.Model("claude-sonnet-4-20250514"), params.Model)
	assert.Equal(t, int64(DefaultAnthropicMaxTokens), params.MaxTokens)
	require.Len(t, params.System, 1)
	assert.Equal(t, "You analyse disk usage.", params.System[0].Text)
}

func TestAnthropicProvider_ChatSync_Options(t *testing.T) {
	client := &mockAnthropicClient{messageResponse: textMessage("claude-3-5-haiku-20241022", "")}
	p := NewAnthropicProviderWithClient(client, "")

	resp, err := p.ChatSync(context.Background(), []Message{NewUserMessage("hi")}, ChatOptions{
		Model:       "claude-3-5-haiku-20241022",
		MaxTokens:   1000,
		Temperature: DefaultTemperature,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Content)

	params := client.capturedParams
	assert.Equal(t, anthropic.Model("claude-3-5-haiku-20241022"), params.Model)
	assert.Equal(t, int64(1000), params.MaxTokens)
	assert.InDelta(t, DefaultTemperature, params.Temperature.Value, 0.001)
}

func TestAnthropicProvider_ChatSync_Error(t *testing.T) {
	p := NewAnthropicProviderWithClient(&mockAnthropicClient{messageErr: errors.New("401")}, "")

	_, err := p.ChatSync(context.Background(), []Message{NewUserMessage("hi")}, ChatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "claude chat")
}

func TestAnthropicProvider_Chat_NoStream(t *testing.T) {
	p := NewAnthropicProviderWithClient(&mockAnthropicClient{}, "")

	sr, err := p.Chat(context.Background(), []Message{NewUserMessage("hi")}, ChatOptions{})
	require.NoError(t, err)

	_, err = sr.Collect()
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	client := &mockAnthropicClient{messageResponse: textMessage("m", "OK")}
	p := NewAnthropicProviderWithClient(client, "")

	require.NoError(t, Ping(context.Background(), p, "claude-3-5-haiku-20241022"))
	assert.Equal(t, anthropic.Model("claude-3-5-haiku-20241022"), client.capturedParams.Model)
	assert.Equal(t, int64(10), client.capturedParams.MaxTokens)

	client.messageErr = errors.New("invalid x-api-key")
	assert.Error(t, Ping(context.Background(), p, ""))
}
