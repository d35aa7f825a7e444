package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProvider(t *testing.T, id, baseURL string) *CompatProvider {
	t.Helper()
	p, err := newCompatProvider(id, "test-key", "", baseURL)
	require.NoError(t, err)
	return p
}

func writeSSE(t *testing.T, w http.ResponseWriter, chunks []string) {
	t.Helper()
	w.Header().Set("Content-Type", "text/event-stream")
	flusher, ok := w.(http.Flusher)
	require.True(t, ok)

	for i, chunk := range chunks {
		resp := openai.ChatCompletionStreamResponse{
			Choices: []openai.ChatCompletionStreamChoice{
				{Delta: openai.ChatCompletionStreamChoiceDelta{Content: chunk}},
			},
		}
		if i == len(chunks)-1 {
			resp.Choices[0].FinishReason = "stop"
		}
		data, _ := json.Marshal(resp)
		_, _ = w.Write([]byte("data: "))
		_, _ = w.Write(data)
		_, _ = w.Write([]byte("\n\n"))
		flusher.Flush()
	}
	_, _ = w.Write([]byte("data: [DONE]\n\n"))
	flusher.Flush()
}

func TestNewCompatProvider(t *testing.T) {
	tests := []struct {
		id           string
		baseURL      string
		defaultModel string
	}{
		{"openai", OpenAIBaseURL, "gpt-4o-mini"},
		{"gemini", GeminiBaseURL, "gemini-2.0-flash"},
		{"kimi", KimiBaseURL, "moonshot-v1-128k"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p, err := NewCompatProvider(tt.id, "key", "")
			require.NoError(t, err)
			assert.Equal(t, tt.id, p.Name())
			assert.Equal(t, tt.baseURL, p.BaseURL())
			assert.Equal(t, tt.defaultModel, p.DefaultModel())
			assert.NotEmpty(t, p.Models())
		})
	}

	_, err := NewCompatProvider("claude", "key", "")
	assert.Error(t, err)

	_, err = NewCompatProvider("openai", "", "")
	assert.Error(t, err)
}

func TestHeaderTransport(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer k")

	resp, err := NewHTTPClient().Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, AppReferer, got.Get(RefererHeader))
	assert.Equal(t, AppTitle, got.Get(TitleHeader))
	assert.Equal(t, "Bearer k", got.Get("Authorization"))
	assert.Empty(t, req.Header.Get(TitleHeader), "caller's request is untouched")
}

func TestCompatProvider_ChatSync(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "chat/completions")
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "moonshot-v1-128k", req.Model)
		assert.Equal(t, 100, req.MaxTokens)
		assert.InDelta(t, DefaultTemperature, req.Temperature, 0.01)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Model: "moonshot-v1-128k",
			Choices: []openai.ChatCompletionChoice{{
				Message:      openai.ChatCompletionMessage{Role: "assistant", Content: "OK"},
				FinishReason: "stop",
			}},
			Usage: openai.Usage{PromptTokens: 10, CompletionTokens: 1, TotalTokens: 11},
		})
	}))
	defer server.Close()

	p := createTestProvider(t, "kimi", server.URL)
	resp, err := p.ChatSync(context.Background(), []Message{
		NewSystemMessage("Be brief."),
		NewUserMessage(ConnectionPrompt),
	}, ChatOptions{MaxTokens: 100, Temperature: DefaultTemperature})

	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 11, resp.Usage.TotalTokens)
}

func TestCompatProvider_ChatSync_Errors(t *testing.T) {
	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{})
		}))
		defer server.Close()

		_, err := createTestProvider(t, "openai", server.URL).
			ChatSync(context.Background(), []Message{NewUserMessage("x")}, ChatOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no choices")
	})

	t.Run("unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error": {"message": "Invalid API key", "type": "invalid_request_error"}}`))
		}))
		defer server.Close()

		err := Ping(context.Background(), createTestProvider(t, "gemini", server.URL), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gemini chat")
	})
}

func TestCompatProvider_Chat_Streaming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)
		writeSSE(t, w, []string{"Free ", "12 GB", "."})
	}))
	defer server.Close()

	reader, err := createTestProvider(t, "openai", server.URL).
		Chat(context.Background(), []Message{NewUserMessage("How much can I free?")}, ChatOptions{})
	require.NoError(t, err)

	var seen int
	result, err := reader.CollectWithCallback(func(StreamChunk) { seen++ })
	require.NoError(t, err)
	assert.Equal(t, "Free 12 GB.", result)
	assert.GreaterOrEqual(t, seen, 3)
}

func TestCompatProvider_Chat_StreamCreateError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "boom"}}`))
	}))
	defer server.Close()

	_, err := createTestProvider(t, "openai", server.URL).
		Chat(context.Background(), []Message{NewUserMessage("x")}, ChatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai stream")
}

func TestConvertToOpenAIMessages(t *testing.T) {
	msgs := convertToOpenAIMessages([]Message{
		NewSystemMessage("s"),
		NewUserMessage("u"),
		NewAssistantMessage("a"),
	})
	require.Len(t, msgs, 3)
	assert.Equal(t, []string{"system", "user", "assistant"}, []string{msgs[0].Role, msgs[1].Role, msgs[2].Role})
	assert.Equal(t, "a", msgs[2].Content)
}
