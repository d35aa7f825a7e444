package backend

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/llm"
	"github.com/cleanos-ai/cleanos/internal/log"
	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/providers"
)

// maxAnalyzeFiles caps one AnalyzeFiles request.
const maxAnalyzeFiles = 50

// resolveKey returns the stored key for provider, then the environment key.
func (b *Backend) resolveKey(provider string) string {
	if b.db != nil {
		if k, err := b.db.GetAPIKey(provider); err == nil && k != "" {
			return k
		} else if err != nil {
			log.Debugf("read stored key for %s: %v", provider, err)
		}
	}
	return b.cfg.LLM.KeyFor(provider)
}

// provider builds the llm.Provider for id using its resolved key.
func (b *Backend) provider(op, id, model string) (llm.Provider, error) {
	if _, ok := providers.Lookup(id); !ok {
		return nil, gateway.Errorf(op, "Unknown provider: %s", id)
	}
	key := b.resolveKey(id)
	if key == "" {
		return nil, gateway.Errorf(op, "No API key configured for %s", id)
	}
	p, err := b.providers(id, key, model)
	if err != nil {
		return nil, gateway.Wrap(op, err)
	}
	return p, nil
}

// Chat sends one user message, with optional history, and returns the reply.
func (b *Backend) Chat(ctx context.Context, req gateway.ChatRequest) (string, error) {
	const op = "chat_with_ai"

	if strings.TrimSpace(req.Message) == "" {
		return "", gateway.Errorf(op, "Message is empty")
	}
	p, err := b.provider(op, req.Provider, req.Model)
	if err != nil {
		return "", err
	}

	resp, err := p.ChatSync(ctx, chatMessages(req), llm.ChatOptions{
		Model:       req.Model,
		Temperature: llm.DefaultTemperature,
	})
	if err != nil {
		return "", gateway.Wrap(op, err)
	}
	return resp.Content, nil
}

// ChatStream is Chat with the reply delivered piece by piece to onText as
// the provider produces it. The full reply is also returned.
func (b *Backend) ChatStream(ctx context.Context, req gateway.ChatRequest, onText func(string)) (string, error) {
	const op = "chat_with_ai"

	if strings.TrimSpace(req.Message) == "" {
		return "", gateway.Errorf(op, "Message is empty")
	}
	p, err := b.provider(op, req.Provider, req.Model)
	if err != nil {
		return "", err
	}

	stream, err := p.Chat(ctx, chatMessages(req), llm.ChatOptions{
		Model:       req.Model,
		Temperature: llm.DefaultTemperature,
		Stream:      true,
	})
	if err != nil {
		return "", gateway.Wrap(op, err)
	}

	reply, err := stream.CollectContext(ctx, func(chunk llm.StreamChunk) {
		if chunk.Text != "" && onText != nil {
			onText(chunk.Text)
		}
	})
	if err != nil {
		return reply, gateway.Wrap(op, err)
	}
	return reply, nil
}

func chatMessages(req gateway.ChatRequest) []llm.Message {
	msgs := make([]llm.Message, 0, len(req.History)+2)
	msgs = append(msgs, llm.NewSystemMessage(chatSystemPrompt))
	for _, t := range req.History {
		msgs = append(msgs, llm.Message{Role: t.Role, Content: t.Content})
	}
	return append(msgs, llm.NewUserMessage(req.Message))
}

// TestConnection checks that a provider accepts a key. An empty apiKey
// tests the stored or environment key.
func (b *Backend) TestConnection(ctx context.Context, provider, apiKey, model string) error {
	const op = "test_ai_connection"

	if _, ok := providers.Lookup(provider); !ok {
		return gateway.Errorf(op, "Unknown provider: %s", provider)
	}
	if apiKey == "" {
		apiKey = b.resolveKey(provider)
	}
	if apiKey == "" {
		return gateway.Errorf(op, "No API key configured for %s", provider)
	}

	p, err := b.providers(provider, apiKey, model)
	if err != nil {
		return gateway.Wrap(op, err)
	}
	if err := llm.Ping(ctx, p, model); err != nil {
		return gateway.Wrap(op, err)
	}
	return nil
}

// AnalyzeFiles asks provider to classify each path. Paths that cannot be
// read or whose reply cannot be parsed are returned without an analysis.
func (b *Backend) AnalyzeFiles(ctx context.Context, provider string, paths []string) ([]models.FileRecord, error) {
	const op = "analyze_files_with_ai"

	if len(paths) > maxAnalyzeFiles {
		return nil, gateway.Errorf(op, "Too many files: %d (max %d)", len(paths), maxAnalyzeFiles)
	}
	p, err := b.provider(op, provider, "")
	if err != nil {
		return nil, err
	}

	out := make([]models.FileRecord, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, gateway.Wrap(op, err)
		}
		info, err := os.Stat(b.ExpandHome(path))
		if err != nil {
			log.Debugf("analyze %s: %v", path, err)
			continue
		}
		rec := recordFor(b.ExpandHome(path), info)

		resp, err := p.ChatSync(ctx, []llm.Message{llm.NewUserMessage(fileAnalysisPrompt(rec))}, llm.ChatOptions{
			Temperature: llm.DefaultTemperature,
		})
		if err != nil {
			return nil, gateway.Wrap(op, fmt.Errorf("analyze %s: %w", rec.Name, err))
		}
		if a, err := parseFileAnalysis(resp.Content); err == nil {
			rec.AIAnalysis = a
			score := a.Importance
			rec.ImportanceScore = &score
		} else {
			log.Debugf("analyze %s: %v", path, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
