package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanos-ai/cleanos/internal/catalog"
)

type staticSource []catalog.ModelDescriptor

func (s staticSource) Models(context.Context) []catalog.ModelDescriptor { return s }

func TestProvidersWithModels_OneEntryPerProviderOnFetchFailure(t *testing.T) {
	cache := catalog.New(catalog.FetcherFunc(func(context.Context) (string, error) {
		return "", errors.New("offline")
	}))
	d := NewDirectory(cache)

	got := d.ProvidersWithModels(context.Background())
	require.Len(t, got, 4)
	for i, id := range []string{OpenAI, Gemini, Claude, Kimi} {
		assert.Equal(t, id, got[i].ID)
		assert.Equal(t, FallbackModels(id), got[i].Models)
	}
}

func TestProvidersWithModels_EmptyCatalogUsesFallback(t *testing.T) {
	d := NewDirectory(staticSource(nil))

	got := d.ProvidersWithModels(context.Background())
	require.Len(t, got, 4)
	openai := got[0]
	require.Len(t, openai.Models, 4)
	assert.Equal(t, "gpt-4o", openai.Models[0].ID)
}

func TestProvidersWithModels_MixesLiveAndFallback(t *testing.T) {
	d := NewDirectory(staticSource{
		{ID: "openai/gpt-5", Name: "GPT-5", Pricing: catalog.Pricing{Prompt: "0.00001", Completion: "0.00003"}},
		{ID: "anthropic/claude-opus-4", Name: "Claude Opus 4", Description: "Big"},
		{ID: "mistralai/mistral-large", Name: "Mistral"},
	})

	got := d.ProvidersWithModels(context.Background())
	require.Len(t, got, 4)

	byID := map[string][]string{}
	for _, p := range got {
		for _, m := range p.Models {
			byID[p.ID] = append(byID[p.ID], m.ID)
		}
	}
	assert.Equal(t, []string{"gpt-5"}, byID[OpenAI])
	assert.Equal(t, []string{"claude-opus-4"}, byID[Claude])
	assert.Equal(t, []string{"gemini-2.0-flash", "gemini-1.5-pro"}, byID[Gemini])
	assert.Equal(t, []string{"moonshot-v1-128k", "moonshot-v1-32k"}, byID[Kimi])

	assert.Equal(t, "Big", got[2].Models[0].Description)
	assert.Equal(t, "GPT-5", got[0].Models[0].Description)
}

func TestProvidersWithModels_NilDirectory(t *testing.T) {
	var d *Directory
	got := d.ProvidersWithModels(context.Background())
	assert.Len(t, got, 4)
}

func TestProviders_Static(t *testing.T) {
	got := Providers()
	require.Len(t, got, 4)
	assert.Equal(t, []string{"openai", "gemini", "claude", "kimi"}, IDs())

	kimi := got[3]
	assert.False(t, kimi.Capabilities.Vision)
	assert.False(t, kimi.Capabilities.Tools)
	assert.True(t, kimi.Capabilities.Streaming)
	assert.Nil(t, kimi.Models[0].CostPer1KInput)

	require.Len(t, got[0].AuthMethods, 1)
	assert.Equal(t, "sk-...", got[0].AuthMethods[0].KeyPlaceholder)
}

func TestFallbackModels(t *testing.T) {
	assert.Len(t, FallbackModels(OpenAI), 4)
	assert.Len(t, FallbackModels(Claude), 3)
	assert.Len(t, FallbackModels(Gemini), 2)
	assert.Len(t, FallbackModels(Kimi), 2)
	assert.Nil(t, FallbackModels("mistral"))
	assert.Equal(t, 2097152, FallbackModels(Gemini)[1].MaxTokens)
}

func TestFallbackModels_ReturnsCopies(t *testing.T) {
	first := FallbackModels(OpenAI)
	first[0].ID = "mutated"
	first[0].Capabilities[0] = "mutated"

	again := FallbackModels(OpenAI)
	assert.Equal(t, "gpt-4o", again[0].ID)
	assert.Equal(t, "chat", again[0].Capabilities[0])
}

func TestLookupAndDefaultModel(t *testing.T) {
	def, ok := Lookup(Claude)
	require.True(t, ok)
	assert.Equal(t, "Anthropic Claude", def.Name)
	assert.Len(t, def.Models, 3)

	_, ok = Lookup("nope")
	assert.False(t, ok)

	assert.Equal(t, "gpt-4o-mini", DefaultModel(OpenAI))
	assert.Equal(t, "", DefaultModel("nope"))
}
