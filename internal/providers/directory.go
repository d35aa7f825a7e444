// Package providers merges static AI provider metadata with model lists
// from the catalog cache, falling back to built-in tables per provider.
package providers

import (
	"context"
	"slices"

	"github.com/cleanos-ai/cleanos/internal/catalog"
	"github.com/cleanos-ai/cleanos/internal/models"
)

// ModelSource supplies catalog models. *catalog.Cache satisfies it.
type ModelSource interface {
	Models(ctx context.Context) []catalog.ModelDescriptor
}

// Directory answers provider queries. The zero value has no model source
// and always uses the fallback tables.
type Directory struct {
	src ModelSource
}

// NewDirectory creates a directory reading live models from src.
func NewDirectory(src ModelSource) *Directory {
	return &Directory{src: src}
}

// ProvidersWithModels returns one definition per known provider. A
// provider gets its live catalog models when the catalog has any for it,
// otherwise its fallback table. It never fails.
func (d *Directory) ProvidersWithModels(ctx context.Context) []models.ProviderDefinition {
	var live map[string][]catalog.ModelDescriptor
	if d != nil && d.src != nil {
		live = catalog.Group(d.src.Models(ctx))
	}

	out := make([]models.ProviderDefinition, 0, len(meta))
	for _, m := range meta {
		def := cloneMeta(m)
		if group := live[m.ID]; len(group) > 0 {
			def.Models = make([]models.ModelDefinition, len(group))
			for i, g := range group {
				def.Models[i] = catalog.ToModelDefinition(g)
			}
		} else {
			def.Models = FallbackModels(m.ID)
		}
		out = append(out, def)
	}
	return out
}

// Providers returns the static provider list with fallback models.
func Providers() []models.ProviderDefinition {
	out := make([]models.ProviderDefinition, 0, len(meta))
	for _, m := range meta {
		def := cloneMeta(m)
		def.Models = FallbackModels(m.ID)
		out = append(out, def)
	}
	return out
}

// FallbackModels returns the built-in models for a provider, or nil.
func FallbackModels(providerID string) []models.ModelDefinition {
	src := fallbackModels[providerID]
	if src == nil {
		return nil
	}
	out := make([]models.ModelDefinition, len(src))
	for i, m := range src {
		m.Capabilities = slices.Clone(m.Capabilities)
		out[i] = m
	}
	return out
}

// IDs returns the known provider ids in display order.
func IDs() []string {
	out := make([]string, len(meta))
	for i, m := range meta {
		out[i] = m.ID
	}
	return out
}

// Lookup returns the static definition for id, with fallback models.
func Lookup(id string) (models.ProviderDefinition, bool) {
	for _, m := range meta {
		if m.ID == id {
			def := cloneMeta(m)
			def.Models = FallbackModels(id)
			return def, true
		}
	}
	return models.ProviderDefinition{}, false
}

// DefaultModel returns the provider's default model id, or "".
func DefaultModel(id string) string {
	for _, m := range meta {
		if m.ID == id {
			return m.DefaultModel
		}
	}
	return ""
}

func cloneMeta(m models.ProviderDefinition) models.ProviderDefinition {
	m.AuthMethods = slices.Clone(m.AuthMethods)
	m.Models = nil
	return m
}
