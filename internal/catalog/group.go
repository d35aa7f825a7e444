package catalog

import (
	"strings"

	"github.com/cleanos-ai/cleanos/internal/models"
)

// ProviderPrefixes maps a provider id to the catalog id prefix of its models.
var ProviderPrefixes = map[string]string{
	"openai": "openai/",
	"claude": "anthropic/",
	"gemini": "google/",
	"kimi":   "moonshot/",
}

// ByProvider returns the models whose id starts with the provider's prefix,
// in catalog order. Unknown providers get nothing.
func ByProvider(all []ModelDescriptor, providerID string) []ModelDescriptor {
	prefix, ok := ProviderPrefixes[providerID]
	if !ok {
		return nil
	}
	var out []ModelDescriptor
	for _, m := range all {
		if strings.HasPrefix(m.ID, prefix) {
			out = append(out, m)
		}
	}
	return out
}

// Group buckets models by provider id. Models with no known prefix are
// left out.
func Group(all []ModelDescriptor) map[string][]ModelDescriptor {
	out := make(map[string][]ModelDescriptor, len(ProviderPrefixes))
	for _, m := range all {
		for id, prefix := range ProviderPrefixes {
			if strings.HasPrefix(m.ID, prefix) {
				out[id] = append(out[id], m)
				break
			}
		}
	}
	return out
}

// Latest returns the first model whose id contains family.
func Latest(all []ModelDescriptor, family string) (ModelDescriptor, bool) {
	for _, m := range all {
		if strings.Contains(m.ID, family) {
			return m, true
		}
	}
	return ModelDescriptor{}, false
}

// LocalID strips the vendor segment: "openai/gpt-4o" becomes "gpt-4o".
// Ids without a slash are returned unchanged.
func LocalID(id string) string {
	if i := strings.Index(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// ToModelDefinition converts a catalog entry to the model shape the
// provider directory publishes.
func ToModelDefinition(m ModelDescriptor) models.ModelDefinition {
	desc := m.Description
	if desc == "" {
		desc = m.Name
	}
	in := PricePer1K(m.Pricing.Prompt)
	out := PricePer1K(m.Pricing.Completion)
	return models.ModelDefinition{
		ID:              LocalID(m.ID),
		Name:            m.Name,
		Description:     desc,
		MaxTokens:       m.ContextLength,
		CostPer1KInput:  &in,
		CostPer1KOutput: &out,
		Capabilities:    InferCapabilities(m),
	}
}
