package models

// AuthType is the kind of credential a provider accepts.
type AuthType string

const (
	AuthAPI   AuthType = "api"
	AuthOAuth AuthType = "oauth"
	AuthToken AuthType = "token"
)

// AuthMethod describes one way to authenticate with a provider.
type AuthMethod struct {
	Type           AuthType `json:"type"`
	Label          string   `json:"label"`
	Description    string   `json:"description,omitempty"`
	KeyPlaceholder string   `json:"key_placeholder,omitempty"`
	HelpURL        string   `json:"help_url,omitempty"`
}

// ModelDefinition is a model in the form the UI displays it.
type ModelDefinition struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	MaxTokens       int      `json:"max_tokens"`
	CostPer1KInput  *float64 `json:"cost_per_1k_input,omitempty"`
	CostPer1KOutput *float64 `json:"cost_per_1k_output,omitempty"`
	Capabilities    []string `json:"capabilities"`
}

// HasCapability reports whether the model lists capability c.
func (m ModelDefinition) HasCapability(c string) bool {
	for _, have := range m.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// ProviderCapabilities is the static feature set of a provider.
type ProviderCapabilities struct {
	Chat      bool `json:"chat"`
	Vision    bool `json:"vision"`
	JSON      bool `json:"json"`
	Streaming bool `json:"streaming"`
	Tools     bool `json:"tools"`
}

// ProviderDefinition combines static provider metadata with a model list.
type ProviderDefinition struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	AuthMethods  []AuthMethod         `json:"auth_methods"`
	DefaultModel string               `json:"default_model"`
	Models       []ModelDefinition    `json:"models"`
	Capabilities ProviderCapabilities `json:"capabilities"`
}

// ProviderStatus is the connectivity state of one provider.
type ProviderStatus struct {
	ID        string `json:"id"`
	Connected bool   `json:"connected"`
	Model     string `json:"model"`
	Error     string `json:"error,omitempty"`
}
