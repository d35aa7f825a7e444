package catalog

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Defaults applied when a catalog field is missing or has the wrong type.
const (
	DefaultPrice     = "0"
	DefaultModality  = "text"
	DefaultTokenizer = "unknown"
)

// Pricing holds per-token prices as the decimal strings the catalog uses.
type Pricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// Architecture describes a model's input modality and tokenizer.
type Architecture struct {
	Modality  string `json:"modality"`
	Tokenizer string `json:"tokenizer"`
}

// ModelDescriptor is one entry of the remote model catalog.
type ModelDescriptor struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Pricing       Pricing      `json:"pricing"`
	ContextLength int          `json:"context_length"`
	Architecture  Architecture `json:"architecture"`
}

// Parse decodes a catalog payload of the form {"data": [...]}.
// Parsing never fails: a payload that is not JSON, or has no data array,
// yields zero models, and each entry field that is missing or of the wrong
// type gets its default. Entries that are not objects are skipped.
func Parse(raw string) []ModelDescriptor {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil
	}
	data, ok := doc["data"]
	if !ok {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}

	out := make([]ModelDescriptor, 0, len(entries))
	for _, e := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(e, &fields); err != nil || fields == nil {
			continue
		}
		out = append(out, parseEntry(fields))
	}
	return out
}

func parseEntry(f map[string]json.RawMessage) ModelDescriptor {
	m := ModelDescriptor{
		ID:            stringField(f, "id", ""),
		Name:          stringField(f, "name", ""),
		Description:   stringField(f, "description", ""),
		ContextLength: intField(f, "context_length"),
		Pricing:       Pricing{Prompt: DefaultPrice, Completion: DefaultPrice},
		Architecture:  Architecture{Modality: DefaultModality, Tokenizer: DefaultTokenizer},
	}
	if p := objectField(f, "pricing"); p != nil {
		m.Pricing.Prompt = priceField(p, "prompt")
		m.Pricing.Completion = priceField(p, "completion")
	}
	if a := objectField(f, "architecture"); a != nil {
		m.Architecture.Modality = stringField(a, "modality", DefaultModality)
		m.Architecture.Tokenizer = stringField(a, "tokenizer", DefaultTokenizer)
	}
	return m
}

func stringField(f map[string]json.RawMessage, key, def string) string {
	raw, ok := f[key]
	if !ok || isNull(raw) {
		return def
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return def
	}
	return s
}

// priceField accepts a decimal string or a bare JSON number. An empty
// string counts as missing.
func priceField(f map[string]json.RawMessage, key string) string {
	raw, ok := f[key]
	if !ok || isNull(raw) {
		return DefaultPrice
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return DefaultPrice
		}
		return s
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err == nil {
		return n.String()
	}
	return DefaultPrice
}

func intField(f map[string]json.RawMessage, key string) int {
	raw, ok := f[key]
	if !ok {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil || n < 0 {
		return 0
	}
	if n >= math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func objectField(f map[string]json.RawMessage, key string) map[string]json.RawMessage {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

// PricePer1K converts a per-token price string to a per-1000-token price.
// Non-numeric input yields 0.
func PricePer1K(price string) float64 {
	price = strings.TrimSpace(price)
	v, err := strconv.ParseFloat(price, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	// Shifting the decimal exponent keeps "0.000005" at exactly 0.005.
	if !strings.ContainsAny(price, "eEpPxX_") {
		if shifted, err := strconv.ParseFloat(price+"e3", 64); err == nil {
			return shifted
		}
	}
	return v * 1000
}

// Capability names inferred from catalog metadata.
const (
	CapabilityChat   = "chat"
	CapabilityVision = "vision"
	CapabilityJSON   = "json"
)

// InferCapabilities derives capabilities from the architecture. Chat and
// JSON are always present; vision requires an image or multimodal
// modality. Tools and streaming are never inferred.
func InferCapabilities(m ModelDescriptor) []string {
	caps := []string{CapabilityChat}
	mod := strings.ToLower(m.Architecture.Modality)
	if strings.Contains(mod, "image") || strings.Contains(mod, "multimodal") {
		caps = append(caps, CapabilityVision)
	}
	return append(caps, CapabilityJSON)
}
