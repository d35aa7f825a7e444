package backend

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cleanos-ai/cleanos/internal/models"
)

// chatSystemPrompt frames free-form chat.
const chatSystemPrompt = `You are CleanOS, an assistant that helps people understand and reclaim disk space on their Linux machine.
Be concise. Never suggest deleting a path without saying what it contains and how risky it is.`

const fileAnalysisTemplate = `Analyze this file and respond with ONLY valid JSON (no markdown, no code blocks):
File: %s
Path: %s
Size: %d bytes
Extension: %s
Is Directory: %t

Respond with this exact JSON structure:
{"category": "<document|code|media|archive|cache|config|log|temp|other>", "importance_score": <0.0-1.0>, "recommendation": "<keep|review|delete|move>", "safe_to_delete": <true|false>, "confidence": <0.0-1.0>, "suggested_location": "<directory or empty>", "reason": "<brief explanation>"}`

func fileAnalysisPrompt(f models.FileRecord) string {
	ext := f.Extension
	if ext == "" {
		ext = "none"
	}
	return fmt.Sprintf(fileAnalysisTemplate, f.Name, f.Path, f.Size, ext, f.IsDirectory)
}

// fileAnalysisReply mirrors the JSON asked for by fileAnalysisPrompt.
// Pointers distinguish absent fields from zero values.
type fileAnalysisReply struct {
	Category          *string  `json:"category"`
	ImportanceScore   *float64 `json:"importance_score"`
	Recommendation    *string  `json:"recommendation"`
	SafeToDelete      *bool    `json:"safe_to_delete"`
	Confidence        *float64 `json:"confidence"`
	SuggestedLocation string   `json:"suggested_location"`
	Reason            *string  `json:"reason"`
}

// aiCategories maps the model's vocabulary onto file categories.
var aiCategories = map[string]models.FileCategory{
	"document": models.CategoryDocument,
	"code":     models.CategoryCode,
	"media":    models.CategoryMedia,
	"archive":  models.CategoryArchive,
	"cache":    models.CategorySystem,
	"config":   models.CategorySystem,
	"log":      models.CategorySystem,
	"temp":     models.CategorySystem,
	"system":   models.CategorySystem,
}

// parseFileAnalysis decodes a reply, tolerating code fences. Missing
// fields fall back to other/0.5/review.
func parseFileAnalysis(reply string) (*models.AIAnalysis, error) {
	var r fileAnalysisReply
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &r); err != nil {
		return nil, fmt.Errorf("parse AI response: %w", err)
	}

	a := &models.AIAnalysis{
		Category:          models.CategoryOther,
		Importance:        0.5,
		Action:            models.ActionReview,
		Confidence:        0.5,
		SuggestedLocation: r.SuggestedLocation,
		Summary:           "Unable to determine",
	}
	if r.Category != nil {
		if c, ok := aiCategories[strings.ToLower(*r.Category)]; ok {
			a.Category = c
		}
	}
	if r.ImportanceScore != nil {
		a.Importance = clamp01(*r.ImportanceScore)
	}
	if r.Recommendation != nil {
		switch act := models.FileAction(strings.ToLower(*r.Recommendation)); act {
		case models.ActionKeep, models.ActionReview, models.ActionDelete, models.ActionMove:
			a.Action = act
		}
	}
	// A delete the model itself calls unsafe is downgraded to review.
	if a.Action == models.ActionDelete && r.SafeToDelete != nil && !*r.SafeToDelete {
		a.Action = models.ActionReview
	}
	if r.Confidence != nil {
		a.Confidence = clamp01(*r.Confidence)
	}
	if r.Reason != nil && *r.Reason != "" {
		a.Summary = *r.Reason
	}
	return a, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
