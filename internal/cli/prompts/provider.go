// Package prompts holds the interactive forms used by CLI commands when
// a required argument is missing.
package prompts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/cleanos-ai/cleanos/internal/models"
)

// BuildProviderOptions creates huh options for provider definitions.
func BuildProviderOptions(defs []models.ProviderDefinition) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(defs))
	for _, d := range defs {
		label := d.Name
		if d.Description != "" {
			label += " - " + d.Description
		}
		options = append(options, huh.NewOption(label, d.ID))
	}
	return options
}

// KeyPlaceholder returns the placeholder of def's API key auth method.
func KeyPlaceholder(def models.ProviderDefinition) string {
	for _, m := range def.AuthMethods {
		if m.Type == models.AuthAPI && m.KeyPlaceholder != "" {
			return m.KeyPlaceholder
		}
	}
	return "API key"
}

// KeyHelp returns where to obtain a key for def, or "".
func KeyHelp(def models.ProviderDefinition) string {
	for _, m := range def.AuthMethods {
		if m.Type == models.AuthAPI && m.HelpURL != "" {
			return "Get a key at " + m.HelpURL
		}
	}
	return ""
}

// ValidateKey rejects blank keys and keys containing whitespace.
func ValidateKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("key is empty")
	}
	if strings.ContainsAny(key, " \t\n") {
		return fmt.Errorf("key must not contain whitespace")
	}
	return nil
}

// RunProviderSelector asks which provider to configure.
func RunProviderSelector(defs []models.ProviderDefinition) (string, error) {
	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select an AI provider").
				Options(BuildProviderOptions(defs)...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}

// RunKeyInput asks for def's API key without echoing it.
func RunKeyInput(def models.ProviderDefinition) (string, error) {
	var key string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(def.Name+" API key").
				Description(KeyHelp(def)).
				Placeholder(KeyPlaceholder(def)).
				EchoMode(huh.EchoModePassword).
				Validate(ValidateKey).
				Value(&key),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}

// Confirm asks a yes/no question, defaulting to no.
func Confirm(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
