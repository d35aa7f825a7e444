package backend

import (
	"context"

	"github.com/cleanos-ai/cleanos/internal/gateway"
)

func (b *Backend) requireDB(op string) error {
	if b.db == nil {
		return gateway.Errorf(op, "No database configured")
	}
	return nil
}

// StoreAPIKey saves a provider key, replacing any previous one.
func (b *Backend) StoreAPIKey(ctx context.Context, provider, key string) error {
	const op = "store_api_key"
	if err := b.requireDB(op); err != nil {
		return err
	}
	return gateway.Wrap(op, b.db.StoreAPIKey(provider, key))
}

// APIKey returns the stored key for provider, or "".
func (b *Backend) APIKey(ctx context.Context, provider string) (string, error) {
	const op = "get_api_key"
	if err := b.requireDB(op); err != nil {
		return "", err
	}
	k, err := b.db.GetAPIKey(provider)
	return k, gateway.Wrap(op, err)
}

// DeleteAPIKey removes a stored key.
func (b *Backend) DeleteAPIKey(ctx context.Context, provider string) error {
	const op = "delete_api_key"
	if err := b.requireDB(op); err != nil {
		return err
	}
	return gateway.Wrap(op, b.db.DeleteAPIKey(provider))
}

// HasAPIKey reports whether a usable key exists for provider, stored or
// from the environment.
func (b *Backend) HasAPIKey(ctx context.Context, provider string) (bool, error) {
	if b.cfg.LLM.KeyFor(provider) != "" {
		return true, nil
	}
	const op = "has_api_key"
	if err := b.requireDB(op); err != nil {
		return false, err
	}
	ok, err := b.db.HasAPIKey(provider)
	return ok, gateway.Wrap(op, err)
}

// Setting returns a stored setting and whether it exists.
func (b *Backend) Setting(ctx context.Context, key string) (string, bool, error) {
	const op = "get_setting"
	if err := b.requireDB(op); err != nil {
		return "", false, err
	}
	v, ok, err := b.db.LookupSetting(key)
	return v, ok, gateway.Wrap(op, err)
}

// SetSetting stores a setting.
func (b *Backend) SetSetting(ctx context.Context, key, value string) error {
	const op = "set_setting"
	if err := b.requireDB(op); err != nil {
		return err
	}
	return gateway.Wrap(op, b.db.SetSetting(key, value))
}
