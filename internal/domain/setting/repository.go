package setting

import "context"

type SettingRepository interface {
	// GetAll returns every stored override keyed by setting key.
	GetAll(ctx context.Context) (map[string]Setting, error)
	Upsert(ctx context.Context, s Setting) (Setting, error)
}
