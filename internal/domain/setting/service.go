package setting

import "context"

type SettingService interface {
	// Current merges stored overrides over the process defaults.
	Current(ctx context.Context) (Settings, error)
	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
