package memory

import (
	"context"

	"github.com/samerkamel/aura-sub004/internal/domain/setting"
)

type settingRepository struct {
	s *Store
}

func NewSettingRepository(s *Store) setting.SettingRepository {
	return &settingRepository{s: s}
}

func (r *settingRepository) GetAll(_ context.Context) (map[string]setting.Setting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make(map[string]setting.Setting, len(r.s.settings))
	for k, v := range r.s.settings {
		result[k] = v
	}
	return result, nil
}

func (r *settingRepository) Upsert(_ context.Context, s setting.Setting) (setting.Setting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	s.UpdatedAt = r.s.now()
	r.s.settings[s.Key] = s
	return s, nil
}
