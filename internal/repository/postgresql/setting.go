package postgresql

import (
	"context"
	"fmt"

	"github.com/samerkamel/aura-sub004/internal/domain/setting"
	"github.com/samerkamel/aura-sub004/internal/pkg/database"
)

type settingRepository struct {
	db *database.DB
}

// GetAll implements setting.SettingRepository.
func (r *settingRepository) GetAll(ctx context.Context) (map[string]setting.Setting, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT key, value, updated_by, updated_at FROM attendance_settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]setting.Setting)
	for rows.Next() {
		var s setting.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedBy, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings[s.Key] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settings: %w", err)
	}

	return settings, nil
}

// Upsert implements setting.SettingRepository.
func (r *settingRepository) Upsert(ctx context.Context, s setting.Setting) (setting.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_settings (key, value, updated_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING updated_at
	`

	if err := q.QueryRow(ctx, query, s.Key, s.Value, s.UpdatedBy).Scan(&s.UpdatedAt); err != nil {
		return setting.Setting{}, fmt.Errorf("failed to upsert setting: %w", err)
	}

	return s, nil
}

func NewSettingRepository(db *database.DB) setting.SettingRepository {
	return &settingRepository{db: db}
}
