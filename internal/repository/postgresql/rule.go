package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/samerkamel/aura-sub004/internal/domain/rule"
	"github.com/samerkamel/aura-sub004/internal/pkg/database"
)

type ruleConfigRepository struct {
	db *database.DB
}

// Get implements rule.RuleConfigRepository.
func (r *ruleConfigRepository) Get(ctx context.Context, ruleType rule.RuleType) (rule.RuleConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT rule_type, config, updated_by, updated_at
		FROM attendance_rule_configs
		WHERE rule_type = $1
	`

	var cfg rule.RuleConfig
	err := q.QueryRow(ctx, query, ruleType).Scan(&cfg.RuleType, &cfg.Config, &cfg.UpdatedBy, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rule.RuleConfig{}, rule.ErrRuleNotConfigured
		}
		return rule.RuleConfig{}, fmt.Errorf("failed to get rule config: %w", err)
	}

	return cfg, nil
}

// Upsert implements rule.RuleConfigRepository.
func (r *ruleConfigRepository) Upsert(ctx context.Context, cfg rule.RuleConfig) (rule.RuleConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_rule_configs (rule_type, config, updated_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (rule_type) DO UPDATE SET
			config = EXCLUDED.config,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING updated_at
	`

	if err := q.QueryRow(ctx, query, cfg.RuleType, cfg.Config, cfg.UpdatedBy).Scan(&cfg.UpdatedAt); err != nil {
		return rule.RuleConfig{}, fmt.Errorf("failed to upsert rule config: %w", err)
	}

	return cfg, nil
}

// Delete implements rule.RuleConfigRepository.
func (r *ruleConfigRepository) Delete(ctx context.Context, ruleType rule.RuleType) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendance_rule_configs WHERE rule_type = $1`, ruleType)
	if err != nil {
		return fmt.Errorf("failed to delete rule config: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return rule.ErrRuleNotConfigured
	}

	return nil
}

func NewRuleConfigRepository(db *database.DB) rule.RuleConfigRepository {
	return &ruleConfigRepository{db: db}
}

type latePenaltyTierRepository struct {
	db *database.DB
}

// List implements rule.LatePenaltyTierRepository.
func (r *latePenaltyTierRepository) List(ctx context.Context) ([]rule.LatePenaltyTier, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, late_minutes, penalty_minutes, created_by, created_at
		FROM late_penalty_tiers
		ORDER BY late_minutes, created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list late penalty tiers: %w", err)
	}
	defer rows.Close()

	var tiers []rule.LatePenaltyTier
	for rows.Next() {
		var t rule.LatePenaltyTier
		if err := rows.Scan(&t.ID, &t.LateMinutes, &t.PenaltyMinutes, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan late penalty tier: %w", err)
		}
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate late penalty tiers: %w", err)
	}

	return tiers, nil
}

// Create implements rule.LatePenaltyTierRepository.
func (r *latePenaltyTierRepository) Create(ctx context.Context, tier rule.LatePenaltyTier) (rule.LatePenaltyTier, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO late_penalty_tiers (late_minutes, penalty_minutes, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, tier.LateMinutes, tier.PenaltyMinutes, tier.CreatedBy).Scan(&tier.ID, &tier.CreatedAt)
	if err != nil {
		return rule.LatePenaltyTier{}, fmt.Errorf("failed to create late penalty tier: %w", err)
	}

	return tier, nil
}

// Delete implements rule.LatePenaltyTierRepository.
func (r *latePenaltyTierRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM late_penalty_tiers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete late penalty tier: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return rule.ErrLatePenaltyTierNotFound
	}

	return nil
}

func NewLatePenaltyTierRepository(db *database.DB) rule.LatePenaltyTierRepository {
	return &latePenaltyTierRepository{db: db}
}
