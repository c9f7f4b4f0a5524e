package rule

import "context"

// RuleConfigRepository stores singleton rules keyed by rule type. Upsert
// replaces the existing configuration of that type.
type RuleConfigRepository interface {
	Get(ctx context.Context, ruleType RuleType) (RuleConfig, error)
	Upsert(ctx context.Context, cfg RuleConfig) (RuleConfig, error)
	Delete(ctx context.Context, ruleType RuleType) error
}

type LatePenaltyTierRepository interface {
	// List returns tiers ordered by threshold, then creation time.
	List(ctx context.Context) ([]LatePenaltyTier, error)
	Create(ctx context.Context, tier LatePenaltyTier) (LatePenaltyTier, error)
	Delete(ctx context.Context, id string) error
}
