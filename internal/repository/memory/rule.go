package memory

import (
	"context"
	"sort"

	"github.com/samerkamel/aura-sub004/internal/domain/rule"
)

type ruleConfigRepository struct {
	s *Store
}

func NewRuleConfigRepository(s *Store) rule.RuleConfigRepository {
	return &ruleConfigRepository{s: s}
}

func (r *ruleConfigRepository) Get(_ context.Context, ruleType rule.RuleType) (rule.RuleConfig, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	cfg, ok := r.s.ruleConfigs[ruleType]
	if !ok {
		return rule.RuleConfig{}, rule.ErrRuleNotConfigured
	}
	return cfg, nil
}

func (r *ruleConfigRepository) Upsert(_ context.Context, cfg rule.RuleConfig) (rule.RuleConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cfg.Config = append([]byte(nil), cfg.Config...)
	cfg.UpdatedAt = r.s.now()
	r.s.ruleConfigs[cfg.RuleType] = cfg
	return cfg, nil
}

func (r *ruleConfigRepository) Delete(_ context.Context, ruleType rule.RuleType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.ruleConfigs[ruleType]; !ok {
		return rule.ErrRuleNotConfigured
	}
	delete(r.s.ruleConfigs, ruleType)
	return nil
}

type latePenaltyTierRepository struct {
	s *Store
}

func NewLatePenaltyTierRepository(s *Store) rule.LatePenaltyTierRepository {
	return &latePenaltyTierRepository{s: s}
}

func (r *latePenaltyTierRepository) List(_ context.Context) ([]rule.LatePenaltyTier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]rule.LatePenaltyTier, len(r.s.tiers))
	copy(result, r.s.tiers)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LateMinutes < result[j].LateMinutes
	})
	return result, nil
}

func (r *latePenaltyTierRepository) Create(_ context.Context, tier rule.LatePenaltyTier) (rule.LatePenaltyTier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tier.ID = newID()
	tier.CreatedAt = r.s.now()
	r.s.tiers = append(r.s.tiers, tier)
	return tier, nil
}

func (r *latePenaltyTierRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, t := range r.s.tiers {
		if t.ID == id {
			r.s.tiers = append(r.s.tiers[:i], r.s.tiers[i+1:]...)
			return nil
		}
	}
	return rule.ErrLatePenaltyTierNotFound
}
