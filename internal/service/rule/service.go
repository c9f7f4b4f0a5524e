package rule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samerkamel/aura-sub004/internal/domain/rule"
	"github.com/samerkamel/aura-sub004/internal/pkg/validator"
)

type RuleServiceImpl struct {
	rule.RuleConfigRepository
	rule.LatePenaltyTierRepository
}

// loadConfig decodes the singleton of ruleType into dest. It reports false
// when the rule has never been configured.
func (s *RuleServiceImpl) loadConfig(ctx context.Context, ruleType rule.RuleType, dest any) (bool, error) {
	cfg, err := s.RuleConfigRepository.Get(ctx, ruleType)
	if err != nil {
		if errors.Is(err, rule.ErrRuleNotConfigured) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get %s rule: %w", ruleType, err)
	}
	if err := json.Unmarshal(cfg.Config, dest); err != nil {
		return false, fmt.Errorf("%w: %s: %v", rule.ErrInvalidRuleConfig, ruleType, err)
	}
	return true, nil
}

func (s *RuleServiceImpl) saveConfig(ctx context.Context, ruleType rule.RuleType, payload any, updatedBy string) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s rule: %w", ruleType, err)
	}
	cfg := rule.RuleConfig{RuleType: ruleType, Config: raw}
	if updatedBy != "" {
		cfg.UpdatedBy = &updatedBy
	}
	if _, err := s.RuleConfigRepository.Upsert(ctx, cfg); err != nil {
		return fmt.Errorf("failed to save %s rule: %w", ruleType, err)
	}
	slog.Info("attendance rule updated", "rule_type", ruleType)
	return nil
}

// Snapshot implements rule.RuleService.
func (s *RuleServiceImpl) Snapshot(ctx context.Context) (rule.RuleSet, error) {
	flexible, err := s.FlexibleHours(ctx)
	if err != nil {
		return rule.RuleSet{}, err
	}

	permission, err := s.PermissionConfig(ctx)
	if err != nil {
		return rule.RuleSet{}, err
	}

	wfh, err := s.WfhPolicy(ctx)
	if err != nil {
		return rule.RuleSet{}, err
	}

	tiers, err := s.LatePenaltyTierRepository.List(ctx)
	if err != nil {
		return rule.RuleSet{}, fmt.Errorf("failed to list late penalty tiers: %w", err)
	}

	return rule.NewRuleSet(&flexible, tiers, &permission, wfh), nil
}

// GetRules implements rule.RuleService.
func (s *RuleServiceImpl) GetRules(ctx context.Context) (rule.RulesResponse, error) {
	rs, err := s.Snapshot(ctx)
	if err != nil {
		return rule.RulesResponse{}, err
	}

	tiers := make([]rule.LatePenaltyTierResponse, 0, len(rs.Tiers))
	for _, t := range rs.Tiers {
		tiers = append(tiers, rule.NewLatePenaltyTierResponse(t))
	}

	return rule.RulesResponse{
		FlexibleHours:    rs.FlexibleHours,
		LatePenaltyTiers: tiers,
		Permission:       rs.Permission,
		WfhPolicy:        rs.WfhPolicy,
	}, nil
}

// FlexibleHours implements rule.RuleService.
func (s *RuleServiceImpl) FlexibleHours(ctx context.Context) (rule.FlexibleHours, error) {
	flex := rule.DefaultFlexibleHours()
	var stored rule.FlexibleHours
	found, err := s.loadConfig(ctx, rule.RuleTypeFlexibleHours, &stored)
	if err != nil {
		return rule.FlexibleHours{}, err
	}
	if found {
		flex = stored
	}
	return flex, nil
}

// UpdateFlexibleHours implements rule.RuleService.
func (s *RuleServiceImpl) UpdateFlexibleHours(ctx context.Context, req rule.UpdateFlexibleHoursRequest) (rule.FlexibleHours, error) {
	if err := req.Validate(); err != nil {
		return rule.FlexibleHours{}, err
	}

	flex := rule.FlexibleHours{From: req.From, To: req.To}
	if err := s.saveConfig(ctx, rule.RuleTypeFlexibleHours, flex, req.UpdatedBy); err != nil {
		return rule.FlexibleHours{}, err
	}
	return flex, nil
}

// CreateLatePenaltyTier implements rule.RuleService.
func (s *RuleServiceImpl) CreateLatePenaltyTier(ctx context.Context, req rule.CreateLatePenaltyTierRequest) (rule.LatePenaltyTierResponse, error) {
	if err := req.Validate(); err != nil {
		return rule.LatePenaltyTierResponse{}, err
	}

	tier := rule.LatePenaltyTier{
		LateMinutes:    req.LateMinutes,
		PenaltyMinutes: req.PenaltyMinutes,
	}
	if req.CreatedBy != "" {
		tier.CreatedBy = &req.CreatedBy
	}

	created, err := s.LatePenaltyTierRepository.Create(ctx, tier)
	if err != nil {
		return rule.LatePenaltyTierResponse{}, fmt.Errorf("failed to create late penalty tier: %w", err)
	}
	return rule.NewLatePenaltyTierResponse(created), nil
}

// DeleteLatePenaltyTier implements rule.RuleService.
func (s *RuleServiceImpl) DeleteLatePenaltyTier(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return rule.ErrLatePenaltyTierNotFound
	}
	if err := s.LatePenaltyTierRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, rule.ErrLatePenaltyTierNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete late penalty tier: %w", err)
	}
	return nil
}

// PermissionConfig implements rule.RuleService.
func (s *RuleServiceImpl) PermissionConfig(ctx context.Context) (rule.PermissionConfig, error) {
	var stored rule.PermissionConfig
	found, err := s.loadConfig(ctx, rule.RuleTypePermission, &stored)
	if err != nil {
		return rule.PermissionConfig{}, err
	}
	if !found {
		return rule.DefaultPermissionConfig(), nil
	}
	if stored.MinutesPerPermission <= 0 {
		stored.MinutesPerPermission = rule.DefaultMinutesPerPermission
	}
	return stored, nil
}

// UpdatePermissionConfig implements rule.RuleService.
func (s *RuleServiceImpl) UpdatePermissionConfig(ctx context.Context, req rule.UpdatePermissionConfigRequest) (rule.PermissionConfig, error) {
	if err := req.Validate(); err != nil {
		return rule.PermissionConfig{}, err
	}

	cfg := rule.PermissionConfig{
		MinutesPerPermission: req.MinutesPerPermission,
		MaxPerMonth:          req.MaxPerMonth,
	}
	if err := s.saveConfig(ctx, rule.RuleTypePermission, cfg, req.UpdatedBy); err != nil {
		return rule.PermissionConfig{}, err
	}
	return cfg, nil
}

// WfhPolicy implements rule.RuleService.
func (s *RuleServiceImpl) WfhPolicy(ctx context.Context) (*rule.WfhPolicy, error) {
	var stored rule.WfhPolicy
	found, err := s.loadConfig(ctx, rule.RuleTypeWfhPolicy, &stored)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &stored, nil
}

// UpdateWfhPolicy implements rule.RuleService.
func (s *RuleServiceImpl) UpdateWfhPolicy(ctx context.Context, req rule.UpdateWfhPolicyRequest) (rule.WfhPolicy, error) {
	if err := req.Validate(); err != nil {
		return rule.WfhPolicy{}, err
	}

	policy := rule.WfhPolicy{
		MaxDaysPerMonth:      req.MaxDaysPerMonth,
		AttendancePercentage: req.AttendancePercentage,
	}
	if err := s.saveConfig(ctx, rule.RuleTypeWfhPolicy, policy, req.UpdatedBy); err != nil {
		return rule.WfhPolicy{}, err
	}
	return policy, nil
}

// DeleteWfhPolicy implements rule.RuleService.
func (s *RuleServiceImpl) DeleteWfhPolicy(ctx context.Context) error {
	if err := s.RuleConfigRepository.Delete(ctx, rule.RuleTypeWfhPolicy); err != nil {
		if errors.Is(err, rule.ErrRuleNotConfigured) {
			return err
		}
		return fmt.Errorf("failed to delete WFH policy: %w", err)
	}
	slog.Info("attendance rule deleted", "rule_type", rule.RuleTypeWfhPolicy)
	return nil
}

func NewRuleService(configRepository rule.RuleConfigRepository, tierRepository rule.LatePenaltyTierRepository) rule.RuleService {
	return &RuleServiceImpl{
		RuleConfigRepository:      configRepository,
		LatePenaltyTierRepository: tierRepository,
	}
}
