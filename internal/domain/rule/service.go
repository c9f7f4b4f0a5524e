package rule

import "context"

type RuleService interface {
	// Snapshot loads every rule with defaults applied.
	Snapshot(ctx context.Context) (RuleSet, error)
	GetRules(ctx context.Context) (RulesResponse, error)

	FlexibleHours(ctx context.Context) (FlexibleHours, error)
	UpdateFlexibleHours(ctx context.Context, req UpdateFlexibleHoursRequest) (FlexibleHours, error)

	CreateLatePenaltyTier(ctx context.Context, req CreateLatePenaltyTierRequest) (LatePenaltyTierResponse, error)
	DeleteLatePenaltyTier(ctx context.Context, id string) error

	PermissionConfig(ctx context.Context) (PermissionConfig, error)
	UpdatePermissionConfig(ctx context.Context, req UpdatePermissionConfigRequest) (PermissionConfig, error)

	// WfhPolicy returns nil when no policy is configured.
	WfhPolicy(ctx context.Context) (*WfhPolicy, error)
	UpdateWfhPolicy(ctx context.Context, req UpdateWfhPolicyRequest) (WfhPolicy, error)
	DeleteWfhPolicy(ctx context.Context) error
}
