package rule

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type RuleType string

const (
	RuleTypeFlexibleHours RuleType = "flexible_hours"
	RuleTypeLatePenalty   RuleType = "late_penalty"
	RuleTypePermission    RuleType = "permission"
	RuleTypeWfhPolicy     RuleType = "wfh_policy"
)

const (
	DefaultFlexibleFrom         = "08:00"
	DefaultFlexibleTo           = "10:00"
	DefaultMinutesPerPermission = 120
)

// RuleConfig is the stored payload of a singleton rule. There is at most one
// row per RuleType.
type RuleConfig struct {
	RuleType  RuleType
	Config    json.RawMessage
	UpdatedBy *string
	UpdatedAt time.Time
}

// FlexibleHours is the arrival window; To is the attendance deadline.
type FlexibleHours struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func DefaultFlexibleHours() FlexibleHours {
	return FlexibleHours{From: DefaultFlexibleFrom, To: DefaultFlexibleTo}
}

// Deadline returns To on the given civil date in loc. An unparseable To falls
// back to the default deadline.
func (f FlexibleHours) Deadline(date time.Time, loc *time.Location) time.Time {
	clock, err := time.Parse("15:04", f.To)
	if err != nil {
		clock, _ = time.Parse("15:04", DefaultFlexibleTo)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc)
}

type LatePenaltyTier struct {
	ID             string
	LateMinutes    int
	PenaltyMinutes int
	CreatedBy      *string
	CreatedAt      time.Time
}

type PermissionConfig struct {
	MinutesPerPermission int  `json:"minutes_per_permission"`
	MaxPerMonth          *int `json:"max_per_month,omitempty"`
}

func DefaultPermissionConfig() PermissionConfig {
	return PermissionConfig{MinutesPerPermission: DefaultMinutesPerPermission}
}

// Allowance returns the number of permissions allowed in a payroll period
// given extra override grants. bounded is false when no cap is configured.
func (p PermissionConfig) Allowance(extra int) (allowed int, bounded bool) {
	if p.MaxPerMonth == nil {
		return 0, false
	}
	return *p.MaxPerMonth + extra, true
}

type WfhPolicy struct {
	MaxDaysPerMonth      int             `json:"max_days_per_month"`
	AttendancePercentage decimal.Decimal `json:"attendance_percentage"`
}

var hundred = decimal.NewFromInt(100)

// HoursPerDay is the credited hours for a WFH day.
func (w WfhPolicy) HoursPerDay(workHoursPerDay decimal.Decimal) decimal.Decimal {
	return workHoursPerDay.Mul(w.AttendancePercentage).Div(hundred)
}

// RuleSet is a snapshot of every rule, taken once per report so all records
// in it are evaluated against the same configuration.
type RuleSet struct {
	FlexibleHours FlexibleHours
	Tiers         []LatePenaltyTier
	Permission    PermissionConfig
	WfhPolicy     *WfhPolicy
}

// NewRuleSet fills unconfigured rules with defaults and orders tiers by
// threshold. Tiers sharing a threshold keep their insertion order.
func NewRuleSet(flex *FlexibleHours, tiers []LatePenaltyTier, perm *PermissionConfig, wfh *WfhPolicy) RuleSet {
	rs := RuleSet{
		FlexibleHours: DefaultFlexibleHours(),
		Permission:    DefaultPermissionConfig(),
		WfhPolicy:     wfh,
	}
	if flex != nil {
		rs.FlexibleHours = *flex
	}
	if perm != nil {
		rs.Permission = *perm
		if rs.Permission.MinutesPerPermission <= 0 {
			rs.Permission.MinutesPerPermission = DefaultMinutesPerPermission
		}
	}
	rs.Tiers = make([]LatePenaltyTier, len(tiers))
	copy(rs.Tiers, tiers)
	sort.SliceStable(rs.Tiers, func(i, j int) bool {
		return rs.Tiers[i].LateMinutes < rs.Tiers[j].LateMinutes
	})
	return rs
}

// LatePenaltyMinutes applies the highest tier whose threshold is at or below
// lateMinutes.
func (r RuleSet) LatePenaltyMinutes(lateMinutes int) int {
	penalty := 0
	for _, tier := range r.Tiers {
		if tier.LateMinutes > lateMinutes {
			break
		}
		penalty = tier.PenaltyMinutes
	}
	return penalty
}

// WfhHoursPerDay uses the policy percentage when one is configured and the
// fallback setting otherwise.
func (r RuleSet) WfhHoursPerDay(workHoursPerDay, fallback decimal.Decimal) decimal.Decimal {
	if r.WfhPolicy == nil {
		return fallback
	}
	return r.WfhPolicy.HoursPerDay(workHoursPerDay)
}
