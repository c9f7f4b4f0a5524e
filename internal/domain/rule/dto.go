package rule

import (
	"time"

	"github.com/samerkamel/aura-sub004/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpdateFlexibleHoursRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	UpdatedBy string `json:"-"`
}

func (r *UpdateFlexibleHoursRequest) Validate() error {
	var errs validator.ValidationErrors

	fromValid := validator.IsValidClock(r.From)
	toValid := validator.IsValidClock(r.To)
	if !fromValid {
		errs.Add("from", "from must be a time in HH:MM format")
	}
	if !toValid {
		errs.Add("to", "to must be a time in HH:MM format")
	}
	// Zero-padded HH:MM strings order lexically.
	if fromValid && toValid && r.To <= r.From {
		errs.Add("to", "to must be after from")
	}

	return errs.Err()
}

type CreateLatePenaltyTierRequest struct {
	LateMinutes    int    `json:"late_minutes"`
	PenaltyMinutes int    `json:"penalty_minutes"`
	CreatedBy      string `json:"-"`
}

func (r *CreateLatePenaltyTierRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.InRange(r.LateMinutes, 1, 1440) {
		errs.Add("late_minutes", "late_minutes must be between 1 and 1440")
	}
	if !validator.InRange(r.PenaltyMinutes, 0, 1440) {
		errs.Add("penalty_minutes", "penalty_minutes must be between 0 and 1440")
	}

	return errs.Err()
}

type UpdatePermissionConfigRequest struct {
	MinutesPerPermission int    `json:"minutes_per_permission"`
	MaxPerMonth          *int   `json:"max_per_month,omitempty"`
	UpdatedBy            string `json:"-"`
}

func (r *UpdatePermissionConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.InRange(r.MinutesPerPermission, 1, 1440) {
		errs.Add("minutes_per_permission", "minutes_per_permission must be between 1 and 1440")
	}
	if r.MaxPerMonth != nil && !validator.InRange(*r.MaxPerMonth, 0, 31) {
		errs.Add("max_per_month", "max_per_month must be between 0 and 31")
	}

	return errs.Err()
}

type UpdateWfhPolicyRequest struct {
	MaxDaysPerMonth      int             `json:"max_days_per_month"`
	AttendancePercentage decimal.Decimal `json:"attendance_percentage"`
	UpdatedBy            string          `json:"-"`
}

func (r *UpdateWfhPolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.InRange(r.MaxDaysPerMonth, 0, 31) {
		errs.Add("max_days_per_month", "max_days_per_month must be between 0 and 31")
	}
	if r.AttendancePercentage.IsNegative() || r.AttendancePercentage.GreaterThan(hundred) {
		errs.Add("attendance_percentage", "attendance_percentage must be between 0 and 100")
	}

	return errs.Err()
}

type LatePenaltyTierResponse struct {
	ID             string    `json:"id"`
	LateMinutes    int       `json:"late_minutes"`
	PenaltyMinutes int       `json:"penalty_minutes"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewLatePenaltyTierResponse(t LatePenaltyTier) LatePenaltyTierResponse {
	return LatePenaltyTierResponse{
		ID:             t.ID,
		LateMinutes:    t.LateMinutes,
		PenaltyMinutes: t.PenaltyMinutes,
		CreatedAt:      t.CreatedAt,
	}
}

type RulesResponse struct {
	FlexibleHours    FlexibleHours             `json:"flexible_hours"`
	LatePenaltyTiers []LatePenaltyTierResponse `json:"late_penalty_tiers"`
	Permission       PermissionConfig          `json:"permission"`
	WfhPolicy        *WfhPolicy                `json:"wfh_policy"`
}
