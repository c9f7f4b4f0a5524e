package setting

import (
	"github.com/samerkamel/aura-sub004/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpdateSettingsRequest struct {
	WeekendDays           []string         `json:"weekend_days,omitempty"`
	WorkHoursPerDay       *decimal.Decimal `json:"work_hours_per_day,omitempty"`
	WfhAttendanceHours    *decimal.Decimal `json:"wfh_attendance_hours,omitempty"`
	PayrollCycleStartDay  *int             `json:"payroll_cycle_start_day,omitempty"`
	AllowPastDateRequests *bool            `json:"allow_past_date_requests,omitempty"`
	UpdatedBy             string           `json:"-"`
}

var maxDayHours = decimal.NewFromInt(24)

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WeekendDays != nil {
		if len(ParseWeekdays(r.WeekendDays)) != len(r.WeekendDays) {
			errs.Add("weekend_days", "weekend_days must be distinct weekday names")
		}
	}
	if r.WorkHoursPerDay != nil {
		if r.WorkHoursPerDay.LessThanOrEqual(decimal.Zero) || r.WorkHoursPerDay.GreaterThan(maxDayHours) {
			errs.Add("work_hours_per_day", "work_hours_per_day must be greater than 0 and at most 24")
		}
	}
	if r.WfhAttendanceHours != nil {
		if r.WfhAttendanceHours.IsNegative() || r.WfhAttendanceHours.GreaterThan(maxDayHours) {
			errs.Add("wfh_attendance_hours", "wfh_attendance_hours must be between 0 and 24")
		}
	}
	if r.PayrollCycleStartDay != nil && !validator.InRange(*r.PayrollCycleStartDay, 1, 31) {
		errs.Add("payroll_cycle_start_day", "payroll_cycle_start_day must be between 1 and 31")
	}
	if r.WeekendDays == nil && r.WorkHoursPerDay == nil && r.WfhAttendanceHours == nil &&
		r.PayrollCycleStartDay == nil && r.AllowPastDateRequests == nil {
		errs.Add("settings", "at least one setting must be provided")
	}

	return errs.Err()
}

type SettingsResponse struct {
	WeekendDays           []string        `json:"weekend_days"`
	WorkHoursPerDay       decimal.Decimal `json:"work_hours_per_day"`
	WfhAttendanceHours    decimal.Decimal `json:"wfh_attendance_hours"`
	PayrollCycleStartDay  int             `json:"payroll_cycle_start_day"`
	AllowPastDateRequests bool            `json:"allow_past_date_requests"`
	Timezone              string          `json:"timezone"`
}

func NewSettingsResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		WeekendDays:           WeekdayNames(s.WeekendDays),
		WorkHoursPerDay:       s.WorkHoursPerDay,
		WfhAttendanceHours:    s.WfhAttendanceHours,
		PayrollCycleStartDay:  s.PayrollCycleStartDay,
		AllowPastDateRequests: s.AllowPastDateRequests,
		Timezone:              s.Loc().String(),
	}
}
