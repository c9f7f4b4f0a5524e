package attendance

import (
	"github.com/shopspring/decimal"
)

// EmployeeSummary rolls up the daily records of one employee over a range.
// Hours are rounded to two decimal places.
type EmployeeSummary struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`

	WorkDays       int `json:"work_days"`
	VacationDays   int `json:"vacation_days"`
	WfhDays        int `json:"wfh_days"`
	AttendedDays   int `json:"attended_days"`
	MissingDays    int `json:"missing_days"`
	PermissionDays int `json:"permission_days"`

	WorkedMinutes      int `json:"worked_minutes"`
	PermissionMinutes  int `json:"permission_minutes"`
	LateMinutes        int `json:"late_minutes"`
	LatePenaltyMinutes int `json:"late_penalty_minutes"`

	ExpectedHours  decimal.Decimal `json:"expected_hours"`
	VacationHours  decimal.Decimal `json:"vacation_hours"`
	WfhHours       decimal.Decimal `json:"wfh_hours"`
	TotalWorkHours decimal.Decimal `json:"total_work_hours"`
	Percentage     decimal.Decimal `json:"percentage"`

	BillableHours *decimal.Decimal `json:"billable_hours,omitempty"`
}

// MonthlyBreakdown is one employee's figures for one payroll month. Months in
// the future or outside employment are all zero.
type MonthlyBreakdown struct {
	Month       int    `json:"month"`
	PeriodStart string `json:"period_start,omitempty"`
	PeriodEnd   string `json:"period_end,omitempty"`

	WorkDays        int `json:"work_days"`
	AttendedDays    int `json:"attended_days"`
	AbsentDays      int `json:"absent_days"`
	VacationDays    int `json:"vacation_days"`
	PermissionsUsed int `json:"permissions_used"`
	WfhDays         int `json:"wfh_days"`

	AttendanceHours  decimal.Decimal `json:"attendance_hours"`
	LatePenaltyHours decimal.Decimal `json:"late_penalty_hours"`
	WfhHours         decimal.Decimal `json:"wfh_hours"`
	ExpectedHours    decimal.Decimal `json:"expected_hours"`
}

// YearTotals sums monthly breakdowns.
type YearTotals struct {
	WorkDays        int `json:"work_days"`
	AttendedDays    int `json:"attended_days"`
	AbsentDays      int `json:"absent_days"`
	VacationDays    int `json:"vacation_days"`
	PermissionsUsed int `json:"permissions_used"`
	WfhDays         int `json:"wfh_days"`

	AttendanceHours  decimal.Decimal `json:"attendance_hours"`
	LatePenaltyHours decimal.Decimal `json:"late_penalty_hours"`
	WfhHours         decimal.Decimal `json:"wfh_hours"`
	ExpectedHours    decimal.Decimal `json:"expected_hours"`
}

func (t *YearTotals) Add(m MonthlyBreakdown) {
	t.WorkDays += m.WorkDays
	t.AttendedDays += m.AttendedDays
	t.AbsentDays += m.AbsentDays
	t.VacationDays += m.VacationDays
	t.PermissionsUsed += m.PermissionsUsed
	t.WfhDays += m.WfhDays
	t.AttendanceHours = t.AttendanceHours.Add(m.AttendanceHours)
	t.LatePenaltyHours = t.LatePenaltyHours.Add(m.LatePenaltyHours)
	t.WfhHours = t.WfhHours.Add(m.WfhHours)
	t.ExpectedHours = t.ExpectedHours.Add(m.ExpectedHours)
}

func (t *YearTotals) Merge(o YearTotals) {
	t.Add(MonthlyBreakdown{
		WorkDays:         o.WorkDays,
		AttendedDays:     o.AttendedDays,
		AbsentDays:       o.AbsentDays,
		VacationDays:     o.VacationDays,
		PermissionsUsed:  o.PermissionsUsed,
		WfhDays:          o.WfhDays,
		AttendanceHours:  o.AttendanceHours,
		LatePenaltyHours: o.LatePenaltyHours,
		WfhHours:         o.WfhHours,
		ExpectedHours:    o.ExpectedHours,
	})
}

type EmployeeYearSummary struct {
	EmployeeID   string             `json:"employee_id"`
	EmployeeName string             `json:"employee_name"`
	Months       []MonthlyBreakdown `json:"months"`
	Totals       YearTotals         `json:"totals"`
}

// AverageFigures are per-employee averages over the selected set.
type AverageFigures struct {
	AttendanceHours  decimal.Decimal `json:"attendance_hours"`
	LatePenaltyHours decimal.Decimal `json:"late_penalty_hours"`
	AbsentDays       decimal.Decimal `json:"absent_days"`
	VacationDays     decimal.Decimal `json:"vacation_days"`
	PermissionsUsed  decimal.Decimal `json:"permissions_used"`
	WfhDays          decimal.Decimal `json:"wfh_days"`
	WfhHours         decimal.Decimal `json:"wfh_hours"`
}

type OrganizationAggregates struct {
	EmployeeCount         int             `json:"employee_count"`
	Totals                YearTotals      `json:"totals"`
	YearlyAverage         AverageFigures  `json:"yearly_average"`
	MonthlyAverage        AverageFigures  `json:"monthly_average"`
	AttendancePercentage  decimal.Decimal `json:"attendance_percentage"`
	AbsenteeismPercentage decimal.Decimal `json:"absenteeism_percentage"`
}

type OrganizationSummary struct {
	Year       int                    `json:"year"`
	Employees  []EmployeeYearSummary  `json:"employees"`
	Aggregates OrganizationAggregates `json:"aggregates"`
}
