package attendance

import (
	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/domain/employee"
	"github.com/shopspring/decimal"
)

var (
	sixty   = decimal.NewFromInt(60)
	hundred = decimal.NewFromInt(100)
)

func minutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty)
}

// percentOf returns part/whole*100 rounded to two places, or zero when whole
// is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

// creditedByStatus reports leave and WFH days. Their fixed hour credit
// replaces whatever was punched, so punched minutes, lateness and penalties
// on those days stay out of the totals.
func creditedByStatus(r attendance.DailyRecord) bool {
	switch r.Status() {
	case attendance.DayStatusLeave, attendance.DayStatusWfh:
		return true
	}
	return false
}

// EmployeeSummary rolls up one employee's daily records over period.
func (s *Snapshot) EmployeeSummary(emp employee.Employee, period attendance.Period) attendance.EmployeeSummary {
	summary := attendance.EmployeeSummary{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		StartDate:    attendance.DateKey(period.Start),
		EndDate:      attendance.DateKey(period.End),
	}

	billable := decimal.Zero
	for _, day := range period.Days() {
		record := s.DailyRecord(emp, day)
		workDay := s.Calendar.IsWorkDay(day)

		if workDay {
			summary.WorkDays++
		}
		switch record.Status() {
		case attendance.DayStatusPresent:
			if workDay {
				summary.AttendedDays++
			}
		case attendance.DayStatusLeave:
			summary.VacationDays++
		case attendance.DayStatusWfh:
			summary.WfhDays++
		case attendance.DayStatusMissing:
			summary.MissingDays++
		}
		if record.PermissionMinutes > 0 {
			summary.PermissionDays++
		}
		summary.PermissionMinutes += record.PermissionMinutes

		if !creditedByStatus(record) {
			summary.WorkedMinutes += record.TotalMinutes
			summary.LateMinutes += record.LateMinutes
			summary.LatePenaltyMinutes += record.LatePenaltyMinutes
		}
		if record.BillableHours != nil {
			billable = billable.Add(*record.BillableHours)
		}
	}

	workHours := s.Settings.WorkHoursPerDay
	wfhPerDay := s.Rules.WfhHoursPerDay(workHours, s.Settings.WfhAttendanceHours)

	expected := decimal.NewFromInt(int64(summary.WorkDays)).Mul(workHours)
	vacation := decimal.NewFromInt(int64(summary.VacationDays)).Mul(workHours)
	wfh := decimal.NewFromInt(int64(summary.WfhDays)).Mul(wfhPerDay)
	total := minutesToHours(summary.WorkedMinutes).
		Sub(minutesToHours(summary.LatePenaltyMinutes)).
		Add(vacation).
		Add(wfh)

	summary.ExpectedHours = expected.Round(2)
	summary.VacationHours = vacation.Round(2)
	summary.WfhHours = wfh.Round(2)
	summary.TotalWorkHours = total.Round(2)
	summary.Percentage = percentOf(total, expected)

	if emp.BillableHoursApplicable {
		b := billable.Round(2)
		summary.BillableHours = &b
	}

	return summary
}
