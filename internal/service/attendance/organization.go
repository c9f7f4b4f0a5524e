package attendance

import (
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/domain/employee"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// YearWindow is the span of every payroll month named by year.
func YearWindow(year, cycleStartDay int) attendance.Period {
	return attendance.Period{
		Start: attendance.PeriodForMonth(year, time.January, cycleStartDay).Start,
		End:   attendance.PeriodForMonth(year, time.December, cycleStartDay).End,
	}
}

// OrganizationSummary breaks year down per employee and payroll month. Each
// month is clipped to the employee's employment and to today; empty months
// are reported as zero rows.
func (s *Snapshot) OrganizationSummary(year int, employees []employee.Employee, today time.Time) attendance.OrganizationSummary {
	today = attendance.DateOf(today)
	result := attendance.OrganizationSummary{
		Year:      year,
		Employees: make([]attendance.EmployeeYearSummary, 0, len(employees)),
	}

	var totals attendance.YearTotals
	for _, emp := range employees {
		row := attendance.EmployeeYearSummary{
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName,
			Months:       make([]attendance.MonthlyBreakdown, 0, 12),
		}
		for month := time.January; month <= time.December; month++ {
			breakdown := s.monthlyBreakdown(emp, year, month, today)
			row.Totals.Add(breakdown)
			row.Months = append(row.Months, breakdown)
		}
		totals.Merge(row.Totals)
		result.Employees = append(result.Employees, row)
	}

	result.Aggregates = aggregate(totals, len(employees))
	return result
}

func (s *Snapshot) monthlyBreakdown(emp employee.Employee, year int, month time.Month, today time.Time) attendance.MonthlyBreakdown {
	breakdown := attendance.MonthlyBreakdown{Month: int(month)}

	period := attendance.PeriodForMonth(year, month, s.Settings.PayrollCycleStartDay)
	if period.Start.After(today) {
		return breakdown
	}
	start, end, employed := emp.EmploymentWindow(today)
	if !employed {
		return breakdown
	}
	period, ok := period.Clip(start, end)
	if !ok {
		return breakdown
	}

	breakdown.PeriodStart = attendance.DateKey(period.Start)
	breakdown.PeriodEnd = attendance.DateKey(period.End)

	var workedMinutes, penaltyMinutes int
	for _, day := range period.Days() {
		record := s.DailyRecord(emp, day)
		workDay := s.Calendar.IsWorkDay(day)
		if workDay {
			breakdown.WorkDays++
		}
		switch record.Status() {
		case attendance.DayStatusPresent:
			if workDay {
				breakdown.AttendedDays++
			}
		case attendance.DayStatusLeave:
			breakdown.VacationDays++
		case attendance.DayStatusWfh:
			breakdown.WfhDays++
		}
		if record.PermissionMinutes > 0 {
			breakdown.PermissionsUsed++
		}
		if !creditedByStatus(record) {
			workedMinutes += record.TotalMinutes
			penaltyMinutes += record.LatePenaltyMinutes
		}
	}

	breakdown.AbsentDays = max(0, breakdown.WorkDays-breakdown.AttendedDays-breakdown.VacationDays-breakdown.WfhDays)

	workHours := s.Settings.WorkHoursPerDay
	wfhPerDay := s.Rules.WfhHoursPerDay(workHours, s.Settings.WfhAttendanceHours)

	breakdown.AttendanceHours = minutesToHours(workedMinutes).Round(2)
	breakdown.LatePenaltyHours = minutesToHours(penaltyMinutes).Round(2)
	breakdown.WfhHours = decimal.NewFromInt(int64(breakdown.WfhDays)).Mul(wfhPerDay).Round(2)
	breakdown.ExpectedHours = decimal.NewFromInt(int64(breakdown.WorkDays)).Mul(workHours).Round(2)

	return breakdown
}

func aggregate(totals attendance.YearTotals, employeeCount int) attendance.OrganizationAggregates {
	agg := attendance.OrganizationAggregates{
		EmployeeCount:         employeeCount,
		Totals:                totals,
		AttendancePercentage:  percentOf(totals.AttendanceHours, totals.ExpectedHours),
		AbsenteeismPercentage: percentOf(decimal.NewFromInt(int64(totals.AbsentDays)), decimal.NewFromInt(int64(totals.WorkDays))),
	}
	if employeeCount == 0 {
		return agg
	}

	n := decimal.NewFromInt(int64(employeeCount))
	yearly := attendance.AverageFigures{
		AttendanceHours:  totals.AttendanceHours.Div(n),
		LatePenaltyHours: totals.LatePenaltyHours.Div(n),
		AbsentDays:       decimal.NewFromInt(int64(totals.AbsentDays)).Div(n),
		VacationDays:     decimal.NewFromInt(int64(totals.VacationDays)).Div(n),
		PermissionsUsed:  decimal.NewFromInt(int64(totals.PermissionsUsed)).Div(n),
		WfhDays:          decimal.NewFromInt(int64(totals.WfhDays)).Div(n),
		WfhHours:         totals.WfhHours.Div(n),
	}
	agg.YearlyAverage = roundFigures(yearly)
	agg.MonthlyAverage = roundFigures(attendance.AverageFigures{
		AttendanceHours:  yearly.AttendanceHours.Div(monthsPerYear),
		LatePenaltyHours: yearly.LatePenaltyHours.Div(monthsPerYear),
		AbsentDays:       yearly.AbsentDays.Div(monthsPerYear),
		VacationDays:     yearly.VacationDays.Div(monthsPerYear),
		PermissionsUsed:  yearly.PermissionsUsed.Div(monthsPerYear),
		WfhDays:          yearly.WfhDays.Div(monthsPerYear),
		WfhHours:         yearly.WfhHours.Div(monthsPerYear),
	})
	return agg
}

func roundFigures(f attendance.AverageFigures) attendance.AverageFigures {
	return attendance.AverageFigures{
		AttendanceHours:  f.AttendanceHours.Round(2),
		LatePenaltyHours: f.LatePenaltyHours.Round(2),
		AbsentDays:       f.AbsentDays.Round(2),
		VacationDays:     f.VacationDays.Round(2),
		PermissionsUsed:  f.PermissionsUsed.Round(2),
		WfhDays:          f.WfhDays.Round(2),
		WfhHours:         f.WfhHours.Round(2),
	}
}
