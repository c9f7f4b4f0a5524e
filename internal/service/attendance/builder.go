package attendance

import (
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/domain/employee"
	"github.com/samerkamel/aura-sub004/internal/domain/rule"
	"github.com/samerkamel/aura-sub004/internal/domain/setting"
	"github.com/samerkamel/aura-sub004/internal/domain/worklog"
	"github.com/shopspring/decimal"
)

// DayContext carries everything besides punches that a daily record depends on.
type DayContext struct {
	Settings   setting.Settings
	Rules      rule.RuleSet
	Calendar   *Calendar
	Permission *attendance.PermissionUsage
	Worklogs   []worklog.Worklog
}

// BuildDailyRecord composes the record for one employee on one civil date.
// It never fails: a day without data yields a zeroed record.
func BuildDailyRecord(emp employee.Employee, date time.Time, punches []attendance.RawPunch, dc DayContext) attendance.DailyRecord {
	loc := dc.Settings.Loc()
	date = attendance.DateOf(date)

	local := make([]attendance.RawPunch, len(punches))
	for i, p := range punches {
		p.PunchedAt = p.PunchedAt.In(loc)
		local[i] = p
	}

	record := attendance.DailyRecord{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Date:         date,
	}
	record.TimeIn, record.TimeOut = Reconcile(local)

	if record.TimeIn != nil && record.TimeOut != nil {
		record.TotalMinutes = wholeMinutes(record.TimeOut.Sub(*record.TimeIn))
	}

	deadline := dc.Rules.FlexibleHours.Deadline(date, loc)
	if dc.Permission != nil {
		record.PermissionMinutes = dc.Permission.MinutesUsed
		record.TotalMinutes += dc.Permission.MinutesUsed
		deadline = deadline.Add(time.Duration(dc.Permission.MinutesUsed) * time.Minute)
	}

	if record.TimeIn != nil {
		record.LateMinutes = wholeMinutes(record.TimeIn.Sub(deadline))
		record.LatePenaltyMinutes = dc.Rules.LatePenaltyMinutes(record.LateMinutes)
	}

	if emp.BillableHoursApplicable {
		hours := decimal.Zero
		for _, w := range dc.Worklogs {
			hours = hours.Add(w.Hours)
		}
		record.BillableHours = &hours
	}

	switch dc.Calendar.Classify(emp.ID, date) {
	case attendance.DayTypeWeekend:
		record.IsWeekend = true
	case attendance.DayTypeHoliday:
		record.IsHoliday = true
	case attendance.DayTypeLeave:
		record.IsOnLeave = true
	case attendance.DayTypeWfh:
		record.IsWfh = true
	default:
		record.IsMissing = !record.HasAttendance()
	}

	return record
}

// wholeMinutes truncates d to minutes, clamping negatives to zero.
func wholeMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}
