package setting

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	KeyWeekendDays           = "weekend_days"
	KeyWorkHoursPerDay       = "work_hours_per_day"
	KeyWfhAttendanceHours    = "wfh_attendance_hours"
	KeyPayrollCycleStartDay  = "payroll_cycle_start_day"
	KeyAllowPastDateRequests = "allow_past_date_requests"
)

// Settings is the organization configuration handed to the engine on every
// call. Location is process configuration and is never persisted.
type Settings struct {
	WeekendDays           []time.Weekday
	WorkHoursPerDay       decimal.Decimal
	WfhAttendanceHours    decimal.Decimal
	PayrollCycleStartDay  int
	AllowPastDateRequests bool
	Location              *time.Location
}

// Setting is one stored override.
type Setting struct {
	Key       string
	Value     string
	UpdatedBy *string
	UpdatedAt time.Time
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekdays maps weekday names to time.Weekday. Unknown names are dropped.
func ParseWeekdays(names []string) []time.Weekday {
	days := make([]time.Weekday, 0, len(names))
	seen := make(map[time.Weekday]bool)
	for _, name := range names {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok || seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	return days
}

// WeekdayNames is the inverse of ParseWeekdays.
func WeekdayNames(days []time.Weekday) []string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, strings.ToLower(d.String()))
	}
	return names
}

func (s Settings) IsWeekend(date time.Time) bool {
	for _, d := range s.WeekendDays {
		if date.Weekday() == d {
			return true
		}
	}
	return false
}

// Loc falls back to UTC when no location was configured.
func (s Settings) Loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
