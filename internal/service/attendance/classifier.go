package attendance

import (
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/domain/leave"
	"github.com/samerkamel/aura-sub004/internal/domain/setting"
)

// Calendar holds the holiday, leave and WFH data for a query window and
// classifies days against it.
type Calendar struct {
	settings setting.Settings
	holidays map[string]attendance.PublicHoliday
	leaves   map[string][]leave.LeaveRecord
	wfh      map[string]map[string]bool
}

func NewCalendar(settings setting.Settings, holidays []attendance.PublicHoliday, leaves []leave.LeaveRecord, wfh []attendance.WfhRecord) *Calendar {
	c := &Calendar{
		settings: settings,
		holidays: make(map[string]attendance.PublicHoliday, len(holidays)),
		leaves:   make(map[string][]leave.LeaveRecord),
		wfh:      make(map[string]map[string]bool),
	}
	for _, h := range holidays {
		c.holidays[attendance.DateKey(h.Date)] = h
	}
	for _, l := range leaves {
		if !l.IsApproved() {
			continue
		}
		c.leaves[l.EmployeeID] = append(c.leaves[l.EmployeeID], l)
	}
	for _, w := range wfh {
		if c.wfh[w.EmployeeID] == nil {
			c.wfh[w.EmployeeID] = make(map[string]bool)
		}
		c.wfh[w.EmployeeID][attendance.DateKey(w.Date)] = true
	}
	return c
}

// Classify applies the fixed precedence weekend > holiday > leave > wfh.
func (c *Calendar) Classify(employeeID string, date time.Time) attendance.DayType {
	switch {
	case c.settings.IsWeekend(date):
		return attendance.DayTypeWeekend
	case c.IsHoliday(date):
		return attendance.DayTypeHoliday
	case c.OnLeave(employeeID, date):
		return attendance.DayTypeLeave
	case c.IsWfh(employeeID, date):
		return attendance.DayTypeWfh
	}
	return attendance.DayTypeWorking
}

func (c *Calendar) IsHoliday(date time.Time) bool {
	_, ok := c.holidays[attendance.DateKey(date)]
	return ok
}

// IsWorkDay reports a weekday that is not a public holiday.
func (c *Calendar) IsWorkDay(date time.Time) bool {
	return !c.settings.IsWeekend(date) && !c.IsHoliday(date)
}

func (c *Calendar) OnLeave(employeeID string, date time.Time) bool {
	for _, l := range c.leaves[employeeID] {
		if l.Covers(date) {
			return true
		}
	}
	return false
}

func (c *Calendar) IsWfh(employeeID string, date time.Time) bool {
	return c.wfh[employeeID][attendance.DateKey(date)]
}
