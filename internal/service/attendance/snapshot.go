package attendance

import (
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/domain/employee"
	"github.com/samerkamel/aura-sub004/internal/domain/leave"
	"github.com/samerkamel/aura-sub004/internal/domain/rule"
	"github.com/samerkamel/aura-sub004/internal/domain/setting"
	"github.com/samerkamel/aura-sub004/internal/domain/worklog"
)

// SnapshotData is the raw input loaded for one query window.
type SnapshotData struct {
	Holidays    []attendance.PublicHoliday
	Leaves      []leave.LeaveRecord
	Wfh         []attendance.WfhRecord
	Punches     []attendance.RawPunch
	Permissions []attendance.PermissionUsage
	Worklogs    []worklog.Worklog
}

type dayKey struct {
	employeeID string
	date       string
}

// Snapshot indexes a window's data by employee and date so every record of a
// report is computed against the same settings, rules and calendar.
type Snapshot struct {
	Settings setting.Settings
	Rules    rule.RuleSet
	Calendar *Calendar

	punches     map[dayKey][]attendance.RawPunch
	permissions map[dayKey]attendance.PermissionUsage
	worklogs    map[dayKey][]worklog.Worklog
}

func NewSnapshot(settings setting.Settings, rules rule.RuleSet, data SnapshotData) *Snapshot {
	loc := settings.Loc()
	s := &Snapshot{
		Settings:    settings,
		Rules:       rules,
		Calendar:    NewCalendar(settings, data.Holidays, data.Leaves, data.Wfh),
		punches:     make(map[dayKey][]attendance.RawPunch),
		permissions: make(map[dayKey]attendance.PermissionUsage, len(data.Permissions)),
		worklogs:    make(map[dayKey][]worklog.Worklog),
	}
	for _, p := range data.Punches {
		k := dayKey{p.EmployeeID, attendance.DateKey(p.PunchedAt.In(loc))}
		s.punches[k] = append(s.punches[k], p)
	}
	for _, u := range data.Permissions {
		s.permissions[dayKey{u.EmployeeID, attendance.DateKey(u.Date)}] = u
	}
	for _, w := range data.Worklogs {
		k := dayKey{w.EmployeeID, attendance.DateKey(w.Date)}
		s.worklogs[k] = append(s.worklogs[k], w)
	}
	return s
}

// DailyRecord builds the record for emp on date from the snapshot.
func (s *Snapshot) DailyRecord(emp employee.Employee, date time.Time) attendance.DailyRecord {
	k := dayKey{emp.ID, attendance.DateKey(date)}
	dc := DayContext{
		Settings: s.Settings,
		Rules:    s.Rules,
		Calendar: s.Calendar,
		Worklogs: s.worklogs[k],
	}
	if u, ok := s.permissions[k]; ok {
		dc.Permission = &u
	}
	return BuildDailyRecord(emp, date, s.punches[k], dc)
}

// DailyRecords lists records for every date in period and every employee,
// ordered by date then by the order of employees.
func (s *Snapshot) DailyRecords(employees []employee.Employee, period attendance.Period) []attendance.DailyRecord {
	records := make([]attendance.DailyRecord, 0, period.DayCount()*len(employees))
	for _, day := range period.Days() {
		for _, emp := range employees {
			records = append(records, s.DailyRecord(emp, day))
		}
	}
	return records
}
