package attendance

import (
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/domain/employee"
	"github.com/samerkamel/aura-sub004/internal/domain/leave"
	"github.com/samerkamel/aura-sub004/internal/domain/rule"
	"github.com/samerkamel/aura-sub004/internal/domain/setting"
	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func at(date, clock string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", date+" "+clock)
	if err != nil {
		panic(err)
	}
	return t
}

func testSettings() setting.Settings {
	return setting.Settings{
		WeekendDays:          []time.Weekday{time.Friday, time.Saturday},
		WorkHoursPerDay:      decimal.NewFromInt(8),
		WfhAttendanceHours:   decimal.NewFromInt(8),
		PayrollCycleStartDay: 1,
		Location:             time.UTC,
	}
}

func testTiers() []rule.LatePenaltyTier {
	return []rule.LatePenaltyTier{
		{LateMinutes: 60, PenaltyMinutes: 30},
		{LateMinutes: 15, PenaltyMinutes: 5},
		{LateMinutes: 30, PenaltyMinutes: 15},
	}
}

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:               "emp-1",
		FullName:         "Hana Mostafa",
		EmploymentStatus: employee.EmploymentStatusActive,
		StartDate:        day("2024-01-01"),
	}
}

func punch(employeeID string, ts time.Time) attendance.RawPunch {
	return attendance.RawPunch{EmployeeID: employeeID, PunchedAt: ts, Source: attendance.PunchSourceUnspecified}
}

func approvedLeave(employeeID, from, to string) leave.LeaveRecord {
	return leave.LeaveRecord{
		EmployeeID: employeeID,
		StartDate:  day(from),
		EndDate:    day(to),
		Status:     leave.LeaveRequestStatusApproved,
		PolicyName: "Annual",
	}
}

// fullDayPunches punches 09:00 and 17:00 on every date in [from, to] that is
// not excluded.
func fullDayPunches(employeeID, from, to string, exclude func(time.Time) bool) []attendance.RawPunch {
	var punches []attendance.RawPunch
	for d := day(from); !d.After(day(to)); d = d.AddDate(0, 0, 1) {
		if exclude(d) {
			continue
		}
		punches = append(punches,
			punch(employeeID, d.Add(9*time.Hour)),
			punch(employeeID, d.Add(17*time.Hour)),
		)
	}
	return punches
}
