package attendance

import (
	"testing"
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/domain/rule"
	"github.com/samerkamel/aura-sub004/internal/domain/worklog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayContext() DayContext {
	settings := testSettings()
	return DayContext{
		Settings: settings,
		Rules:    rule.NewRuleSet(nil, testTiers(), nil, nil),
		Calendar: NewCalendar(settings, nil, nil, nil),
	}
}

func TestBuildDailyRecord_LatePenaltyTier(t *testing.T) {
	punches := []attendance.RawPunch{
		punch("emp-1", at("2024-03-04", "10:45:00")),
		punch("emp-1", at("2024-03-04", "18:00:00")),
	}

	record := BuildDailyRecord(testEmployee(), day("2024-03-04"), punches, dayContext())

	assert.Equal(t, 435, record.TotalMinutes)
	assert.Equal(t, 45, record.LateMinutes)
	assert.Equal(t, 15, record.LatePenaltyMinutes)
	assert.False(t, record.IsMissing)
	assert.Equal(t, attendance.DayStatusPresent, record.Status())
}

func TestBuildDailyRecord_BelowFirstTier(t *testing.T) {
	punches := []attendance.RawPunch{punch("emp-1", at("2024-03-04", "10:10:00"))}

	record := BuildDailyRecord(testEmployee(), day("2024-03-04"), punches, dayContext())

	assert.Equal(t, 10, record.LateMinutes)
	assert.Equal(t, 0, record.LatePenaltyMinutes)
	assert.Equal(t, 0, record.TotalMinutes)
	assert.Nil(t, record.TimeOut)
}

func TestBuildDailyRecord_PermissionExtendsDeadline(t *testing.T) {
	dc := dayContext()
	dc.Permission = &attendance.PermissionUsage{EmployeeID: "emp-1", Date: day("2024-03-04"), MinutesUsed: 120}
	punches := []attendance.RawPunch{
		punch("emp-1", at("2024-03-04", "11:30:00")),
		punch("emp-1", at("2024-03-04", "17:00:00")),
	}

	record := BuildDailyRecord(testEmployee(), day("2024-03-04"), punches, dc)

	assert.Equal(t, 0, record.LateMinutes)
	assert.Equal(t, 0, record.LatePenaltyMinutes)
	assert.Equal(t, 120, record.PermissionMinutes)
	assert.Equal(t, 330+120, record.TotalMinutes)
}

func TestBuildDailyRecord_ConfiguredDeadline(t *testing.T) {
	dc := dayContext()
	dc.Rules = rule.NewRuleSet(&rule.FlexibleHours{From: "08:00", To: "09:00"}, nil, nil, nil)
	punches := []attendance.RawPunch{punch("emp-1", at("2024-03-04", "09:20:30"))}

	record := BuildDailyRecord(testEmployee(), day("2024-03-04"), punches, dc)

	assert.Equal(t, 20, record.LateMinutes)
	assert.Equal(t, 0, record.LatePenaltyMinutes)
}

func TestBuildDailyRecord_ConvertsToOrganizationTimezone(t *testing.T) {
	dc := dayContext()
	dc.Settings.Location = time.FixedZone("EET", 2*60*60)
	punches := []attendance.RawPunch{
		punch("emp-1", time.Date(2024, 3, 4, 7, 5, 0, 0, time.UTC)),
		punch("emp-1", time.Date(2024, 3, 4, 15, 5, 0, 0, time.UTC)),
	}

	record := BuildDailyRecord(testEmployee(), day("2024-03-04"), punches, dc)

	require.NotNil(t, record.TimeIn)
	assert.Equal(t, "09:05", record.TimeIn.Format("15:04"))
	assert.Equal(t, 0, record.LateMinutes)
	assert.Equal(t, 480, record.TotalMinutes)
}

func TestBuildDailyRecord_Flags(t *testing.T) {
	dc := dayContext()

	missing := BuildDailyRecord(testEmployee(), day("2024-03-04"), nil, dc)
	assert.True(t, missing.IsMissing)
	assert.Equal(t, attendance.DayStatusMissing, missing.Status())

	weekend := BuildDailyRecord(testEmployee(), day("2024-03-08"), nil, dc)
	assert.True(t, weekend.IsWeekend)
	assert.False(t, weekend.IsMissing)
	assert.Zero(t, weekend.TotalMinutes)

	dc.Calendar = NewCalendar(dc.Settings, nil, nil, []attendance.WfhRecord{{EmployeeID: "emp-1", Date: day("2024-03-05")}})
	wfh := BuildDailyRecord(testEmployee(), day("2024-03-05"), nil, dc)
	assert.True(t, wfh.IsWfh)
	assert.False(t, wfh.IsMissing)
}

func TestBuildDailyRecord_BillableHours(t *testing.T) {
	dc := dayContext()
	dc.Worklogs = []worklog.Worklog{
		{EmployeeID: "emp-1", Date: day("2024-03-04"), Hours: decimal.RequireFromString("2.5")},
		{EmployeeID: "emp-1", Date: day("2024-03-04"), Hours: decimal.RequireFromString("4")},
	}

	nonBillable := BuildDailyRecord(testEmployee(), day("2024-03-04"), nil, dc)
	assert.Nil(t, nonBillable.BillableHours)

	emp := testEmployee()
	emp.BillableHoursApplicable = true
	billable := BuildDailyRecord(emp, day("2024-03-04"), nil, dc)
	require.NotNil(t, billable.BillableHours)
	assert.Equal(t, "6.5", billable.BillableHours.String())

	dc.Worklogs = nil
	none := BuildDailyRecord(emp, day("2024-03-05"), nil, dc)
	require.NotNil(t, none.BillableHours)
	assert.True(t, none.BillableHours.IsZero())
}
