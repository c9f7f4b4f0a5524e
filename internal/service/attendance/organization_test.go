package attendance

import (
	"testing"
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/employee"
	"github.com/samerkamel/aura-sub004/internal/domain/leave"
	"github.com/samerkamel/aura-sub004/internal/domain/rule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearWindow(t *testing.T) {
	w := YearWindow(2024, 1)
	assert.Equal(t, day("2024-01-01"), w.Start)
	assert.Equal(t, day("2024-12-31"), w.End)

	w = YearWindow(2024, 26)
	assert.Equal(t, day("2023-12-26"), w.Start)
	assert.Equal(t, day("2024-12-25"), w.End)
}

func TestOrganizationSummary_MonthlyBreakdown(t *testing.T) {
	summary := marchScenario("2024-03-15").OrganizationSummary(2024, []employee.Employee{testEmployee()}, day("2024-12-31"))

	require.Len(t, summary.Employees, 1)
	months := summary.Employees[0].Months
	require.Len(t, months, 12)

	march := months[2]
	assert.Equal(t, 3, march.Month)
	assert.Equal(t, "2024-03-01", march.PeriodStart)
	assert.Equal(t, "2024-03-31", march.PeriodEnd)
	assert.Equal(t, 21, march.WorkDays)
	assert.Equal(t, 19, march.AttendedDays)
	assert.Equal(t, 2, march.VacationDays)
	assert.Equal(t, 0, march.AbsentDays)
	assert.True(t, march.AttendanceHours.Equal(decimal.NewFromInt(152)))
	assert.True(t, march.ExpectedHours.Equal(decimal.NewFromInt(168)))

	feb := months[1]
	assert.Equal(t, 21, feb.WorkDays)
	assert.Equal(t, 0, feb.AttendedDays)
	assert.Equal(t, 21, feb.AbsentDays)
}

func TestOrganizationSummary_FutureMonthIsZero(t *testing.T) {
	summary := marchScenario("2024-03-15").OrganizationSummary(2024, []employee.Employee{testEmployee()}, day("2024-03-31"))

	april := summary.Employees[0].Months[3]
	assert.Equal(t, 4, april.Month)
	assert.Equal(t, "", april.PeriodStart)
	assert.Equal(t, 0, april.WorkDays)
	assert.True(t, april.ExpectedHours.IsZero())
}

func TestOrganizationSummary_ClipsToTermination(t *testing.T) {
	emp := testEmployee()
	terminated := day("2024-02-10")
	emp.TerminationDate = &terminated

	summary := marchScenario("2024-03-15").OrganizationSummary(2024, []employee.Employee{emp}, day("2024-12-31"))
	months := summary.Employees[0].Months

	assert.Equal(t, "2024-02-01", months[1].PeriodStart)
	assert.Equal(t, "2024-02-10", months[1].PeriodEnd)
	assert.Equal(t, 6, months[1].WorkDays)

	assert.Equal(t, "", months[2].PeriodStart)
	assert.Equal(t, 0, months[2].WorkDays)
}

func TestOrganizationSummary_AbsentDaysNeverNegative(t *testing.T) {
	settings := testSettings()
	snapshot := NewSnapshot(settings, rule.NewRuleSet(nil, nil, nil, nil), SnapshotData{
		Leaves:  []leave.LeaveRecord{approvedLeave("emp-1", "2024-03-20", "2024-03-21")},
		Punches: fullDayPunches("emp-1", "2024-03-01", "2024-03-31", settings.IsWeekend),
	})

	summary := snapshot.OrganizationSummary(2024, []employee.Employee{testEmployee()}, day("2024-03-31"))
	march := summary.Employees[0].Months[2]

	// Punches on the leave days do not make them attended.
	assert.Equal(t, 19, march.AttendedDays)
	assert.Equal(t, 2, march.VacationDays)
	assert.Equal(t, 0, march.AbsentDays)
}

func TestOrganizationSummary_Aggregates(t *testing.T) {
	summary := marchScenario("2024-03-15").OrganizationSummary(2024, []employee.Employee{testEmployee()}, day("2024-03-31"))
	agg := summary.Aggregates

	assert.Equal(t, 1, agg.EmployeeCount)
	assert.Equal(t, 65, agg.Totals.WorkDays)
	assert.Equal(t, 44, agg.Totals.AbsentDays)
	assert.Equal(t, "67.69", agg.AbsenteeismPercentage.String())
	assert.Equal(t, "29.23", agg.AttendancePercentage.String())
	assert.Equal(t, "3.67", agg.MonthlyAverage.AbsentDays.String())
	assert.Equal(t, "44", agg.YearlyAverage.AbsentDays.String())
}

func TestOrganizationSummary_NoEmployees(t *testing.T) {
	snapshot := NewSnapshot(testSettings(), rule.NewRuleSet(nil, nil, nil, nil), SnapshotData{})

	summary := snapshot.OrganizationSummary(2024, nil, day("2024-12-31"))

	assert.Empty(t, summary.Employees)
	assert.Equal(t, 0, summary.Aggregates.EmployeeCount)
	assert.True(t, summary.Aggregates.AttendancePercentage.IsZero())
}

func TestOrganizationSummary_TodayTimeOfDayIgnored(t *testing.T) {
	snapshot := NewSnapshot(testSettings(), rule.NewRuleSet(nil, nil, nil, nil), SnapshotData{})
	today := day("2024-03-01").Add(15 * time.Hour)

	summary := snapshot.OrganizationSummary(2024, []employee.Employee{testEmployee()}, today)

	march := summary.Employees[0].Months[2]
	assert.Equal(t, "2024-03-01", march.PeriodStart)
	assert.Equal(t, "2024-03-01", march.PeriodEnd)
	assert.Equal(t, 0, march.WorkDays)
}
