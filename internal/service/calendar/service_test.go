package calendar

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/domain/employee"
	"github.com/samerkamel/aura-sub004/internal/domain/rule"
	"github.com/samerkamel/aura-sub004/internal/domain/setting"
	"github.com/samerkamel/aura-sub004/internal/repository/memory"
	rulesvc "github.com/samerkamel/aura-sub004/internal/service/rule"
	settingsvc "github.com/samerkamel/aura-sub004/internal/service/setting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = "0190a5b2-2222-7000-8000-000000000001"

type fixture struct {
	svc      *CalendarServiceImpl
	rules    rule.RuleService
	settings setting.SettingService
}

// newFixture pins the clock to 2024-03-10 10:00 UTC.
func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	store.PutEmployee(employee.Employee{
		ID:               testEmployeeID,
		FullName:         "Omar Said",
		EmploymentStatus: employee.EmploymentStatusActive,
		StartDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	rules := rulesvc.NewRuleService(memory.NewRuleConfigRepository(store), memory.NewLatePenaltyTierRepository(store))
	settings := settingsvc.NewSettingService(memory.NewSettingRepository(store), memory.NewTransactor(store), setting.Settings{
		WeekendDays:          []time.Weekday{time.Friday, time.Saturday},
		WorkHoursPerDay:      decimal.NewFromInt(8),
		WfhAttendanceHours:   decimal.NewFromInt(8),
		PayrollCycleStartDay: 1,
		Location:             time.UTC,
	})

	svc := NewCalendarService(
		memory.NewHolidayRepository(store),
		memory.NewWfhRepository(store),
		memory.NewEmployeeRepository(store),
		rules,
		settings,
		memory.NewTransactor(store),
	).(*CalendarServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC) }

	return fixture{svc: svc, rules: rules, settings: settings}
}

func TestCalendarService_Holidays(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	eid, err := f.svc.CreateHoliday(ctx, attendance.CreateHolidayRequest{Date: "2024-04-10", Name: "Eid al-Fitr"})
	require.NoError(t, err)
	assert.Equal(t, "2024-04-10", eid.Date)

	_, err = f.svc.CreateHoliday(ctx, attendance.CreateHolidayRequest{Date: "2024-04-10", Name: "Duplicate"})
	assert.ErrorIs(t, err, attendance.ErrHolidayAlreadyExists)

	_, err = f.svc.CreateHoliday(ctx, attendance.CreateHolidayRequest{Date: "2025-01-07", Name: "Christmas"})
	require.NoError(t, err)

	holidays, err := f.svc.ListHolidays(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Eid al-Fitr", holidays[0].Name)

	_, err = f.svc.ListHolidays(ctx, 1990)
	assert.Error(t, err)

	require.NoError(t, f.svc.DeleteHoliday(ctx, eid.ID))
	assert.ErrorIs(t, f.svc.DeleteHoliday(ctx, eid.ID), attendance.ErrHolidayNotFound)
	assert.ErrorIs(t, f.svc.DeleteHoliday(ctx, "abc"), attendance.ErrHolidayNotFound)
}

func TestCalendarService_CreateWfhRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	notes := "Internet installation"
	created, err := f.svc.CreateWfhRecord(ctx, attendance.CreateWfhRecordRequest{
		EmployeeID: testEmployeeID,
		Date:       "2024-03-10",
		Notes:      &notes,
		CreatedBy:  "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", created.Date)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, "admin", *created.CreatedBy)

	_, err = f.svc.CreateWfhRecord(ctx, attendance.CreateWfhRecordRequest{EmployeeID: testEmployeeID, Date: "2024-03-10"})
	assert.ErrorIs(t, err, attendance.ErrWfhAlreadyExists)

	_, err = f.svc.CreateWfhRecord(ctx, attendance.CreateWfhRecordRequest{
		EmployeeID: "0190a5b2-2222-7000-8000-0000000000ff",
		Date:       "2024-03-12",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	records, err := f.svc.ListWfhRecords(ctx, attendance.ListWfhRecordsRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-31",
	})
	require.NoError(t, err)
	assert.Len(t, records, 1)

	require.NoError(t, f.svc.DeleteWfhRecord(ctx, created.ID))
	assert.ErrorIs(t, f.svc.DeleteWfhRecord(ctx, created.ID), attendance.ErrWfhRecordNotFound)
}

func TestCalendarService_WfhPastDateGate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.CreateWfhRecord(ctx, attendance.CreateWfhRecordRequest{EmployeeID: testEmployeeID, Date: "2024-03-05"})
	assert.ErrorIs(t, err, attendance.ErrPastDateNotAllowed)

	allow := true
	_, err = f.settings.UpdateSettings(ctx, setting.UpdateSettingsRequest{AllowPastDateRequests: &allow})
	require.NoError(t, err)

	_, err = f.svc.CreateWfhRecord(ctx, attendance.CreateWfhRecordRequest{EmployeeID: testEmployeeID, Date: "2024-03-05"})
	assert.NoError(t, err)
}

func TestCalendarService_WfhQuota(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.rules.UpdateWfhPolicy(ctx, rule.UpdateWfhPolicyRequest{MaxDaysPerMonth: 1, AttendancePercentage: decimal.NewFromInt(100)})
	require.NoError(t, err)

	_, err = f.svc.CreateWfhRecord(ctx, attendance.CreateWfhRecordRequest{EmployeeID: testEmployeeID, Date: "2024-03-12"})
	require.NoError(t, err)

	_, err = f.svc.CreateWfhRecord(ctx, attendance.CreateWfhRecordRequest{EmployeeID: testEmployeeID, Date: "2024-03-13"})
	assert.ErrorIs(t, err, attendance.ErrWfhQuotaExceeded)

	_, err = f.svc.CreateWfhRecord(ctx, attendance.CreateWfhRecordRequest{EmployeeID: testEmployeeID, Date: "2024-04-01"})
	assert.NoError(t, err)
}

func TestCalendarService_ConcurrentWfhRespectsCap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.rules.UpdateWfhPolicy(ctx, rule.UpdateWfhPolicyRequest{MaxDaysPerMonth: 2, AttendancePercentage: decimal.NewFromInt(100)})
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for day := 11; day <= 20; day++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			_, err := f.svc.CreateWfhRecord(ctx, attendance.CreateWfhRecordRequest{
				EmployeeID: testEmployeeID,
				Date:       fmt.Sprintf("2024-03-%02d", day),
			})
			if err != nil {
				assert.ErrorIs(t, err, attendance.ErrWfhQuotaExceeded)
				return
			}
			mu.Lock()
			created++
			mu.Unlock()
		}(day)
	}
	wg.Wait()

	assert.Equal(t, 2, created)
}
