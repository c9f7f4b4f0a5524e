package permission

import (
	"context"
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

const testEmployeeID = "0190a5b2-1111-7000-8000-000000000001"

type fixture struct {
	svc   attendance.PermissionService
	rules rule.RuleService
}

func newFixture(t *testing.T, cycleStartDay int) fixture {
	t.Helper()
	store := memory.NewStore()
	store.PutEmployee(employee.Employee{
		ID:               testEmployeeID,
		FullName:         "Hana Mostafa",
		EmploymentStatus: employee.EmploymentStatusActive,
		StartDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	rules := rulesvc.NewRuleService(memory.NewRuleConfigRepository(store), memory.NewLatePenaltyTierRepository(store))
	settings := settingsvc.NewSettingService(memory.NewSettingRepository(store), memory.NewTransactor(store), setting.Settings{
		WeekendDays:          []time.Weekday{time.Friday, time.Saturday},
		WorkHoursPerDay:      decimal.NewFromInt(8),
		WfhAttendanceHours:   decimal.NewFromInt(8),
		PayrollCycleStartDay: cycleStartDay,
		Location:             time.UTC,
	})

	return fixture{
		svc: NewPermissionService(
			memory.NewPermissionUsageRepository(store),
			memory.NewPermissionOverrideRepository(store),
			memory.NewEmployeeRepository(store),
			rules,
			settings,
			memory.NewTransactor(store),
		),
		rules: rules,
	}
}

func (f fixture) capPermissions(t *testing.T, limit int) {
	t.Helper()
	_, err := f.rules.UpdatePermissionConfig(context.Background(), rule.UpdatePermissionConfigRequest{
		MinutesPerPermission: 120,
		MaxPerMonth:          &limit,
	})
	require.NoError(t, err)
}

func TestPermissionService_GrantPermission(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)

	resp, err := f.svc.GrantPermission(ctx, attendance.GrantPermissionRequest{
		EmployeeID: testEmployeeID,
		Date:       "2024-03-10",
		Reason:     "Doctor appointment",
		GrantedBy:  "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", resp.Date)
	assert.Equal(t, rule.DefaultMinutesPerPermission, resp.MinutesUsed)
	require.NotNil(t, resp.GrantedBy)
	assert.Equal(t, "admin", *resp.GrantedBy)

	_, err = f.svc.GrantPermission(ctx, attendance.GrantPermissionRequest{EmployeeID: testEmployeeID, Date: "2024-03-10"})
	assert.ErrorIs(t, err, attendance.ErrPermissionAlreadyUsed)
}

func TestPermissionService_GrantPermissionUnknownEmployee(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.svc.GrantPermission(context.Background(), attendance.GrantPermissionRequest{
		EmployeeID: "0190a5b2-1111-7000-8000-0000000000ff",
		Date:       "2024-03-10",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestPermissionService_QuotaAndOverride(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)
	f.capPermissions(t, 1)

	_, err := f.svc.GrantPermission(ctx, attendance.GrantPermissionRequest{EmployeeID: testEmployeeID, Date: "2024-03-10"})
	require.NoError(t, err)

	_, err = f.svc.GrantPermission(ctx, attendance.GrantPermissionRequest{EmployeeID: testEmployeeID, Date: "2024-03-11"})
	assert.ErrorIs(t, err, attendance.ErrPermissionQuotaExceeded)

	// A different payroll period has its own quota.
	_, err = f.svc.GrantPermission(ctx, attendance.GrantPermissionRequest{EmployeeID: testEmployeeID, Date: "2024-04-02"})
	require.NoError(t, err)

	override, err := f.svc.GrantExtraPermissions(ctx, attendance.GrantExtraPermissionsRequest{
		EmployeeID: testEmployeeID,
		Date:       "2024-03-20",
		Amount:     1,
		Reason:     "Family matter",
		GrantedBy:  "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", override.PeriodStart)
	assert.Equal(t, 1, override.ExtraPermissionsGranted)
	assert.Len(t, override.Grants, 1)

	_, err = f.svc.GrantPermission(ctx, attendance.GrantPermissionRequest{EmployeeID: testEmployeeID, Date: "2024-03-11"})
	require.NoError(t, err)

	balance, err := f.svc.PermissionBalance(ctx, testEmployeeID, "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2, balance.Used)
	assert.Equal(t, 1, balance.ExtraGranted)
	require.NotNil(t, balance.Allowed)
	assert.Equal(t, 2, *balance.Allowed)
	assert.Equal(t, 0, *balance.Remaining)
}

func TestPermissionService_OverridesAccumulate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 26)

	for _, amount := range []int{1, 2} {
		_, err := f.svc.GrantExtraPermissions(ctx, attendance.GrantExtraPermissionsRequest{
			EmployeeID: testEmployeeID,
			Date:       "2024-03-10",
			Amount:     amount,
			Reason:     "Project deadline",
		})
		require.NoError(t, err)
	}

	override, err := f.svc.GetOverride(ctx, testEmployeeID, "2024-03-25")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-26", override.PeriodStart)
	assert.Equal(t, 3, override.ExtraPermissionsGranted)
	assert.Len(t, override.Grants, 2)

	next, err := f.svc.GetOverride(ctx, testEmployeeID, "2024-03-26")
	require.NoError(t, err)
	assert.Equal(t, 0, next.ExtraPermissionsGranted)
	assert.Empty(t, next.Grants)
}

func TestPermissionService_BalanceUnbounded(t *testing.T) {
	f := newFixture(t, 1)

	balance, err := f.svc.PermissionBalance(context.Background(), testEmployeeID, "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", balance.PeriodStart)
	assert.Equal(t, "2024-03-31", balance.PeriodEnd)
	assert.Nil(t, balance.Allowed)
	assert.Nil(t, balance.Remaining)
}

func TestPermissionService_RevokePermission(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)

	_, err := f.svc.GrantPermission(ctx, attendance.GrantPermissionRequest{EmployeeID: testEmployeeID, Date: "2024-03-10"})
	require.NoError(t, err)

	require.NoError(t, f.svc.RevokePermission(ctx, testEmployeeID, "2024-03-10"))
	assert.ErrorIs(t, f.svc.RevokePermission(ctx, testEmployeeID, "2024-03-10"), attendance.ErrPermissionUsageNotFound)
	assert.Error(t, f.svc.RevokePermission(ctx, testEmployeeID, "10-03-2024"))
}
