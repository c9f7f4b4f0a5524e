package attendance

import (
	"context"
	"time"
)

// Date ranges passed to repositories are inclusive civil dates unless stated
// otherwise.

type PunchRepository interface {
	// BulkInsert stores punches, silently skipping any (employee, timestamp)
	// pair that already exists. It returns the number of rows inserted.
	BulkInsert(ctx context.Context, punches []RawPunch) (int64, error)

	// Create stores a single punch. A duplicate timestamp yields ErrDuplicatePunch.
	Create(ctx context.Context, punch RawPunch) (RawPunch, error)

	// ListBetween returns punches with from <= punched_at < to, ordered by
	// employee then timestamp. An empty employeeIDs selects everyone.
	ListBetween(ctx context.Context, employeeIDs []string, from, to time.Time) ([]RawPunch, error)
}

type PermissionUsageRepository interface {
	// Create returns ErrPermissionAlreadyUsed when the employee already has a
	// usage on that date.
	Create(ctx context.Context, usage PermissionUsage) (PermissionUsage, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (PermissionUsage, error)
	Delete(ctx context.Context, employeeID string, date time.Time) error
	ListBetween(ctx context.Context, employeeIDs []string, from, to time.Time) ([]PermissionUsage, error)
	CountBetween(ctx context.Context, employeeID string, from, to time.Time) (int, error)

	// LockPeriod blocks other quota checks for the employee's payroll period
	// until the surrounding transaction ends. Call it inside WithinTransaction
	// before CountBetween.
	LockPeriod(ctx context.Context, employeeID string, periodStart time.Time) error
}

type PermissionOverrideRepository interface {
	// AddGrant records the audit entry and adds its amount to the running total
	// for (employee, period) in one step, returning the updated total.
	AddGrant(ctx context.Context, grant OverrideGrant) (PermissionOverride, error)
	Get(ctx context.Context, employeeID string, periodStart time.Time) (PermissionOverride, error)
	ListGrants(ctx context.Context, employeeID string, periodStart time.Time) ([]OverrideGrant, error)
}

type HolidayRepository interface {
	// Create returns ErrHolidayAlreadyExists when the date is taken.
	Create(ctx context.Context, holiday PublicHoliday) (PublicHoliday, error)
	Delete(ctx context.Context, id string) error
	ListBetween(ctx context.Context, from, to time.Time) ([]PublicHoliday, error)
}

type WfhRepository interface {
	// Create returns ErrWfhAlreadyExists when the employee already has a
	// record on that date.
	Create(ctx context.Context, record WfhRecord) (WfhRecord, error)
	Delete(ctx context.Context, id string) error
	ListBetween(ctx context.Context, employeeIDs []string, from, to time.Time) ([]WfhRecord, error)
	CountBetween(ctx context.Context, employeeID string, from, to time.Time) (int, error)

	// LockPeriod serializes WFH cap checks for the employee's payroll period,
	// like PermissionUsageRepository.LockPeriod.
	LockPeriod(ctx context.Context, employeeID string, periodStart time.Time) error
}
