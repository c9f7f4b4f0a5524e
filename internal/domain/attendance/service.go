package attendance

import (
	"context"
)

// AttendanceService computes daily records and summaries and owns punch intake.
type AttendanceService interface {
	// ListDailyRecords returns one record per employee per day, ordered by date
	// then employee name.
	ListDailyRecords(ctx context.Context, req ListDailyRecordsRequest) ([]DailyRecordResponse, error)

	EmployeeSummary(ctx context.Context, req EmployeeSummaryRequest) (EmployeeSummary, error)

	// OrganizationSummary breaks a year down per employee and payroll month.
	OrganizationSummary(ctx context.Context, req OrganizationSummaryRequest) (OrganizationSummary, error)

	// RecordPunches is the ingestion boundary for import collaborators.
	RecordPunches(ctx context.Context, req RecordPunchesRequest) (RecordPunchesResponse, error)

	// AddManualPunch records a single corrective sign-in or sign-out.
	AddManualPunch(ctx context.Context, req ManualPunchRequest) (PunchResponse, error)
}

type PermissionService interface {
	GrantPermission(ctx context.Context, req GrantPermissionRequest) (PermissionUsageResponse, error)
	RevokePermission(ctx context.Context, employeeID string, date string) error
	PermissionBalance(ctx context.Context, employeeID string, date string) (PermissionBalanceResponse, error)
	GrantExtraPermissions(ctx context.Context, req GrantExtraPermissionsRequest) (PermissionOverrideResponse, error)
	GetOverride(ctx context.Context, employeeID string, date string) (PermissionOverrideResponse, error)
}

type CalendarService interface {
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	ListHolidays(ctx context.Context, year int) ([]HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error

	CreateWfhRecord(ctx context.Context, req CreateWfhRecordRequest) (WfhRecordResponse, error)
	ListWfhRecords(ctx context.Context, req ListWfhRecordsRequest) ([]WfhRecordResponse, error)
	DeleteWfhRecord(ctx context.Context, id string) error
}
