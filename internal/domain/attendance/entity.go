package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type PunchSource string

const (
	PunchSourceSignIn      PunchSource = "sign_in"
	PunchSourceSignOut     PunchSource = "sign_out"
	PunchSourceUnspecified PunchSource = "unspecified"
)

func (s PunchSource) IsValid() bool {
	switch s {
	case PunchSourceSignIn, PunchSourceSignOut, PunchSourceUnspecified:
		return true
	}
	return false
}

// RawPunch is an immutable timestamp produced by an import or a manual entry.
// PunchedAt is organization local time with second precision.
type RawPunch struct {
	ID         string
	EmployeeID string
	PunchedAt  time.Time
	Source     PunchSource
	CreatedBy  *string
	CreatedAt  time.Time
}

type DayType string

const (
	DayTypeWeekend DayType = "weekend"
	DayTypeHoliday DayType = "holiday"
	DayTypeLeave   DayType = "leave"
	DayTypeWfh     DayType = "wfh"
	DayTypeWorking DayType = "working"
)

type DayStatus string

const (
	DayStatusWeekend DayStatus = "weekend"
	DayStatusHoliday DayStatus = "holiday"
	DayStatusLeave   DayStatus = "leave"
	DayStatusWfh     DayStatus = "wfh"
	DayStatusMissing DayStatus = "missing"
	DayStatusPresent DayStatus = "present"
)

// DailyRecord is computed on demand for one employee and one date.
type DailyRecord struct {
	EmployeeID         string
	EmployeeName       string
	Date               time.Time
	TimeIn             *time.Time
	TimeOut            *time.Time
	TotalMinutes       int
	PermissionMinutes  int
	LateMinutes        int
	LatePenaltyMinutes int
	IsWeekend          bool
	IsHoliday          bool
	IsOnLeave          bool
	IsWfh              bool
	IsMissing          bool
	BillableHours      *decimal.Decimal
}

func (r DailyRecord) HasAttendance() bool {
	return r.TimeIn != nil || r.TimeOut != nil
}

// Status resolves the flags to the single status that describes the day.
func (r DailyRecord) Status() DayStatus {
	switch {
	case r.IsWeekend:
		return DayStatusWeekend
	case r.IsHoliday:
		return DayStatusHoliday
	case r.IsOnLeave:
		return DayStatusLeave
	case r.IsWfh:
		return DayStatusWfh
	case r.IsMissing:
		return DayStatusMissing
	}
	return DayStatusPresent
}

type PermissionUsage struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	MinutesUsed int
	GrantedBy   *string
	Reason      string
	CreatedAt   time.Time
}

// PermissionOverride is the running total of extra permissions granted to an
// employee for one payroll period.
type PermissionOverride struct {
	EmployeeID              string
	PeriodStart             time.Time
	ExtraPermissionsGranted int
	UpdatedAt               time.Time
}

// OverrideGrant is one append-only audit entry behind a PermissionOverride.
type OverrideGrant struct {
	ID          string
	EmployeeID  string
	PeriodStart time.Time
	Amount      int
	Reason      string
	GrantedBy   *string
	GrantedAt   time.Time
}

type PublicHoliday struct {
	ID        string
	Date      time.Time
	Name      string
	CreatedAt time.Time
}

type WfhRecord struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Notes      *string
	CreatedBy  *string
	CreatedAt  time.Time
}
