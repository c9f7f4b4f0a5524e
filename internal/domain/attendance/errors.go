package attendance

import (
	"errors"
	"fmt"
	"time"
)

// Attendance domain errors
var (
	// Punch errors
	ErrDuplicatePunch       = errors.New("a punch of this type already exists for this date")
	ErrPastDateNotAllowed   = errors.New("entries for past dates are not allowed")
	ErrFutureDateNotAllowed = errors.New("punches cannot be recorded in the future")

	// Permission errors
	ErrPermissionAlreadyUsed      = errors.New("a permission has already been used on this date")
	ErrPermissionQuotaExceeded    = errors.New("permission quota for this payroll period has been exhausted")
	ErrPermissionUsageNotFound    = errors.New("permission usage not found")
	ErrPermissionOverrideNotFound = errors.New("permission override not found")

	// Calendar errors
	ErrHolidayAlreadyExists = errors.New("a public holiday already exists on this date")
	ErrHolidayNotFound      = errors.New("public holiday not found")
	ErrWfhAlreadyExists     = errors.New("a WFH record already exists for this employee on this date")
	ErrWfhRecordNotFound    = errors.New("WFH record not found")
	ErrWfhQuotaExceeded     = errors.New("WFH days for this payroll period have been exhausted")

	// Report errors
	ErrRangeTooLarge = errors.New("date range is too large")
)

// DuplicatePunchError names the existing punch a manual entry collides with.
type DuplicatePunchError struct {
	Source     PunchSource
	ExistingAt time.Time
}

func (e *DuplicatePunchError) Error() string {
	kind := "check-in"
	if e.Source == PunchSourceSignOut {
		kind = "check-out"
	}
	return fmt.Sprintf("a %s record already exists for this date at %s", kind, e.ExistingAt.Format("15:04"))
}

func (e *DuplicatePunchError) Is(target error) bool {
	return target == ErrDuplicatePunch
}
