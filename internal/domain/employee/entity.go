package employee

import (
	"time"
)

// Employee is the slice of the HR record the attendance engine reads.
type Employee struct {
	ID                      string
	FullName                string
	EmploymentStatus        EmploymentStatus
	StartDate               time.Time
	TerminationDate         *time.Time
	BillableHoursApplicable bool
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// EmploymentWindow returns the inclusive dates the employee was on payroll,
// capped at limit. ok is false when the window is empty.
func (e Employee) EmploymentWindow(limit time.Time) (start, end time.Time, ok bool) {
	start = e.StartDate
	end = limit
	if e.TerminationDate != nil && e.TerminationDate.Before(end) {
		end = *e.TerminationDate
	}
	return start, end, !end.Before(start)
}

// EmployedBetween reports whether the employment window overlaps [from, to].
func (e Employee) EmployedBetween(from, to time.Time) bool {
	if e.StartDate.After(to) {
		return false
	}
	if e.TerminationDate != nil && e.TerminationDate.Before(from) {
		return false
	}
	return true
}
