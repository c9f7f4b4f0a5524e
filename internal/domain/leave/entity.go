package leave

import (
	"time"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusWaitingApproval LeaveRequestStatus = "waiting_approval"
	LeaveRequestStatusApproved        LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected        LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled       LeaveRequestStatus = "cancelled"
)

// LeaveRecord is a leave request as seen by attendance. Dates are inclusive
// civil dates at midnight UTC.
type LeaveRecord struct {
	EmployeeID    string
	StartDate     time.Time
	EndDate       time.Time
	Status        LeaveRequestStatus
	LeavePolicyID string
	PolicyName    string
}

// Covers reports whether date falls inside the leave, ignoring time of day.
func (l LeaveRecord) Covers(date time.Time) bool {
	d := date.Format(time.DateOnly)
	return d >= l.StartDate.Format(time.DateOnly) && d <= l.EndDate.Format(time.DateOnly)
}

func (l LeaveRecord) IsApproved() bool {
	return l.Status == LeaveRequestStatusApproved
}
