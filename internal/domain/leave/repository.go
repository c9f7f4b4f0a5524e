package leave

import (
	"context"
	"time"
)

// ApprovedLeaveReader is the query contract the leave module exposes.
type ApprovedLeaveReader interface {
	// ApprovedLeaveRecords returns approved leave overlapping [from, to] for the
	// given employees.
	ApprovedLeaveRecords(ctx context.Context, employeeIDs []string, from, to time.Time) ([]LeaveRecord, error)
}
