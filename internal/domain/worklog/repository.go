package worklog

import (
	"context"
	"time"
)

// WorklogSource is the read side of the external billable-hours sync.
type WorklogSource interface {
	ListBetween(ctx context.Context, employeeIDs []string, from, to time.Time) ([]Worklog, error)
}
