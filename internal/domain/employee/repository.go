package employee

import (
	"context"
	"time"
)

// EmployeeRepository is the read-only query surface HR exposes to attendance.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// ListByIDs returns the employees that exist among ids, ordered by full name.
	ListByIDs(ctx context.Context, ids []string) ([]Employee, error)
	// ListEmployedBetween returns everyone whose employment overlaps [from, to],
	// regardless of current status, ordered by full name.
	ListEmployedBetween(ctx context.Context, from, to time.Time) ([]Employee, error)
}
