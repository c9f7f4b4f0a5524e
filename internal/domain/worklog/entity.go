package worklog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Worklog is one synced time entry. Several entries may share a date.
type Worklog struct {
	EmployeeID string
	Date       time.Time
	Hours      decimal.Decimal
}
