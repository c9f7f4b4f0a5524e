package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/leave"
	"github.com/samerkamel/aura-sub004/internal/pkg/database"
)

type approvedLeaveReader struct {
	db *database.DB
}

// ApprovedLeaveRecords implements leave.ApprovedLeaveReader.
func (r *approvedLeaveReader) ApprovedLeaveRecords(ctx context.Context, employeeIDs []string, from, to time.Time) ([]leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.employee_id, lr.start_date, lr.end_date, lr.status, lr.leave_type_id, lt.name
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE lr.status = $1
			AND lr.start_date <= $3
			AND lr.end_date >= $2
	`
	args := []interface{}{leave.LeaveRequestStatusApproved, from, to}
	if len(employeeIDs) > 0 {
		query += ` AND lr.employee_id = ANY($4)`
		args = append(args, employeeIDs)
	}
	query += ` ORDER BY lr.employee_id, lr.start_date`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
	}
	defer rows.Close()

	var records []leave.LeaveRecord
	for rows.Next() {
		var rec leave.LeaveRecord
		if err := rows.Scan(&rec.EmployeeID, &rec.StartDate, &rec.EndDate, &rec.Status, &rec.LeavePolicyID, &rec.PolicyName); err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave records: %w", err)
	}

	return records, nil
}

func NewApprovedLeaveReader(db *database.DB) leave.ApprovedLeaveReader {
	return &approvedLeaveReader{db: db}
}
