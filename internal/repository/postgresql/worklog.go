package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/worklog"
	"github.com/samerkamel/aura-sub004/internal/pkg/database"
)

type worklogSource struct {
	db *database.DB
}

// ListBetween implements worklog.WorklogSource.
func (r *worklogSource) ListBetween(ctx context.Context, employeeIDs []string, from, to time.Time) ([]worklog.Worklog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, work_date, hours
		FROM worklogs
		WHERE work_date BETWEEN $1 AND $2
	`
	args := []interface{}{from, to}
	if len(employeeIDs) > 0 {
		query += ` AND employee_id = ANY($3)`
		args = append(args, employeeIDs)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list worklogs: %w", err)
	}
	defer rows.Close()

	var logs []worklog.Worklog
	for rows.Next() {
		var w worklog.Worklog
		if err := rows.Scan(&w.EmployeeID, &w.Date, &w.Hours); err != nil {
			return nil, fmt.Errorf("failed to scan worklog: %w", err)
		}
		logs = append(logs, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate worklogs: %w", err)
	}

	return logs, nil
}

func NewWorklogSource(db *database.DB) worklog.WorklogSource {
	return &worklogSource{db: db}
}
