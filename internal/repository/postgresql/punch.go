package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/pkg/database"
)

type punchRepository struct {
	db *database.DB
}

// BulkInsert implements attendance.PunchRepository.
func (r *punchRepository) BulkInsert(ctx context.Context, punches []attendance.RawPunch) (int64, error) {
	if len(punches) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_punches (employee_id, punched_at, source, created_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, punched_at) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, p := range punches {
		batch.Queue(query, p.EmployeeID, p.PunchedAt.Truncate(time.Second), p.Source, p.CreatedBy)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for range punches {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("failed to insert punch: %w", err)
		}
		inserted += tag.RowsAffected()
	}

	return inserted, nil
}

// Create implements attendance.PunchRepository.
func (r *punchRepository) Create(ctx context.Context, punch attendance.RawPunch) (attendance.RawPunch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_punches (employee_id, punched_at, source, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	punch.PunchedAt = punch.PunchedAt.Truncate(time.Second)
	err := q.QueryRow(ctx, query,
		punch.EmployeeID,
		punch.PunchedAt,
		punch.Source,
		punch.CreatedBy,
	).Scan(&punch.ID, &punch.CreatedAt)

	if err != nil {
		if isUniqueViolation(err, "uq_attendance_punches_employee_time") {
			return attendance.RawPunch{}, attendance.ErrDuplicatePunch
		}
		return attendance.RawPunch{}, fmt.Errorf("failed to create punch: %w", err)
	}

	return punch, nil
}

// ListBetween implements attendance.PunchRepository.
func (r *punchRepository) ListBetween(ctx context.Context, employeeIDs []string, from, to time.Time) ([]attendance.RawPunch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, punched_at, source, created_by, created_at
		FROM attendance_punches
		WHERE punched_at >= $1 AND punched_at < $2
	`
	args := []interface{}{from, to}
	if len(employeeIDs) > 0 {
		query += ` AND employee_id = ANY($3)`
		args = append(args, employeeIDs)
	}
	query += ` ORDER BY employee_id, punched_at`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	var punches []attendance.RawPunch
	for rows.Next() {
		var p attendance.RawPunch
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.PunchedAt, &p.Source, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punches: %w", err)
	}

	return punches, nil
}

func NewPunchRepository(db *database.DB) attendance.PunchRepository {
	return &punchRepository{db: db}
}
