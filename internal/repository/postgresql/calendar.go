package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

// Create implements attendance.HolidayRepository.
func (r *holidayRepository) Create(ctx context.Context, holiday attendance.PublicHoliday) (attendance.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO public_holidays (date, name)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, holiday.Date, holiday.Name).Scan(&holiday.ID, &holiday.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return attendance.PublicHoliday{}, attendance.ErrHolidayAlreadyExists
		}
		return attendance.PublicHoliday{}, fmt.Errorf("failed to create public holiday: %w", err)
	}

	return holiday, nil
}

// Delete implements attendance.HolidayRepository.
func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM public_holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete public holiday: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrHolidayNotFound
	}

	return nil
}

// ListBetween implements attendance.HolidayRepository.
func (r *holidayRepository) ListBetween(ctx context.Context, from, to time.Time) ([]attendance.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, name, created_at
		FROM public_holidays
		WHERE date BETWEEN $1 AND $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list public holidays: %w", err)
	}
	defer rows.Close()

	var holidays []attendance.PublicHoliday
	for rows.Next() {
		var h attendance.PublicHoliday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan public holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate public holidays: %w", err)
	}

	return holidays, nil
}

func NewHolidayRepository(db *database.DB) attendance.HolidayRepository {
	return &holidayRepository{db: db}
}

type wfhRepository struct {
	db *database.DB
}

// Create implements attendance.WfhRepository.
func (r *wfhRepository) Create(ctx context.Context, record attendance.WfhRecord) (attendance.WfhRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wfh_records (employee_id, date, notes, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.Date,
		record.Notes,
		record.CreatedBy,
	).Scan(&record.ID, &record.CreatedAt)

	if err != nil {
		if isUniqueViolation(err, "uq_wfh_records_employee_date") {
			return attendance.WfhRecord{}, attendance.ErrWfhAlreadyExists
		}
		return attendance.WfhRecord{}, fmt.Errorf("failed to create WFH record: %w", err)
	}

	return record, nil
}

// Delete implements attendance.WfhRepository.
func (r *wfhRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM wfh_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete WFH record: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrWfhRecordNotFound
	}

	return nil
}

// ListBetween implements attendance.WfhRepository.
func (r *wfhRepository) ListBetween(ctx context.Context, employeeIDs []string, from, to time.Time) ([]attendance.WfhRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, notes, created_by, created_at
		FROM wfh_records
		WHERE date BETWEEN $1 AND $2
	`
	args := []interface{}{from, to}
	if len(employeeIDs) > 0 {
		query += ` AND employee_id = ANY($3)`
		args = append(args, employeeIDs)
	}
	query += ` ORDER BY date, employee_id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list WFH records: %w", err)
	}
	defer rows.Close()

	var records []attendance.WfhRecord
	for rows.Next() {
		var w attendance.WfhRecord
		if err := rows.Scan(&w.ID, &w.EmployeeID, &w.Date, &w.Notes, &w.CreatedBy, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan WFH record: %w", err)
		}
		records = append(records, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate WFH records: %w", err)
	}

	return records, nil
}

// CountBetween implements attendance.WfhRepository.
func (r *wfhRepository) CountBetween(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM wfh_records
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count WFH records: %w", err)
	}

	return count, nil
}

// LockPeriod implements attendance.WfhRepository.
func (r *wfhRepository) LockPeriod(ctx context.Context, employeeID string, periodStart time.Time) error {
	return lockEmployeePeriod(ctx, r.db, lockScopeWfhQuota, employeeID, periodStart)
}

func NewWfhRepository(db *database.DB) attendance.WfhRepository {
	return &wfhRepository{db: db}
}
