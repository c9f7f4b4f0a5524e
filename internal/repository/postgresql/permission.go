package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/pkg/database"
)

type permissionUsageRepository struct {
	db *database.DB
}

// Create implements attendance.PermissionUsageRepository.
func (r *permissionUsageRepository) Create(ctx context.Context, usage attendance.PermissionUsage) (attendance.PermissionUsage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO permission_usages (employee_id, date, minutes_used, granted_by, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		usage.EmployeeID,
		usage.Date,
		usage.MinutesUsed,
		usage.GrantedBy,
		usage.Reason,
	).Scan(&usage.ID, &usage.CreatedAt)

	if err != nil {
		if isUniqueViolation(err, "uq_permission_usages_employee_date") {
			return attendance.PermissionUsage{}, attendance.ErrPermissionAlreadyUsed
		}
		return attendance.PermissionUsage{}, fmt.Errorf("failed to create permission usage: %w", err)
	}

	return usage, nil
}

// GetByEmployeeAndDate implements attendance.PermissionUsageRepository.
func (r *permissionUsageRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.PermissionUsage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, minutes_used, granted_by, reason, created_at
		FROM permission_usages
		WHERE employee_id = $1 AND date = $2
	`

	var u attendance.PermissionUsage
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&u.ID, &u.EmployeeID, &u.Date, &u.MinutesUsed, &u.GrantedBy, &u.Reason, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.PermissionUsage{}, attendance.ErrPermissionUsageNotFound
		}
		return attendance.PermissionUsage{}, fmt.Errorf("failed to get permission usage: %w", err)
	}

	return u, nil
}

// Delete implements attendance.PermissionUsageRepository.
func (r *permissionUsageRepository) Delete(ctx context.Context, employeeID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM permission_usages WHERE employee_id = $1 AND date = $2`

	commandTag, err := q.Exec(ctx, query, employeeID, date)
	if err != nil {
		return fmt.Errorf("failed to delete permission usage: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrPermissionUsageNotFound
	}

	return nil
}

// ListBetween implements attendance.PermissionUsageRepository.
func (r *permissionUsageRepository) ListBetween(ctx context.Context, employeeIDs []string, from, to time.Time) ([]attendance.PermissionUsage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, minutes_used, granted_by, reason, created_at
		FROM permission_usages
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
		return nil, fmt.Errorf("failed to list permission usages: %w", err)
	}
	defer rows.Close()

	var usages []attendance.PermissionUsage
	for rows.Next() {
		var u attendance.PermissionUsage
		if err := rows.Scan(&u.ID, &u.EmployeeID, &u.Date, &u.MinutesUsed, &u.GrantedBy, &u.Reason, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan permission usage: %w", err)
		}
		usages = append(usages, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate permission usages: %w", err)
	}

	return usages, nil
}

// CountBetween implements attendance.PermissionUsageRepository.
func (r *permissionUsageRepository) CountBetween(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM permission_usages
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count permission usages: %w", err)
	}

	return count, nil
}

// LockPeriod implements attendance.PermissionUsageRepository.
func (r *permissionUsageRepository) LockPeriod(ctx context.Context, employeeID string, periodStart time.Time) error {
	return lockEmployeePeriod(ctx, r.db, lockScopePermissionQuota, employeeID, periodStart)
}

func NewPermissionUsageRepository(db *database.DB) attendance.PermissionUsageRepository {
	return &permissionUsageRepository{db: db}
}

type permissionOverrideRepository struct {
	db *database.DB
}

// AddGrant implements attendance.PermissionOverrideRepository.
func (r *permissionOverrideRepository) AddGrant(ctx context.Context, grant attendance.OverrideGrant) (attendance.PermissionOverride, error) {
	var override attendance.PermissionOverride

	err := NewTransactor(r.db).WithinTransaction(ctx, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		insertGrant := `
			INSERT INTO permission_override_grants (employee_id, period_start, amount, reason, granted_by)
			VALUES ($1, $2, $3, $4, $5)
		`
		if _, err := q.Exec(ctx, insertGrant,
			grant.EmployeeID, grant.PeriodStart, grant.Amount, grant.Reason, grant.GrantedBy,
		); err != nil {
			return fmt.Errorf("failed to insert override grant: %w", err)
		}

		upsertTotal := `
			INSERT INTO permission_overrides (employee_id, period_start, extra_permissions_granted)
			VALUES ($1, $2, $3)
			ON CONFLICT (employee_id, period_start) DO UPDATE SET
				extra_permissions_granted = permission_overrides.extra_permissions_granted + EXCLUDED.extra_permissions_granted,
				updated_at = NOW()
			RETURNING employee_id, period_start, extra_permissions_granted, updated_at
		`
		if err := q.QueryRow(ctx, upsertTotal, grant.EmployeeID, grant.PeriodStart, grant.Amount).Scan(
			&override.EmployeeID, &override.PeriodStart, &override.ExtraPermissionsGranted, &override.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to update override total: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.PermissionOverride{}, err
	}

	return override, nil
}

// Get implements attendance.PermissionOverrideRepository.
func (r *permissionOverrideRepository) Get(ctx context.Context, employeeID string, periodStart time.Time) (attendance.PermissionOverride, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, period_start, extra_permissions_granted, updated_at
		FROM permission_overrides
		WHERE employee_id = $1 AND period_start = $2
	`

	var o attendance.PermissionOverride
	err := q.QueryRow(ctx, query, employeeID, periodStart).Scan(
		&o.EmployeeID, &o.PeriodStart, &o.ExtraPermissionsGranted, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.PermissionOverride{}, attendance.ErrPermissionOverrideNotFound
		}
		return attendance.PermissionOverride{}, fmt.Errorf("failed to get permission override: %w", err)
	}

	return o, nil
}

// ListGrants implements attendance.PermissionOverrideRepository.
func (r *permissionOverrideRepository) ListGrants(ctx context.Context, employeeID string, periodStart time.Time) ([]attendance.OverrideGrant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, period_start, amount, reason, granted_by, granted_at
		FROM permission_override_grants
		WHERE employee_id = $1 AND period_start = $2
		ORDER BY granted_at, id
	`

	rows, err := q.Query(ctx, query, employeeID, periodStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list override grants: %w", err)
	}
	defer rows.Close()

	var grants []attendance.OverrideGrant
	for rows.Next() {
		var g attendance.OverrideGrant
		if err := rows.Scan(&g.ID, &g.EmployeeID, &g.PeriodStart, &g.Amount, &g.Reason, &g.GrantedBy, &g.GrantedAt); err != nil {
			return nil, fmt.Errorf("failed to scan override grant: %w", err)
		}
		grants = append(grants, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate override grants: %w", err)
	}

	return grants, nil
}

func NewPermissionOverrideRepository(db *database.DB) attendance.PermissionOverrideRepository {
	return &permissionOverrideRepository{db: db}
}
