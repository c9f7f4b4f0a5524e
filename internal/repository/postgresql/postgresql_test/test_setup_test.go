package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/samerkamel/aura-sub004/internal/pkg/database"
	"github.com/samerkamel/aura-sub004/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup wraps a migrated test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema. The
// calling test is skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	require.NoError(t, postgresql.Migrate(ctx, db))

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)

	return setup
}

// TruncateAllTables removes every row the tests may have written.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"attendance_punches",
		"permission_usages",
		"permission_override_grants",
		"permission_overrides",
		"public_holidays",
		"wfh_records",
		"attendance_rule_configs",
		"late_penalty_tiers",
		"attendance_settings",
		"worklogs",
		"leave_requests",
		"leave_types",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// InsertEmployee seeds the HR read model.
func (t *TestDatabaseSetup) InsertEmployee(ctx context.Context, name, hireDate string, billable bool) (string, error) {
	var id string
	err := t.DB.QueryRow(ctx, `
		INSERT INTO employees (full_name, hire_date, billable_hours_applicable)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, hireDate, billable).Scan(&id)
	return id, err
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
