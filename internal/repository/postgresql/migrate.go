package postgresql

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/samerkamel/aura-sub004/internal/pkg/database"
)

//go:embed schema.sql
var schema string

// Migrate creates any missing attendance tables.
func Migrate(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	slog.Info("Database schema is up to date")
	return nil
}
