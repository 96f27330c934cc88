package repository

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"alfacard_miniapp/pkg/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Migrate executes the embedded SQL files in lexicographical order,
// each in its own transaction.
func (r *Repository) Migrate(ctx context.Context, filesystem fs.FS) error {
	entries, err := fs.ReadDir(filesystem, ".")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		sqlBytes, err := fs.ReadFile(filesystem, entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}

		if len(sqlBytes) == 0 {
			continue
		}

		err = r.Transaction(ctx, func(tx *sqlx.Tx) error {
			_, execErr := tx.ExecContext(ctx, string(sqlBytes))
			return execErr
		})
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}

		logger.Logger().Info("Applied migration", zap.String("file", entry.Name()))
	}

	return nil
}
