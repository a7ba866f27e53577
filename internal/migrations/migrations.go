package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alimgiray/inbox/pkg/database"
	"github.com/alimgiray/inbox/pkg/logger"
)

const ledgerSchema = `
	CREATE TABLE IF NOT EXISTS _migrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)
`

// Migration is a named schema change recorded in the _migrations ledger
type Migration struct {
	Name        string
	Description string
	Up          func(ctx context.Context, tx *sql.Tx) error
	Down        func(ctx context.Context, tx *sql.Tx) error
}

// Status reports whether a migration has been applied
type Status struct {
	Name        string
	Description string
	Applied     bool
	AppliedAt   string
}

type Runner struct {
	store      *database.Store
	migrations []Migration
}

// NewRunner creates a runner for the given migrations, or for the default
// set when none are passed.
func NewRunner(store *database.Store, migrations ...Migration) *Runner {
	if len(migrations) == 0 {
		migrations = Default()
	}
	return &Runner{store: store, migrations: migrations}
}

// Default returns the migrations shipped with the service, in order
func Default() []Migration {
	return []Migration{createEmailsTable}
}

// Up applies every migration not yet recorded in the ledger and returns the
// names of those it applied. Each migration and its ledger row are committed
// together.
func (r *Runner) Up(ctx context.Context) ([]string, error) {
	var applied []string

	err := r.store.With(ctx, func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, ledgerSchema); err != nil {
			return fmt.Errorf("failed to create migrations ledger: %w", err)
		}

		for _, m := range r.migrations {
			done, err := isApplied(ctx, db, m.Name)
			if err != nil {
				return err
			}
			if done {
				logger.WithField("migration", m.Name).Info("Migration already applied. Skipping.")
				continue
			}

			if err := inTx(ctx, db, func(tx *sql.Tx) error {
				if err := m.Up(ctx, tx); err != nil {
					return err
				}
				_, err := tx.ExecContext(ctx, `INSERT INTO _migrations (name) VALUES (?)`, m.Name)
				return err
			}); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", m.Name, err)
			}

			logger.WithField("migration", m.Name).Info("Migration applied successfully")
			applied = append(applied, m.Name)
		}
		return nil
	})

	return applied, err
}

// Down reverts every migration in reverse order and removes its ledger row.
// Reverting is destructive: dropped tables are not backed up.
func (r *Runner) Down(ctx context.Context) error {
	return r.store.With(ctx, func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, ledgerSchema); err != nil {
			return fmt.Errorf("failed to create migrations ledger: %w", err)
		}

		for i := len(r.migrations) - 1; i >= 0; i-- {
			m := r.migrations[i]
			if err := inTx(ctx, db, func(tx *sql.Tx) error {
				if err := m.Down(ctx, tx); err != nil {
					return err
				}
				_, err := tx.ExecContext(ctx, `DELETE FROM _migrations WHERE name = ?`, m.Name)
				return err
			}); err != nil {
				return fmt.Errorf("failed to revert migration %s: %w", m.Name, err)
			}

			logger.WithField("migration", m.Name).Info("Migration reverted successfully")
		}
		return nil
	})
}

// Status lists every known migration with its ledger state
func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	statuses := make([]Status, 0, len(r.migrations))

	err := r.store.With(ctx, func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, ledgerSchema); err != nil {
			return fmt.Errorf("failed to create migrations ledger: %w", err)
		}

		for _, m := range r.migrations {
			status := Status{Name: m.Name, Description: m.Description}
			var appliedAt sql.NullString
			err := db.QueryRowContext(ctx, `SELECT applied_at FROM _migrations WHERE name = ?`, m.Name).Scan(&appliedAt)
			switch {
			case err == sql.ErrNoRows:
			case err != nil:
				return err
			default:
				status.Applied = true
				status.AppliedAt = appliedAt.String
			}
			statuses = append(statuses, status)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return statuses, nil
}

func isApplied(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name = ?`, name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
