package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alimgiray/inbox/internal/migrations"
	"github.com/alimgiray/inbox/pkg/config"
	"github.com/alimgiray/inbox/pkg/database"
	"github.com/stretchr/testify/require"
)

// NewStore returns a store backed by a temporary database file with all
// migrations applied, including the seed emails.
func NewStore(t *testing.T) *database.Store {
	t.Helper()

	store := database.NewStore(config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "emails.db"),
		BusyTimeout: 1000,
	})

	_, err := migrations.NewRunner(store).Up(context.Background())
	require.NoError(t, err)

	return store
}

// NewEmptyStore is NewStore without the seed emails
func NewEmptyStore(t *testing.T) *database.Store {
	t.Helper()

	store := NewStore(t)
	Exec(t, store, "DELETE FROM emails")
	return store
}

// Exec runs a statement against the store
func Exec(t *testing.T, store *database.Store, query string, args ...any) {
	t.Helper()

	err := store.With(context.Background(), func(db *sql.DB) error {
		_, err := db.Exec(query, args...)
		return err
	})
	require.NoError(t, err)
}
