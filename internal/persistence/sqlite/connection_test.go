package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/campus-reservations/internal/persistence"
	"github.com/example/campus-reservations/internal/persistence/sqlite"
)

// The foreign_keys pragma is per connection in SQLite, so the pool must carry
// it in the DSN. A DSN without the pragma still has to enforce references.
func TestConnectionPoolEnforcesForeignKeysWithoutPragmaDSN(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "reservas.db")
	pool, err := sqlite.NewConnectionPool(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })

	ctx := context.Background()
	require.NoError(t, pool.Migrate(ctx))

	blocks := sqlite.NewBlockRepository(pool)
	_, err = blocks.CreateBlock(ctx, persistence.Block{Name: "Bloco Orfao", CourseID: 424242})
	require.ErrorIs(t, err, persistence.ErrForeignKeyViolation)
}
