package testdata

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/notewise/internal/database"
	"github.com/jask/notewise/internal/database/repository"
)

func TestSeed(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewNoteRepo(db)
	now := time.Now()
	ids, err := Seed(ctx, repo, 12, now)
	require.NoError(t, err)
	require.Len(t, ids, 12)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 12, count)

	for _, id := range ids {
		n, err := repo.Get(ctx, id)
		require.NoError(t, err)
		_, ok := repository.ParseNoteType(string(n.Type))
		require.True(t, ok)
		require.NotEmpty(t, n.Title)
		require.False(t, n.CreatedAt.After(now))
		require.True(t, n.CreatedAt.After(now.Add(-31*24*time.Hour)))
	}
}
