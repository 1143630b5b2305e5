package prefs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlagFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cfg", "session.json")
	f, err := OpenFlagFile(path)
	require.NoError(t, err)

	_, ok, err := f.Get(ctx, "hasAcceptedTerms")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, f.Set(ctx, "hasAcceptedTerms", "true"))
	require.NoError(t, f.Set(ctx, "isLoggedIn", "true"))
	require.NoError(t, f.Remove(ctx, "isLoggedIn"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"hasAcceptedTerms":"true"}`, string(data))

	reopened, err := OpenFlagFile(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, "hasAcceptedTerms")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "true", v)
}

func TestFlagFileCorrupt(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	f, err := OpenFlagFile(path)
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := f.Get(ctx, "isLoggedIn")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, f.Set(ctx, "isLoggedIn", "true"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"isLoggedIn":"true"}`, string(data))
}
