package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/notewise/internal/database"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf(`
[database]
path = %q

[log]
path = %q
level = "debug"

[export]
dir = %q
`, filepath.Join(dir, "notewise.db"), filepath.Join(dir, "notewise.log"), filepath.Join(dir, "export"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestCommands(t *testing.T) {
	cfgPath := writeConfig(t)

	out := run(t, "--config", cfgPath, "flags")
	require.Contains(t, out, "hasSeenOnboarding  false")
	require.Contains(t, out, "next screen        onboarding")

	out = run(t, "--config", cfgPath, "export", database.SampleNoteID("Team Meeting Notes"))
	require.True(t, strings.HasSuffix(strings.TrimSpace(out), "team-meeting-notes.md"))

	out = run(t, "--config", cfgPath, "seed", "--demo", "3")
	require.Contains(t, out, "added 3 notes")

	out = run(t, "--config", cfgPath, "logout")
	require.Contains(t, out, "logged out")

	out = run(t, "--config", cfgPath, "reset", "--flags")
	require.Contains(t, out, "data cleared")
}
