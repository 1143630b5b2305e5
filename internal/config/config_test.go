package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Session.FlagStore)
	require.Equal(t, "dark", cfg.UI.Theme)
	require.True(t, cfg.UI.PushNotifications)
	require.Equal(t, 2300*time.Millisecond, cfg.Splash.Duration)
	require.Equal(t, 2*time.Second, cfg.Splash.AutoAdvance)
	require.Equal(t, 4*time.Second, cfg.Create.GenerateDelay)
	require.Equal(t, 2*time.Second, cfg.Create.ProgressInterval)
	require.Equal(t, 3*time.Second, cfg.Dashboard.TipInterval)
	require.Equal(t, "default", cfg.Redis.Profile)
	require.Equal(t, time.Local, cfg.Location())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[session]
flag_store = "file"

[ui]
theme = "light"
timezone = "Australia/Melbourne"
auto_summarize = false

[splash]
duration = "500ms"
`), 0o644))
	t.Setenv("NOTEWISE_REDIS_PROFILE", "work")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "file", cfg.Session.FlagStore)
	require.Equal(t, "light", cfg.UI.Theme)
	require.False(t, cfg.UI.AutoSummarize)
	require.Equal(t, 500*time.Millisecond, cfg.Splash.Duration)
	require.Equal(t, "work", cfg.Redis.Profile)
	require.Equal(t, "Australia/Melbourne", cfg.Location().String())
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui\ntheme = "), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestPathPrecedence(t *testing.T) {
	t.Setenv(EnvConfig, "/tmp/from-env.toml")
	require.Equal(t, "/explicit.toml", Path("/explicit.toml"))
	require.Equal(t, "/tmp/from-env.toml", Path(""))
}

func TestSaveRoundTripAndWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.UI.Theme = "light"
	cfg.UI.PushNotifications = false
	cfg.Create.GenerateDelay = time.Second
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)

	changes := make(chan Config, 4)
	require.NoError(t, Watch(path, func(c Config, err error) {
		if err == nil {
			changes <- c
		}
	}))

	cfg.UI.Theme = "dark"
	require.NoError(t, Save(path, cfg))
	require.Eventually(t, func() bool {
		for {
			select {
			case c := <-changes:
				if c.UI.Theme == "dark" {
					return true
				}
			default:
				return false
			}
		}
	}, 5*time.Second, 50*time.Millisecond)
}

func TestWatchCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh", "config.toml")
	changes := make(chan Config, 4)
	require.NoError(t, Watch(path, func(c Config, err error) {
		if err == nil {
			changes <- c
		}
	}))
	_, err := os.Stat(path)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "dark", cfg.UI.Theme)

	cfg.UI.Theme = "light"
	require.NoError(t, Save(path, cfg))
	require.Eventually(t, func() bool {
		for {
			select {
			case c := <-changes:
				if c.UI.Theme == "light" {
					return true
				}
			default:
				return false
			}
		}
	}, 5*time.Second, 50*time.Millisecond)
}
