package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvConfig names the environment variable that points at an alternate config file.
const EnvConfig = "NOTEWISE_CONFIG"

// Config holds application configuration.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Session   SessionConfig   `mapstructure:"session"`
	Redis     RedisConfig     `mapstructure:"redis"`
	UI        UIConfig        `mapstructure:"ui"`
	Splash    SplashConfig    `mapstructure:"splash"`
	Create    CreateConfig    `mapstructure:"create"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Export    ExportConfig    `mapstructure:"export"`
	Log       LogConfig       `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// SessionConfig selects where the onboarding, terms and login flags live.
// Empty file paths fall back to the user config dir.
type SessionConfig struct {
	FlagStore  string `mapstructure:"flag_store"`
	FlagFile   string `mapstructure:"flag_file"`
	SecretFile string `mapstructure:"secret_file"`
}

type RedisConfig struct {
	Addr    string `mapstructure:"addr"`
	Profile string `mapstructure:"profile"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme             string `mapstructure:"theme"`
	Timezone          string `mapstructure:"timezone"`
	PushNotifications bool   `mapstructure:"push_notifications"`
	AutoSummarize     bool   `mapstructure:"auto_summarize"`
}

type SplashConfig struct {
	Duration    time.Duration `mapstructure:"duration"`
	AutoAdvance time.Duration `mapstructure:"auto_advance"`
}

type CreateConfig struct {
	GenerateDelay    time.Duration `mapstructure:"generate_delay"`
	ProgressInterval time.Duration `mapstructure:"progress_interval"`
}

type DashboardConfig struct {
	TipInterval time.Duration `mapstructure:"tip_interval"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Location resolves UI.Timezone, falling back to the local zone.
func (c Config) Location() *time.Location {
	if c.UI.Timezone == "" || c.UI.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.UI.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Path returns the config file in use: explicit, then $NOTEWISE_CONFIG, then
// ~/.config/notewise/config.toml.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "notewise", "config.toml")
}

func newViper(path string) *viper.Viper {
	home := os.Getenv("HOME")
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "notewise", "notewise.db"))
	v.SetDefault("session.flag_store", "sqlite")
	v.SetDefault("session.flag_file", "")
	v.SetDefault("session.secret_file", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.profile", "default")
	v.SetDefault("ui.theme", "dark")
	v.SetDefault("ui.timezone", "Local")
	v.SetDefault("ui.push_notifications", true)
	v.SetDefault("ui.auto_summarize", true)
	v.SetDefault("splash.duration", 2300*time.Millisecond)
	v.SetDefault("splash.auto_advance", 2*time.Second)
	v.SetDefault("create.generate_delay", 4*time.Second)
	v.SetDefault("create.progress_interval", 2*time.Second)
	v.SetDefault("dashboard.tip_interval", 3*time.Second)
	v.SetDefault("export.dir", filepath.Join(home, "Documents", "notewise"))
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "notewise", "notewise.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")
	v.SetConfigFile(path)

	v.SetEnvPrefix("NOTEWISE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Load reads configuration from file and env. Env var overrides use prefix NOTEWISE_.
// A missing config file is not an error.
func Load(path string) (Config, error) {
	v := newViper(Path(path))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return decode(v)
}

// Save writes the provided config to disk, creating the config directory if needed.
// Used by the settings screen to persist toggles and the theme.
func Save(path string, cfg Config) error {
	path = Path(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("session.flag_store", cfg.Session.FlagStore)
	v.Set("session.flag_file", cfg.Session.FlagFile)
	v.Set("session.secret_file", cfg.Session.SecretFile)
	v.Set("redis.addr", cfg.Redis.Addr)
	v.Set("redis.profile", cfg.Redis.Profile)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.push_notifications", cfg.UI.PushNotifications)
	v.Set("ui.auto_summarize", cfg.UI.AutoSummarize)
	v.Set("splash.duration", cfg.Splash.Duration.String())
	v.Set("splash.auto_advance", cfg.Splash.AutoAdvance.String())
	v.Set("create.generate_delay", cfg.Create.GenerateDelay.String())
	v.Set("create.progress_interval", cfg.Create.ProgressInterval.String())
	v.Set("dashboard.tip_interval", cfg.Dashboard.TipInterval.String())
	v.Set("export.dir", cfg.Export.Dir)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Watch reloads the config file whenever it changes on disk and hands the
// result to fn. A missing file is first written with the current settings.
func Watch(path string, fn func(Config, error)) error {
	path = Path(path)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg, err := Load(path)
		if err != nil {
			return err
		}
		if err := Save(path, cfg); err != nil {
			return err
		}
	}
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		fn(decode(v))
	})
	v.WatchConfig()
	return nil
}
