package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/backoffice/internal/common"
	"github.com/Veraticus/backoffice/internal/detail"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.Schedule.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Schedule.Timeout)
	assert.Equal(t, 1, cfg.Schedule.FetchAttempts)
	assert.Equal(t, detail.DefaultDateLayout, cfg.Display.DateLayout)
	assert.Equal(t, "default", cfg.Display.Theme)
	assert.False(t, cfg.Grievances.RequireMessage)
	assert.Equal(t, DefaultDevAddr, cfg.DevServer.Addr)
	assert.True(t, cfg.DevServer.Seed)
	assert.NotContains(t, cfg.DevServer.DBPath, "~")
	assert.False(t, cfg.DevServer.TLS)
	assert.NotContains(t, cfg.DevServer.CertDir, "~")
	assert.Empty(t, cfg.Schedule.CAFile)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BACKOFFICE_SCHEDULE_BASE_URL", "https://schedule.internal")
	t.Setenv("BACKOFFICE_SCHEDULE_FETCH_ATTEMPTS", "3")
	t.Setenv("BACKOFFICE_GRIEVANCES_REQUIRE_MESSAGE", "true")
	t.Setenv("BACKOFFICE_DISPLAY_TIMEZONE", "UTC")
	t.Setenv("BACKOFFICE_DEVSERVER_TLS", "true")

	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "https://schedule.internal", cfg.Schedule.BaseURL)
	assert.Equal(t, 3, cfg.Schedule.RetryOptions().MaxAttempts)
	assert.True(t, cfg.Grievances.RequireMessage)
	assert.True(t, cfg.DevServer.TLS)
	assert.Equal(t, "1/1/1990", cfg.DateFormatter().Format("1990-01-01"))
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
schedule:
  base_url: http://10.0.0.5:9000
  timeout: 5s
display:
  date_layout: "02 Jan 2006"
  timezone: UTC
`), 0o600))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000", cfg.Schedule.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Schedule.Timeout)
	assert.Equal(t, "01 Jan 1990", cfg.DateFormatter().Format("1990-01-01"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		mutate func(*Config)
		want   error
		name   string
	}{
		{name: "missing base url", mutate: func(c *Config) { c.Schedule.BaseURL = "" }, want: common.ErrMissingConfig},
		{name: "non-http base url", mutate: func(c *Config) { c.Schedule.BaseURL = "ftp://x" }, want: common.ErrInvalidConfig},
		{name: "zero attempts", mutate: func(c *Config) { c.Schedule.FetchAttempts = 0 }, want: common.ErrInvalidConfig},
		{name: "bad timezone", mutate: func(c *Config) { c.Display.Timezone = "Mars/Olympus" }, want: common.ErrInvalidConfig},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "chatty" }, want: common.ErrInvalidConfig},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, want: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(newViper())
			require.NoError(t, err)

			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BACKOFFICE_SCHEDULE_TOKEN=from-dotenv\n"), 0o600))

	t.Setenv("BACKOFFICE_SCHEDULE_TOKEN", "")
	require.NoError(t, os.Unsetenv("BACKOFFICE_SCHEDULE_TOKEN"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))

	cfg, err := Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Schedule.Token)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, filepath.Join(home, "x", "y"), ExpandPath("~/x/y"))
	assert.Equal(t, home, ExpandPath("~"))

	t.Setenv("BACKOFFICE_TEST_DIR", "/tmp/bo")
	assert.Equal(t, "/tmp/bo/db", ExpandPath("$BACKOFFICE_TEST_DIR/db"))
}
