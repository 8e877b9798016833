package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/backoffice/internal/common"
	"github.com/Veraticus/backoffice/internal/detail"
	"github.com/Veraticus/backoffice/internal/service"
)

// EnvPrefix prefixes every environment override, e.g.
// BACKOFFICE_SCHEDULE_BASE_URL.
const EnvPrefix = "BACKOFFICE"

// Defaults.
const (
	DefaultBaseURL    = "http://localhost:8081"
	DefaultTimeout    = 30 * time.Second
	DefaultDevAddr    = ":8081"
	DefaultDevDBPath  = "~/.local/share/backoffice/devserver.db"
	DefaultCertDir    = "~/.local/share/backoffice/certs"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
	defaultFetchTries = 1
)

// Config is the resolved console configuration.
type Config struct {
	Schedule   ScheduleConfig
	Display    DisplayConfig
	Logging    LoggingConfig
	DevServer  DevServerConfig
	Grievances GrievanceConfig
}

// ScheduleConfig locates the schedule service.
type ScheduleConfig struct {
	BaseURL       string
	Token         string
	CAFile        string
	Timeout       time.Duration
	FetchAttempts int
}

// DisplayConfig controls how dates render and which theme the board uses.
type DisplayConfig struct {
	DateLayout string
	Timezone   string
	Theme      string
}

// GrievanceConfig holds grievance board policy.
type GrievanceConfig struct {
	RequireMessage bool
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// DevServerConfig configures the development schedule service.
type DevServerConfig struct {
	Addr        string
	DBPath      string
	DatabaseURL string
	CertDir     string
	Seed        bool
	TLS         bool
}

// SetDefaults registers default values and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("schedule.base_url", DefaultBaseURL)
	v.SetDefault("schedule.token", "")
	v.SetDefault("schedule.ca_file", "")
	v.SetDefault("schedule.timeout", DefaultTimeout)
	v.SetDefault("schedule.fetch_attempts", defaultFetchTries)
	v.SetDefault("display.date_layout", detail.DefaultDateLayout)
	v.SetDefault("display.timezone", "")
	v.SetDefault("display.theme", "default")
	v.SetDefault("grievances.require_message", false)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
	v.SetDefault("logging.file", "")
	v.SetDefault("devserver.addr", DefaultDevAddr)
	v.SetDefault("devserver.db_path", DefaultDevDBPath)
	v.SetDefault("devserver.database_url", "")
	v.SetDefault("devserver.seed", true)
	v.SetDefault("devserver.tls", false)
	v.SetDefault("devserver.cert_dir", DefaultCertDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads KEY=value pairs from files into the process environment
// without overriding variables that are already set. Missing files are
// ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(ExpandPath(file)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// Load reads the configuration from v and validates it. A nil v uses the
// global viper instance.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}

	cfg := &Config{
		Schedule: ScheduleConfig{
			BaseURL:       strings.TrimSpace(v.GetString("schedule.base_url")),
			Token:         v.GetString("schedule.token"),
			CAFile:        ExpandPath(v.GetString("schedule.ca_file")),
			Timeout:       v.GetDuration("schedule.timeout"),
			FetchAttempts: v.GetInt("schedule.fetch_attempts"),
		},
		Display: DisplayConfig{
			DateLayout: v.GetString("display.date_layout"),
			Timezone:   v.GetString("display.timezone"),
			Theme:      v.GetString("display.theme"),
		},
		Grievances: GrievanceConfig{
			RequireMessage: v.GetBool("grievances.require_message"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
		DevServer: DevServerConfig{
			Addr:        v.GetString("devserver.addr"),
			DBPath:      ExpandPath(v.GetString("devserver.db_path")),
			DatabaseURL: v.GetString("devserver.database_url"),
			CertDir:     ExpandPath(v.GetString("devserver.cert_dir")),
			Seed:        v.GetBool("devserver.seed"),
			TLS:         v.GetBool("devserver.tls"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Schedule.BaseURL == "" {
		errs = append(errs, fmt.Errorf("%w: schedule.base_url", common.ErrMissingConfig))
	} else if !strings.HasPrefix(c.Schedule.BaseURL, "http://") && !strings.HasPrefix(c.Schedule.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("%w: schedule.base_url must be an http(s) URL, got %q", common.ErrInvalidConfig, c.Schedule.BaseURL))
	}
	if c.Schedule.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%w: schedule.timeout must not be negative", common.ErrInvalidConfig))
	}
	if c.Schedule.FetchAttempts < 1 {
		errs = append(errs, fmt.Errorf("%w: schedule.fetch_attempts must be at least 1", common.ErrInvalidConfig))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Logging.Format {
	case "console", "json", "":
	default:
		errs = append(errs, fmt.Errorf("%w: logging.format %q", common.ErrInvalidConfig, c.Logging.Format))
	}

	return errors.Join(errs...)
}

// Location resolves display.timezone; empty means the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Display.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: display.timezone %q: %w", common.ErrInvalidConfig, c.Display.Timezone, err)
	}
	return loc, nil
}

// DateFormatter builds the date formatter for detail views.
func (c *Config) DateFormatter() detail.DateFormatter {
	loc, err := c.Location()
	if err != nil {
		loc = time.Local
	}
	return detail.NewDateFormatter(c.Display.DateLayout, loc)
}

// RetryOptions returns the retry policy for pending fetches.
func (c ScheduleConfig) RetryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  c.FetchAttempts,
		InitialDelay: 250 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2,
	}
}
