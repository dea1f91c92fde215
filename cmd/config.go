package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	NotifierLog = "log"
	NotifierSES = "ses"

	SnapshotDriverPostgres = "postgres"
	SnapshotDriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort string
	LogLevel slog.Level

	DB postgres.Settings

	SnapshotEnabled    bool
	SnapshotDriver     string
	SnapshotSQLitePath string
	SnapshotSchedule   string
	SweepSchedule      string

	Notifier          string
	SESFromAddress    string
	NotifyTimeout     time.Duration
	NotifyMaxInFlight int
	ShutdownTimeout   time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "dispatch")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SNAPSHOT_ENABLED", false)
	v.SetDefault("SNAPSHOT_DRIVER", SnapshotDriverPostgres)
	v.SetDefault("SNAPSHOT_SQLITE_PATH", "dispatch.db")
	v.SetDefault("SNAPSHOT_SCHEDULE", jobs.DefaultSnapshotSchedule)
	v.SetDefault("SWEEP_SCHEDULE", jobs.DefaultSweepSchedule)
	v.SetDefault("NOTIFIER", NotifierLog)
	v.SetDefault("SES_FROM_ADDRESS", "")
	v.SetDefault("NOTIFY_TIMEOUT", notify.DefaultTimeout)
	v.SetDefault("NOTIFY_MAX_IN_FLIGHT", notify.DefaultMaxInFlight)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
}

// LoadConfig reads an optional .env file into the environment and then
// builds the config from environment variables, falling back to defaults.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err)
	}

	cfg := Config{
		HTTPPort: v.GetString("HTTP_PORT"),
		LogLevel: level,
		DB: postgres.Settings{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		SnapshotEnabled:    v.GetBool("SNAPSHOT_ENABLED"),
		SnapshotDriver:     strings.ToLower(v.GetString("SNAPSHOT_DRIVER")),
		SnapshotSQLitePath: v.GetString("SNAPSHOT_SQLITE_PATH"),
		SnapshotSchedule:   v.GetString("SNAPSHOT_SCHEDULE"),
		SweepSchedule:      v.GetString("SWEEP_SCHEDULE"),
		Notifier:           strings.ToLower(v.GetString("NOTIFIER")),
		SESFromAddress:     v.GetString("SES_FROM_ADDRESS"),
		NotifyTimeout:      v.GetDuration("NOTIFY_TIMEOUT"),
		NotifyMaxInFlight:  v.GetInt("NOTIFY_MAX_IN_FLIGHT"),
		ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errList []error
	if c.HTTPPort == "" {
		errList = append(errList, errs.NewValueIsRequiredError("HTTP_PORT"))
	}
	switch c.Notifier {
	case NotifierLog:
	case NotifierSES:
		if c.SESFromAddress == "" {
			errList = append(errList, errs.NewValueIsRequiredError("SES_FROM_ADDRESS"))
		}
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("NOTIFIER",
			fmt.Errorf("%q is not one of %s, %s", c.Notifier, NotifierLog, NotifierSES)))
	}
	if c.SnapshotEnabled && c.SnapshotDriver != SnapshotDriverPostgres && c.SnapshotDriver != SnapshotDriverSQLite {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("SNAPSHOT_DRIVER",
			fmt.Errorf("%q is not one of %s, %s", c.SnapshotDriver, SnapshotDriverPostgres, SnapshotDriverSQLite)))
	}
	if c.NotifyTimeout <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("NOTIFY_TIMEOUT", c.NotifyTimeout, "1ns", "-"))
	}
	if c.NotifyMaxInFlight <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("NOTIFY_MAX_IN_FLIGHT", c.NotifyMaxInFlight, 1, "-"))
	}
	return errors.Join(errList...)
}
