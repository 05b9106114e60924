package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"record-sync/core/checkpoint"
	"record-sync/core/database"
	"record-sync/core/logger"
	"record-sync/core/server"
	"record-sync/core/storage"
	"record-sync/feature/feed"
	"record-sync/feature/reports"
	"record-sync/feature/repository"
	"record-sync/feature/sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the record mapping database.
	Database database.Config `mapstructure:"database"`
	// Source holds configuration for the source catalog API.
	Source feed.Config `mapstructure:"source"`
	// Destination holds configuration for the destination repository API.
	Destination repository.Config `mapstructure:"destination"`
	// Sync holds configuration for reconciliation runs.
	Sync sync.Config `mapstructure:"sync"`
	// Checkpoint holds configuration for the completed-dates log.
	Checkpoint checkpoint.Config `mapstructure:"checkpoint"`
	// Reports holds configuration for the run report archive.
	Reports reports.Config `mapstructure:"reports"`
}

// FileName is the optional configuration file looked up next to the .env file,
// with any extension viper understands (record-sync.yaml, record-sync.json, ...).
const FileName = "record-sync"

// LoadConfig loads configuration from dir. Precedence, highest first: environment
// variables (including those from dir/.env), the record-sync config file, struct defaults.
func LoadConfig(dir string) (*Config, error) {
	// A missing .env is normal in production
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	bindValues(v, Config{}, "")

	v.SetConfigName(FileName)
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// SYNC_LOOKBACK_DAYS -> sync.lookback_days
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &config, nil
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Source.BaseURL) == "" {
		errs = append(errs, errors.New("source.base_url is required"))
	}
	if strings.TrimSpace(c.Destination.BaseURL) == "" {
		errs = append(errs, errors.New("destination.base_url is required"))
	}
	if c.Sync.LookbackDays < 1 {
		errs = append(errs, fmt.Errorf("sync.lookback_days must be at least 1, got %d", c.Sync.LookbackDays))
	}
	if c.Sync.IntervalMinutes < 0 {
		errs = append(errs, fmt.Errorf("sync.interval_minutes must not be negative, got %d", c.Sync.IntervalMinutes))
	}
	if strings.TrimSpace(c.Checkpoint.Path) == "" {
		errs = append(errs, errors.New("checkpoint.path is required"))
	}
	// A shorter checkpoint would forget completed dates that are still inside the window
	if c.Checkpoint.MaxLines > 0 && c.Checkpoint.MaxLines < c.Sync.LookbackDays {
		errs = append(errs, fmt.Errorf("checkpoint.max_lines (%d) must be at least sync.lookback_days (%d)", c.Checkpoint.MaxLines, c.Sync.LookbackDays))
	}
	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("database.driver must be mysql or sqlite, got %q", c.Database.Driver))
	}
	if c.Reports.Enabled && strings.TrimSpace(c.Storage.Bucket) == "" {
		errs = append(errs, errors.New("storage.bucket is required when reports are enabled"))
	}

	return errors.Join(errs...)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
