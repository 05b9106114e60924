package storage

import "time"

// Config holds the object store settings of the report archive.
type Config struct {
	// Endpoint is host:port, optionally prefixed with http:// or https://.
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL applies when Endpoint carries no scheme.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket holds the run reports.
	Bucket string `mapstructure:"bucket" default:"record-sync"`
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds connection setup and each bucket check.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Timeout returns TimeoutSeconds as a duration, 30s when unset.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
