package reports

// Config holds configuration for the run report archive.
type Config struct {
	// Enabled uploads a report per reconciled date to object storage.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Prefix is the object key prefix for reports.
	Prefix string `mapstructure:"prefix" default:"reports"`
	// KeepDays is the retention used by Prune. Zero keeps everything.
	KeepDays int `mapstructure:"keep_days" default:"30"`
}
