package sync

// Config holds configuration for reconciliation runs.
type Config struct {
	// LookbackDays is the number of days, today included, scanned for missing dates.
	LookbackDays int `mapstructure:"lookback_days" default:"7"`
	// RecordKind restricts processing to feed items of this kind. Empty accepts all kinds.
	RecordKind string `mapstructure:"record_kind" default:"ResearchOutput"`
	// IntervalMinutes schedules runs while the server is up. Zero disables scheduling.
	IntervalMinutes int `mapstructure:"interval_minutes" default:"0"`
	// RunOnStart triggers a run as soon as the server starts.
	RunOnStart bool `mapstructure:"run_on_start" default:"false"`
}
