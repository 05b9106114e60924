package repository

// Config holds configuration for the destination repository API.
type Config struct {
	// BaseURL is the root of the repository (e.g. https://repository.example.org).
	BaseURL string `mapstructure:"base_url" default:""`
	// Token is the bearer token. Its account must be allowed to delete records.
	Token string `mapstructure:"token" default:""`
	// RecordsPath is the records endpoint, relative to BaseURL.
	RecordsPath string `mapstructure:"records_path" default:"api/records"`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRetries is the number of retries for 429 and 5xx responses.
	MaxRetries int `mapstructure:"max_retries" default:"2"`
}
