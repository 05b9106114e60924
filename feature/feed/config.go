package feed

// Config holds configuration for the source catalog API.
type Config struct {
	// BaseURL is the root of the catalog API (e.g. https://pure.example.org/ws/api/524).
	BaseURL string `mapstructure:"base_url" default:""`
	// ApiKey authenticates requests to the catalog.
	ApiKey string `mapstructure:"api_key" default:""`
	// ApiKeyHeader is the header that carries ApiKey.
	ApiKeyHeader string `mapstructure:"api_key_header" default:"api-key"`
	// ChangesPath is the change feed endpoint, relative to BaseURL.
	ChangesPath string `mapstructure:"changes_path" default:"changes"`
	// RecordsPath is the record endpoint used to fetch full records, relative to BaseURL.
	RecordsPath string `mapstructure:"records_path" default:"research-outputs"`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
