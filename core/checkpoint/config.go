package checkpoint

// Config holds configuration for the checkpoint log.
type Config struct {
	// Path is the file that lists completed dates, one per line.
	Path string `mapstructure:"path" default:"data/successful_changes.txt"`
	// MaxLines is the number of most recent lines kept by Prune.
	MaxLines int `mapstructure:"max_lines" default:"100"`
}
