// Package config provides configuration management for the record sync service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file, then an optional record-sync.yaml (or .json/.toml) file in the
// same directory. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, swagger)
//   - Log: Logging level and format
//   - Database: record mapping database (mysql or sqlite)
//   - Storage: S3/MinIO credentials and bucket for run reports
//   - Source: source catalog API (change feed and records)
//   - Destination: destination repository API
//   - Sync: lookback window, record kind and schedule
//   - Checkpoint: completed-dates log location and size
//   - Reports: report archive toggle and retention
//
// Environment variables map to keys by replacing dots with underscores, e.g.
// SYNC_LOOKBACK_DAYS sets sync.lookback_days.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
