// Package logger builds the zap logger shared by every command and component.
//
// Components receive the *zap.Logger through their constructors and log with
// structured fields. HTTP handlers derive a request-scoped logger with WithRayID so
// the ray_id set by the rayid middleware appears on every entry of a request.
//
// # Configuration
//
//   - Level: debug, info, warn, error (debug also selects zap's development preset)
//   - Format: json or console
//   - File: optional file that receives a copy of every entry
//
// Every entry carries service="record-sync".
//
// # Usage
//
//	log, err := logger.New(&cfg.Log)
//	log.Info("Sync run started", zap.String("run_id", runID))
//
//	l := logger.WithRayID(log, c)
//	l.Error("Failed to read checkpoint", zap.Error(err))
package logger
