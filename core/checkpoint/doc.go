// Package checkpoint persists the dates whose change feed has been fully reconciled.
//
// The log is a plain text file with one ISO-8601 date per line. Writers only append;
// readers treat the content as a set. Prune keeps the file bounded by dropping the
// oldest lines.
//
// The file system is abstracted with afero so tests can run against an in-memory
// file system.
//
// # Usage
//
//	log := checkpoint.NewFileLog(afero.NewOsFs(), cfg.Checkpoint.Path)
//	done, err := log.Completed(ctx)
package checkpoint
