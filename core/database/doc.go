// Package database opens the gorm connection that backs the record mapping store.
//
// Config.Driver selects the dialector: "mysql" (the default, used in production) or
// "sqlite" (local runs and tests, Config.Name is the file path or ":memory:").
// Connect applies the pool settings and pings the database within Config.TimeoutSeconds.
//
// GetTableColumns and MissingColumns read the live schema (SHOW COLUMNS on MySQL,
// PRAGMA table_info on SQLite). The mapping store calls MissingColumns after
// AutoMigrate and refuses to start when a column it writes is absent.
//
//	db, err := database.Connect(cfg.Database)
//	missing, err := database.MissingColumns(db, "record_mappings", []string{"source_id", "destination_id"})
package database
