// Package database handles the optional database connection and schema inspection.
//
// It wraps GORM to open MySQL or SQLite connections based on the application's
// configuration. Database rows are one of the byte sources the integrity feature
// can fingerprint, so the package also verifies that a table carries the columns
// a caller wants to read.
//
// # Connect
//
// Connect selects the dialector from Config.Driver, applies timeouts and pool
// settings, and pings the database before returning it.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns (PRAGMA table_info on SQLite, SHOW COLUMNS
// on MySQL). RequireColumns builds on it to reject unknown tables or columns before
// any query is built from them. Identifiers are restricted to plain names because
// they are interpolated into SQL.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database source disabled", zap.Error(err))
//	}
//
//	err = database.RequireColumns(db, "documents", "name", "body")
package database
