// Package database handles database connections, migrations and schema inspection.
//
// It wraps GORM and opens MySQL, PostgreSQL or SQLite (pure Go, via glebarez/sqlite)
// depending on the configured driver.
//
// # Connect
//
// Connect builds the DSN from Config, applies pool settings and pings the database
// with the configured timeout. When a zap logger is passed, queries are logged through
// logger.NewGormLogger.
//
// # Schema Inspection
//
// GetTableColumns reads live column definitions through gorm's migrator, so the same
// code serves every driver. VerifySchema compares them with the columns the models
// expect; the migrate command and the integrity check both use it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database, log)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
//
//	issues, err := database.VerifySchema(db, models.All()...)
package database
