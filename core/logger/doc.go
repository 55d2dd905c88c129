// Package logger builds the zap loggers used across the service.
//
// New picks the development config for the debug level and the production config
// otherwise, with console or json encoding. WithRayID attaches the request's ray id
// (set by the rayid middleware) to request-scoped log lines.
//
// NewGormLogger routes gorm output through zap: failed queries at error level,
// queries over the slow threshold at warn, everything else at debug when gorm's info
// level is on. Record-not-found is never logged.
//
//	log, _ := logger.New(&cfg.Log)
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
