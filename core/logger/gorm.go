package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's logging through zap.
type GormLogger struct {
	log           *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger creates a gorm logger writing to l. Queries slower than slow are logged
// as warnings; missing records are never logged as errors.
func NewGormLogger(l *zap.Logger, slow time.Duration) *GormLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &GormLogger{
		log:           l.Named("gorm").WithOptions(zap.AddCallerSkip(3)),
		level:         gormlogger.Warn,
		slowThreshold: slow,
	}
}

// LogMode implements logger.Interface.
func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

// Info implements logger.Interface.
func (g *GormLogger) Info(_ context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Info {
		g.log.Info(fmt.Sprintf(msg, args...))
	}
}

// Warn implements logger.Interface.
func (g *GormLogger) Warn(_ context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Warn {
		g.log.Warn(fmt.Sprintf(msg, args...))
	}
}

// Error implements logger.Interface.
func (g *GormLogger) Error(_ context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Error {
		g.log.Error(fmt.Sprintf(msg, args...))
	}
}

// Trace implements logger.Interface.
func (g *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		sql, rows := fc()
		g.log.Error("Query failed", zap.Error(err), zap.Duration("elapsed", elapsed), zap.Int64("rows", rows), zap.String("sql", sql))
	case g.slowThreshold > 0 && elapsed > g.slowThreshold && g.level >= gormlogger.Warn:
		sql, rows := fc()
		g.log.Warn("Slow query", zap.Duration("elapsed", elapsed), zap.Duration("threshold", g.slowThreshold), zap.Int64("rows", rows), zap.String("sql", sql))
	case g.level >= gormlogger.Info:
		sql, rows := fc()
		g.log.Debug("Query", zap.Duration("elapsed", elapsed), zap.Int64("rows", rows), zap.String("sql", sql))
	}
}
