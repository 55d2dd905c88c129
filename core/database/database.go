package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"catalog-manager/core/logger"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the database named by cfg.Driver and verifies it with a ping.
// Queries are logged through log when it is not nil; otherwise gorm stays silent.
func Connect(cfg Config, log *zap.Logger) (*gorm.DB, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
	if log != nil {
		gormConfig.Logger = logger.NewGormLogger(log, 500*time.Millisecond)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if isSQLite(cfg.Driver) {
		// sqlite has a single writer and every ":memory:" connection is its own database.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, 10))
		sqlDB.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, 100))
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Dialector builds the gorm dialector for cfg without opening a connection.
func Dialector(cfg Config) (gorm.Dialector, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	switch strings.ToLower(cfg.Driver) {
	case "", "mysql":
		// Special characters in the password must be URL encoded.
		userInfo := url.UserPassword(cfg.User, cfg.Password).String()
		dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
			userInfo, cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout)
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Path:     "/" + cfg.Name,
			RawQuery: fmt.Sprintf("sslmode=%s&connect_timeout=%d", orString(cfg.SSLMode, "disable"), timeout),
		}
		return postgres.Open(u.String()), nil
	case "sqlite", "sqlite3":
		name := cfg.Name
		if name == "" {
			name = ":memory:"
		}
		return sqlite.Open(name), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func isSQLite(driver string) bool {
	d := strings.ToLower(driver)
	return d == "sqlite" || d == "sqlite3"
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
