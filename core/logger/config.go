package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the output encoding (json, console).
	Format string `mapstructure:"format" default:"json"`
	// SlowQueryMillis marks database queries slower than this as warnings.
	SlowQueryMillis int `mapstructure:"slow_query_ms" default:"500"`
}
