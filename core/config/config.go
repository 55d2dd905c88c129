package config

import (
	"fmt"
	"reflect"
	"strings"

	"catalog-manager/core/database"
	"catalog-manager/core/logger"
	"catalog-manager/core/scheduler"
	"catalog-manager/core/server"
	"catalog-manager/core/storage"
	"catalog-manager/core/transport"
	"catalog-manager/feature/catalog"
	"catalog-manager/feature/identify"
	"catalog-manager/feature/igdb"
	"catalog-manager/feature/matching"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application, one section per component.
// Every key can be set from the environment: igdb.http.max_retries is
// IGDB_HTTP_MAX_RETRIES.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds the optional object storage for DAT sources and archives.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// IGDB holds credentials and client settings of the metadata provider.
	IGDB igdb.Config `mapstructure:"igdb"`
	// Catalog holds DAT import settings.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Download configures the HTTP client fetching DAT archives.
	Download transport.Config `mapstructure:"download"`
	// Reconcile tunes reconciliation sweeps.
	Reconcile matching.Config `mapstructure:"reconcile"`
	// Identify holds identify endpoint settings.
	Identify identify.Config `mapstructure:"identify"`
	// Schedule holds the cron specs of the schedule command.
	Schedule scheduler.Config `mapstructure:"schedule"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
