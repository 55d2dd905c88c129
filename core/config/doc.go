// Package config loads the application configuration.
//
// LoadConfig reads an optional .env file, registers a default for every key found
// in the `mapstructure` and `default` struct tags of Config (recursively), and then
// lets environment variables override them. Secrets such as IGDB credentials, the
// API key and storage keys only ever come from the environment.
//
// # Sections
//
//   - Server: listen address, API key
//   - Log: level, format, slow query threshold
//   - Database: driver (mysql, postgres, sqlite) and connection settings
//   - Storage: optional MinIO/S3 bucket holding DAT sources and archives
//   - IGDB: credentials, endpoints, cache and HTTP (rate limit, retries)
//   - Catalog: DAT directory, download URLs, import concurrency
//   - Download: HTTP client of the DAT downloader
//   - Reconcile: page size and concurrency of reconciliation sweeps
//   - Identify: response caching
//   - Schedule: cron specs for import and reconciliation
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
