package catalog

// Config holds settings for catalog imports.
type Config struct {
	// DatsDir is where DAT files are downloaded to and imported from.
	DatsDir string `mapstructure:"dats_dir" default:"./dats"`
	// DownloadURLs are archives fetched by "import --download". The catalog is taken from
	// the first path segment naming a known catalog.
	DownloadURLs []string `mapstructure:"download_urls" default:"https://dats.retrorealm.dev/redump/daily"`
	// Extension is the file extension of catalog documents.
	Extension string `mapstructure:"extension" default:"dat"`
	// SkipPattern excludes files whose name contains it.
	SkipPattern string `mapstructure:"skip_pattern" default:"BIOS"`
	// Concurrency is the number of games written at once. Zero uses the CPU count.
	Concurrency int `mapstructure:"concurrency" default:"0"`
	// StoragePrefix is the bucket prefix "import --from-storage" reads from.
	StoragePrefix string `mapstructure:"storage_prefix" default:"dats/"`
	// ArchivePrefix is the bucket prefix downloaded archives are copied to. Empty disables archiving.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"archive/"`
	// ArchiveRetentionDays prunes archived objects older than this after a download. Zero keeps everything.
	ArchiveRetentionDays int `mapstructure:"archive_retention_days" default:"90"`
}
