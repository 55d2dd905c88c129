package matching

// Config tunes reconciliation sweeps.
type Config struct {
	// PageSize is the number of unmatched entities loaded per page.
	PageSize int `mapstructure:"page_size" default:"50"`
	// Concurrency is the number of entities matched at once. Zero uses the CPU count.
	Concurrency int `mapstructure:"concurrency" default:"0"`
}
