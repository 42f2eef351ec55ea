package config

// Config holds the application configuration.
type Config struct {
	Logger  Logger  `yaml:"logger"`
	Scan    Scan    `yaml:"scan"`
	Lyrics  Lyrics  `yaml:"lyrics"`
	Network Network `yaml:"network"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

// Scan holds the configuration for the directory scan
type Scan struct {
	// Delay is the pause in seconds between tracks that issued network
	// queries. Tracks skipped without a query incur no delay.
	Delay float64 `yaml:"delay" validate:"gte=0"`
	// Extensions is the case-insensitive audio file allow-list.
	Extensions []string `yaml:"extensions" validate:"required,min=1"`
	// Watch keeps the process alive after the initial scan and rescans
	// when new files appear under the root directory.
	Watch bool `yaml:"watch"`
}

// Lyrics holds the configuration for lyrics providers
type Lyrics struct {
	Providers map[string]Provider `yaml:"providers"`
}

// Provider holds configuration for individual lyric providers
type Provider struct {
	Enabled bool `yaml:"enabled"`
}

// Network holds the shared HTTP client configuration
type Network struct {
	UserAgent      string  `yaml:"user_agent" validate:"required"`
	TimeoutSeconds float64 `yaml:"timeout_seconds" validate:"gt=0"`
}

// ProviderEnabled reports whether a provider is enabled. Providers missing
// from the map default to enabled so a partial config doesn't silently
// shorten the fallback chain.
func (c *Config) ProviderEnabled(name string) bool {
	if c.Lyrics.Providers == nil {
		return true
	}
	p, ok := c.Lyrics.Providers[name]
	if !ok {
		return true
	}
	return p.Enabled
}
