package types

import "time"

// HTTPConfig holds shared HTTP settings used by every source backend.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "exhibition-curator/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// MetConfig holds settings for The Met Collection API backend.
type MetConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// MaxObjects caps how many object IDs from the search response get a
	// detail request (default 30).
	MaxObjects int `json:"max_objects" yaml:"max_objects" mapstructure:"max_objects"`
}

// ClevelandConfig holds settings for the Cleveland Museum of Art Open
// Access API backend.
type ClevelandConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// PartialResults keeps items from healthy backends when another
	// backend fails. When false any failure discards the whole search.
	PartialResults bool `json:"partial_results" yaml:"partial_results" mapstructure:"partial_results"`

	// PageSize is the number of items per result page (default 10).
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	Met       MetConfig       `json:"met" yaml:"met" mapstructure:"met"`
	Cleveland ClevelandConfig `json:"cleveland" yaml:"cleveland" mapstructure:"cleveland"`
}

// CollectionConfig holds settings for the in-memory collection store.
type CollectionConfig struct {
	// DefaultName is the collection that exists, and is active, at startup.
	DefaultName string `json:"default_name" yaml:"default_name" mapstructure:"default_name"`
}

// LogConfig controls the logrus logger.
type LogConfig struct {
	// Level is a logrus level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "text" or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings read from exhibition-curator.yaml.
type Config struct {
	Log         LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	Search      SearchConfig     `json:"search" yaml:"search" mapstructure:"search"`
	Collections CollectionConfig `json:"collections" yaml:"collections" mapstructure:"collections"`
}

// Default values applied when the config file and environment leave a
// key unset.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultUserAgent     = "exhibition-curator/0.1"
	DefaultPageSize      = 10
	DefaultMetMaxObjects = 30
	DefaultMetBaseURL    = "https://collectionapi.metmuseum.org/public/collection/v1"
	DefaultClevelandURL  = "https://openaccess-api.clevelandart.org/api"
	DefaultCollection    = "default"
)

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{Level: "warn", Format: "text"},
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   DefaultTimeout,
				UserAgent: DefaultUserAgent,
			},
			PageSize: DefaultPageSize,
			Met: MetConfig{
				Enabled:    true,
				BaseURL:    DefaultMetBaseURL,
				MaxObjects: DefaultMetMaxObjects,
			},
			Cleveland: ClevelandConfig{
				Enabled: true,
				BaseURL: DefaultClevelandURL,
			},
		},
		Collections: CollectionConfig{DefaultName: DefaultCollection},
	}
}
