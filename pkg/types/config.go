// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "kidsearch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// PrimaryConfig holds settings for the primary web search API.
type PrimaryConfig struct {
	HTTPConfig `yaml:",inline"`

	// Enabled switches the primary API off entirely. Missing or
	// placeholder credentials have the same effect.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// APIKey and CSEID are the search API credentials. Both may also be
	// supplied through the secrets directory.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	CSEID  string `json:"cse_id,omitempty" yaml:"cse_id,omitempty"`

	// DailyQuota is the advisory daily call budget (default 90).
	DailyQuota int `json:"daily_quota" yaml:"daily_quota"`
}

// SearchConfig holds settings for the aggregation pipeline.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// ResultsPerPage is the page size for both modes (default 10).
	ResultsPerPage int `json:"results_per_page" yaml:"results_per_page"`

	// SourcesFile points at the secondary-source descriptor file
	// (YAML or JSON). When absent the built-in encyclopedia sources
	// are used.
	SourcesFile string `json:"sources_file" yaml:"sources_file"`

	// DefaultLanguage is used when the query language cannot be
	// detected (default "fr").
	DefaultLanguage string `json:"default_language" yaml:"default_language"`
}

// CacheConfig holds settings for the two result caches.
type CacheConfig struct {
	// WebMaxEntries and ImageMaxEntries bound cache size
	// (defaults 200 and 100).
	WebMaxEntries   int `json:"web_max_entries" yaml:"web_max_entries"`
	ImageMaxEntries int `json:"image_max_entries" yaml:"image_max_entries"`

	// TTL is the entry lifetime (default 7 days).
	TTL time.Duration `json:"ttl" yaml:"ttl"`

	// DisableImages turns the image cache into a no-op.
	DisableImages bool `json:"disable_images" yaml:"disable_images"`
}

// PanelConfig holds settings for the knowledge panel.
type PanelConfig struct {
	HTTPConfig `yaml:",inline"`

	// Enabled controls whether panel lookups run at all.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// APIURL and BaseURL are templates; "{lang}" is substituted per query.
	APIURL  string `json:"api_url" yaml:"api_url"`
	BaseURL string `json:"base_url" yaml:"base_url"`

	// SourceName is the label shown on the panel (default "Vikidia").
	SourceName string `json:"source_name" yaml:"source_name"`

	// ThumbnailSize is the requested thumbnail width (default 300).
	ThumbnailSize int `json:"thumbnail_size" yaml:"thumbnail_size"`

	// ExtractLength truncates the extract (default 400 characters).
	ExtractLength int `json:"extract_length" yaml:"extract_length"`

	// DisableThumbnails omits the panel image.
	DisableThumbnails bool `json:"disable_thumbnails" yaml:"disable_thumbnails"`
}

// ServerConfig holds settings for the HTTP API server.
type ServerConfig struct {
	Host string `json:"host" yaml:"host"`
	Port int    `json:"port" yaml:"port"`

	// AllowedOrigins lists origins granted CORS access to the API.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// ProxyConfig holds settings for the development CORS relay.
type ProxyConfig struct {
	// Backend is the upstream base URL requests are relayed to.
	Backend string `json:"backend" yaml:"backend"`

	Port int `json:"port" yaml:"port"`

	// AllowedOrigins lists origins the relay echoes back.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// HistoryConfig holds settings for the SQLite search log.
type HistoryConfig struct {
	// Enabled controls whether queries are logged at all.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file (default "data/kidsearch.db").
	Path string `json:"path" yaml:"path"`
}

// SuggestConfig holds settings for autocomplete suggestions.
type SuggestConfig struct {
	// File points at the per-language suggestion lists (YAML).
	File string `json:"file" yaml:"file"`
}

// AppConfig groups all component configurations.
type AppConfig struct {
	Primary PrimaryConfig `json:"primary" yaml:"primary"`
	Search  SearchConfig  `json:"search" yaml:"search"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	Panel   PanelConfig   `json:"panel" yaml:"panel"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Proxy   ProxyConfig   `json:"proxy" yaml:"proxy"`
	History HistoryConfig `json:"history" yaml:"history"`
	Suggest SuggestConfig `json:"suggest" yaml:"suggest"`
}
