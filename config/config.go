package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// TomlShow represents one show registry entry. Order in the config file is
// the listing order.
type TomlShow struct {
	Name    string `toml:"name"`
	FeedURL string `toml:"feed_url"`
}

// TomlServer represents HTTP server configuration
type TomlServer struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// TomlFetch represents fetch collaborator configuration
type TomlFetch struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
	MaxRetries     int `toml:"max_retries"`
}

// TomlCache represents feed cache configuration
type TomlCache struct {
	TTLMinutes int `toml:"ttl_minutes"`
}

// TomlSearch represents search engine configuration
type TomlSearch struct {
	Workers int `toml:"workers"`
}

// TomlTranscripts represents transcript post-processing configuration
type TomlTranscripts struct {
	// Cleanup is one of "raw", "captions" or "auto".
	Cleanup string `toml:"cleanup"`
}

// Config represents the top-level configuration
type Config struct {
	Server      TomlServer      `toml:"server"`
	Fetch       TomlFetch       `toml:"fetch"`
	Cache       TomlCache       `toml:"cache"`
	Search      TomlSearch      `toml:"search"`
	Transcripts TomlTranscripts `toml:"transcripts"`
	Shows       []TomlShow      `toml:"shows"`
}

// Default returns the built-in configuration with the Jupiter Broadcasting
// show registry.
func Default() *Config {
	return &Config{
		Server: TomlServer{
			Host: "0.0.0.0",
			Port: 3000,
		},
		Fetch: TomlFetch{
			TimeoutSeconds: 30,
			MaxRetries:     2,
		},
		Cache: TomlCache{
			TTLMinutes: 15,
		},
		Search: TomlSearch{
			Workers: 4,
		},
		Transcripts: TomlTranscripts{
			Cleanup: "auto",
		},
		Shows: []TomlShow{
			{Name: "Linux Unplugged", FeedURL: "https://feeds.jupiterbroadcasting.com/lup"},
			{Name: "This Week in Bitcoin", FeedURL: "https://serve.podhome.fm/rss/55b53584-4219-4fb0-b916-075ce23f714e"},
			{Name: "The Launch", FeedURL: "https://serve.podhome.fm/rss/04b078f9-b3e8-4363-a576-98e668231306"},
			{Name: "Self-Hosted", FeedURL: "https://feeds.fireside.fm/selfhosted/rss"},
			{Name: "Jupiter Extras", FeedURL: "https://extras.show/rss"},
		},
	}
}

// LoadConfig reads a TOML config file. Fields left out of the file keep their
// defaults; an empty shows list keeps the built-in registry.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := Default()
	config.Shows = nil
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if len(config.Shows) == 0 {
		config.Shows = Default().Shows
	}

	for _, show := range config.Shows {
		if show.Name == "" || show.FeedURL == "" {
			return nil, fmt.Errorf("show registry entries need both name and feed_url")
		}
	}

	return config, nil
}

// FetchTimeout returns the fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// CacheTTL returns the feed cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
