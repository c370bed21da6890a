package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all user-facing configuration for frametracking.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Upstream UpstreamConfig `toml:"upstream"`
	Cache    CacheConfig    `toml:"cache"`
	Fetch    FetchConfig    `toml:"fetch"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// UpstreamConfig names every remote data source. Dictionary URLs are
// templates with %s standing in for the language code.
type UpstreamConfig struct {
	WorldStateURL       string `toml:"world_state_url"`
	WorldStateMirrorURL string `toml:"world_state_mirror_url"`
	DictPrimaryURL      string `toml:"dict_primary_url"`
	DictFallbackURL     string `toml:"dict_fallback_url"`
	FactionsURL         string `toml:"factions_url"`
	RegionsURL          string `toml:"regions_url"`
	ArbitrationFeedURL  string `toml:"arbitration_feed_url"`
	IncursionFeedURL    string `toml:"incursion_feed_url"`
	BountyCycleURL      string `toml:"bounty_cycle_url"`
	UserAgent           string `toml:"user_agent"`
}

type CacheConfig struct {
	WorldStateTTLSeconds int `toml:"world_state_ttl_seconds"`
	RotationTTLSeconds   int `toml:"rotation_ttl_seconds"`
}

type FetchConfig struct {
	RateLimit        float64 `toml:"rate_limit"`
	MaxRetries       int     `toml:"max_retries"`
	BaseRetryDelayMS int     `toml:"base_retry_delay_ms"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{Host: "localhost", Port: 8080},
		Upstream: UpstreamConfig{
			WorldStateURL:       "https://oracle.browse.wf/worldState.json",
			WorldStateMirrorURL: "https://content.warframe.com/dynamic/worldState.php",
			DictPrimaryURL:      "https://oracle.browse.wf/dicts/%s.json",
			DictFallbackURL:     "https://raw.githubusercontent.com/calamity-inc/warframe-public-export-plus/senpai/dict.%s.json",
			FactionsURL:         "https://raw.githubusercontent.com/calamity-inc/warframe-public-export-plus/senpai/ExportFactions.json",
			RegionsURL:          "https://raw.githubusercontent.com/calamity-inc/warframe-public-export-plus/senpai/ExportRegions.json",
			ArbitrationFeedURL:  "https://browse.wf/arbys.txt",
			IncursionFeedURL:    "https://raw.githubusercontent.com/calamity-inc/warframe-public-export-plus/senpai/supplementals/sp-incursions.txt",
			BountyCycleURL:      "https://oracle.browse.wf/bounty-cycle",
			UserAgent:           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36",
		},
		Cache: CacheConfig{WorldStateTTLSeconds: 60, RotationTTLSeconds: 300},
		Fetch: FetchConfig{RateLimit: 4.0, MaxRetries: 3, BaseRetryDelayMS: 1000},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
