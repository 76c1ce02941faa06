// Package config loads the atcdesk configuration file.
package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/atcdesk/pkg/adapters/mqtt"
	"github.com/aretw0/atcdesk/pkg/core"
)

// FileNames are the config file names looked up in a desk root, in order.
var FileNames = []string{"atcdesk.yaml", "atcdesk.yml", "atcdesk.toml", "atcdesk.json"}

// Adapters are the store backends a config may name.
var Adapters = []string{"fs", "bolt", "memory"}

// Duration is a time.Duration written as "30s" in config files.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// Choice is one entry of a page dropdown.
type Choice struct {
	Label string `yaml:"label" toml:"label" json:"label"`
	Value string `yaml:"value" toml:"value" json:"value"`
}

// Data selects and tunes the store.
type Data struct {
	Path      string `yaml:"path" toml:"path" json:"path"`
	Adapter   string `yaml:"adapter" toml:"adapter" json:"adapter"`
	ReadOnly  bool   `yaml:"read_only" toml:"read_only" json:"read_only"`
	DevSafety *bool  `yaml:"dev_safety" toml:"dev_safety" json:"dev_safety,omitempty"`
}

// Log configures the optional rotating log file.
type Log struct {
	Level      string `yaml:"level" toml:"level" json:"level"`
	File       string `yaml:"file" toml:"file" json:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days" json:"max_age_days"`
	Compress   bool   `yaml:"compress" toml:"compress" json:"compress"`
}

// Remote points at the flight plan sheet and the auth service.
type Remote struct {
	PlansURL string   `yaml:"plans_url" toml:"plans_url" json:"plans_url"`
	CacheTTL Duration `yaml:"cache_ttl" toml:"cache_ttl" json:"cache_ttl"`
	AuthURL  string   `yaml:"auth_url" toml:"auth_url" json:"auth_url"`
	LoginURL string   `yaml:"login_url" toml:"login_url" json:"login_url"`
}

// News overrides the embedded news panel.
type News struct {
	EmbedURL     string `yaml:"embed_url" toml:"embed_url" json:"embed_url"`
	CompassImage string `yaml:"compass_image" toml:"compass_image" json:"compass_image"`
}

// Web configures the page host.
type Web struct {
	Addr        string   `yaml:"addr" toml:"addr" json:"addr"`
	ChartsDir   string   `yaml:"charts_dir" toml:"charts_dir" json:"charts_dir"`
	Charts      []Choice `yaml:"charts" toml:"charts" json:"charts"`
	Frequencies []Choice `yaml:"frequencies" toml:"frequencies" json:"frequencies"`
}

// Config is the whole file.
type Config struct {
	Desk    string       `yaml:"desk" toml:"desk" json:"desk"`
	Data    Data         `yaml:"data" toml:"data" json:"data"`
	Log     Log          `yaml:"log" toml:"log" json:"log"`
	Remote  Remote       `yaml:"remote" toml:"remote" json:"remote"`
	MQTT    mqtt.Config  `yaml:"mqtt" toml:"mqtt" json:"mqtt"`
	Presets core.Presets `yaml:"presets" toml:"presets" json:"presets"`
	News    News         `yaml:"news" toml:"news" json:"news"`
	Web     Web          `yaml:"web" toml:"web" json:"web"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-" toml:"-" json:"-"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	news := core.DefaultNews()
	return &Config{
		Desk: "GCLP",
		Data: Data{Path: ".", Adapter: "fs"},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Presets: core.DefaultPresets(),
		News:    News{EmbedURL: news.EmbedURL, CompassImage: news.CompassImage},
		Web: Web{
			Addr: "127.0.0.1:8080",
			Charts: []Choice{
				{Label: "GCLP Ground", Value: "charts/GCLP_ground.png"},
				{Label: "GCLP Parking", Value: "charts/GCLP_parking.png"},
				{Label: "GCTS Ground", Value: "charts/GCTS_ground.png"},
			},
			Frequencies: []Choice{
				{Label: "GCLP_APP", Value: "121.300"},
				{Label: "GCLP_TWR", Value: "118.300"},
				{Label: "GCLP_GND", Value: "121.700"},
				{Label: "GCCC_CTR", Value: "132.100"},
			},
		},
	}
}

// NewsItem returns the configured news panel.
func (c *Config) NewsItem() core.NewsItem {
	return core.NewsItem{EmbedURL: c.News.EmbedURL, CompassImage: c.News.CompassImage}
}

// Validate checks the config and fills empty fields that have defaults.
func (c *Config) Validate() error {
	if c.Data.Adapter == "" {
		c.Data.Adapter = "fs"
	}
	if !slices.Contains(Adapters, c.Data.Adapter) {
		return fmt.Errorf("unknown adapter %q (want one of %s)", c.Data.Adapter, strings.Join(Adapters, ", "))
	}
	if c.Data.Path == "" {
		c.Data.Path = "."
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	for name, u := range map[string]string{
		"remote.plans_url": c.Remote.PlansURL,
		"remote.auth_url":  c.Remote.AuthURL,
	} {
		if u == "" {
			continue
		}
		parsed, err := url.Parse(u)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, u)
		}
	}
	if c.Remote.AuthURL != "" && c.Remote.LoginURL == "" {
		return fmt.Errorf("remote.login_url is required when remote.auth_url is set")
	}
	if c.Remote.CacheTTL < 0 {
		return fmt.Errorf("remote.cache_ttl cannot be negative")
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2")
	}
	return nil
}
