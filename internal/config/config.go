package config

import (
	"fmt"
	"os"
	"time"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Sources  SourcesConfig  `yaml:"sources"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Server   ServerConfig   `yaml:"server"`
}

// DatabaseConfig configures SQLite storage.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ScheduleConfig configures the daemon's scrape interval.
type ScheduleConfig struct {
	ScrapeInterval string `yaml:"scrape_interval"`
}

// ParseScrapeInterval returns the scrape interval as time.Duration.
func (s ScheduleConfig) ParseScrapeInterval() time.Duration {
	d, err := time.ParseDuration(s.ScrapeInterval)
	if err != nil {
		return time.Hour
	}
	return d
}

// SourcesConfig holds configuration for all content sources.
type SourcesConfig struct {
	Reddit RedditConfig `yaml:"reddit"`
	RSS    RSSConfig    `yaml:"rss"`
}

// RedditConfig for the Reddit source.
type RedditConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Subreddits []string `yaml:"subreddits"`
	ReplyDelay string   `yaml:"reply_delay"`
}

// ParseReplyDelay returns the courteous delay between comment-thread
// fetches.
func (r RedditConfig) ParseReplyDelay() time.Duration {
	d, err := time.ParseDuration(r.ReplyDelay)
	if err != nil {
		return 800 * time.Millisecond
	}
	return d
}

// RSSConfig for the tipster feed source.
type RSSConfig struct {
	Enabled bool       `yaml:"enabled"`
	Feeds   []FeedItem `yaml:"feeds"`
}

// FeedItem is a single RSS feed entry.
type FeedItem struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// IngestConfig configures the ingestion pass.
type IngestConfig struct {
	Queries        []string `yaml:"queries"`
	PostsPerSearch int      `yaml:"posts_per_search"`
}

// AlertsConfig configures new-pick notification destinations.
type AlertsConfig struct {
	Slack   SlackConfig   `yaml:"slack"`
	Discord DiscordConfig `yaml:"discord"`
	Webhook WebhookConfig `yaml:"webhook"`
}

// SlackConfig for Slack webhook alerts.
type SlackConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// DiscordConfig for Discord webhook alerts.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// WebhookConfig for generic webhook alerts.
type WebhookConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Secret  string `yaml:"secret"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./pickscout.db"},
		Schedule: ScheduleConfig{ScrapeInterval: "1h"},
		Sources: SourcesConfig{
			Reddit: RedditConfig{
				Enabled: true,
				Subreddits: []string{
					"sportsbook", "sportsbetting",
					"PickOfTheDay", "SportsPicksHub",
					"nba", "nfl", "nhl", "baseball", "soccer",
					"PrizePicks", "parlays",
				},
				ReplyDelay: "800ms",
			},
			RSS: RSSConfig{Enabled: false},
		},
		Ingest: IngestConfig{
			Queries: []string{
				"POTD", "Pick of the Day", "daily pick",
				"free pick", "record", "units",
			},
			PostsPerSearch: 25,
		},
		Alerts: AlertsConfig{},
		Server: ServerConfig{Port: 8080},
	}
}

// Load reads configuration from .env, a YAML file and environment
// variable overrides, in that order.
func Load(path string) (*Config, error) {
	_ = gotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PICKSCOUT_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("PICKSCOUT_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		cfg.Alerts.Slack.WebhookURL = v
		cfg.Alerts.Slack.Enabled = true
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Alerts.Discord.WebhookURL = v
		cfg.Alerts.Discord.Enabled = true
	}
}
