package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pickscout/pickscout/internal/config"
	"github.com/pickscout/pickscout/internal/ingest"
	"github.com/pickscout/pickscout/internal/logging"
	"github.com/pickscout/pickscout/internal/scheduler"
	"github.com/pickscout/pickscout/internal/store"
	"github.com/pickscout/pickscout/pkg/alert"
	"github.com/pickscout/pickscout/pkg/server"
	"github.com/pickscout/pickscout/pkg/source"
)

func loadConfig() (*config.Config, error) {
	logging.Init(slog.LevelInfo)

	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func buildSources(cfg *config.Config) []source.Source {
	var sources []source.Source

	if cfg.Sources.Reddit.Enabled {
		sources = append(sources, source.NewReddit(
			cfg.Sources.Reddit.Subreddits,
			cfg.Sources.Reddit.ParseReplyDelay(),
		))
	}
	if cfg.Sources.RSS.Enabled {
		feeds := make([]source.RSSFeed, len(cfg.Sources.RSS.Feeds))
		for i, f := range cfg.Sources.RSS.Feeds {
			feeds[i] = source.RSSFeed{Name: f.Name, URL: f.URL}
		}
		sources = append(sources, source.NewRSS(feeds))
	}

	return sources
}

func buildAlertManager(cfg *config.Config) *alert.Manager {
	var notifiers []alert.Notifier

	if cfg.Alerts.Slack.Enabled && cfg.Alerts.Slack.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewSlack(cfg.Alerts.Slack.WebhookURL))
	}
	if cfg.Alerts.Discord.Enabled && cfg.Alerts.Discord.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewDiscord(cfg.Alerts.Discord.WebhookURL))
	}
	if cfg.Alerts.Webhook.Enabled && cfg.Alerts.Webhook.URL != "" {
		notifiers = append(notifiers, alert.NewWebhook(cfg.Alerts.Webhook.URL, cfg.Alerts.Webhook.Secret))
	}

	return alert.NewManager(notifiers)
}

func buildRunner(cfg *config.Config, db store.Store, sources []source.Source) *ingest.Runner {
	return ingest.New(sources, db, buildAlertManager(cfg),
		cfg.Ingest.Queries, cfg.Ingest.PostsPerSearch)
}

func runScrape(platforms []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	allSources := buildSources(cfg)

	// Filter to requested platforms only.
	sources := allSources
	if len(platforms) > 0 {
		wanted := make(map[string]bool)
		for _, p := range platforms {
			wanted[strings.ToLower(strings.TrimSpace(p))] = true
		}
		sources = nil
		for _, s := range allSources {
			if wanted[strings.ToLower(string(s.Platform()))] {
				sources = append(sources, s)
			}
		}
		if len(sources) == 0 {
			return fmt.Errorf("no matching platforms for: %s", strings.Join(platforms, ", "))
		}
	}

	runner := buildRunner(cfg, db, sources)
	stats, err := runner.Run(context.Background())
	if err != nil {
		return fmt.Errorf("ingestion pass: %w", err)
	}

	slog.Info("scrape done",
		"fetched", stats.Fetched, "duplicates", stats.Duplicates,
		"rejected", stats.Rejected, "picks_added", stats.PicksAdded,
		"write_fails", stats.WriteFails)
	return nil
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if port == 0 {
		port = cfg.Server.Port
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	return server.New(db, port).ListenAndServe()
}

func runDaemon(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if port == 0 {
		port = cfg.Server.Port
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runner := buildRunner(cfg, db, buildSources(cfg))
	sched := scheduler.New(runner, cfg.Schedule.ParseScrapeInterval())

	go func() {
		if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Error("scheduler error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
	}()

	return server.New(db, port).ListenAndServe()
}

func runSeed() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	if err := store.Seed(context.Background(), db); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	slog.Info("seeding complete")
	return nil
}
