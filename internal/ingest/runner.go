// Package ingest drives one scrape pass: sources x queries in, capper
// upserts and pick inserts out.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pickscout/pickscout/internal/store"
	"github.com/pickscout/pickscout/pkg/alert"
	"github.com/pickscout/pickscout/pkg/pick"
	"github.com/pickscout/pickscout/pkg/source"
)

// DefaultQueries are the search terms that surface pick posts.
var DefaultQueries = []string{
	"POTD",
	"Pick of the Day",
	"daily pick",
	"free pick",
	"record",
	"units",
}

// Stats summarizes one ingestion run.
type Stats struct {
	Fetched    int
	Duplicates int
	Rejected   int
	PicksAdded int
	WriteFails int
}

// Runner executes ingestion passes over a fixed set of sources and
// search queries.
type Runner struct {
	sources []source.Source
	store   store.Store
	alerts  *alert.Manager
	queries []string
	limit   int
}

// New creates a Runner. alerts may be nil.
func New(sources []source.Source, st store.Store, alerts *alert.Manager, queries []string, limit int) *Runner {
	if len(queries) == 0 {
		queries = DefaultQueries
	}
	if limit <= 0 {
		limit = 25
	}
	if alerts == nil {
		alerts = alert.NewManager(nil)
	}
	return &Runner{
		sources: sources,
		store:   st,
		alerts:  alerts,
		queries: queries,
		limit:   limit,
	}
}

// Run performs one full ingestion pass. Source failures degrade to empty
// result sets and storage failures skip single posts; neither aborts the
// pass. Only context cancellation stops it early.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	seen := newSeenSet()

	for _, src := range r.sources {
		parser := pick.NewParser(src)

		for _, community := range src.Communities() {
			for _, query := range r.queries {
				if err := ctx.Err(); err != nil {
					return stats, err
				}

				posts, err := src.Search(ctx, community, query, r.limit)
				if err != nil {
					slog.Warn("search failed",
						"platform", src.Platform(), "community", community,
						"query", query, "error", err)
					continue
				}
				stats.Fetched += len(posts)

				for _, post := range posts {
					if post.Author == "" || post.Author == source.DeletedAuthor {
						stats.Rejected++
						continue
					}
					// Atomic check-and-insert: a post matching several
					// queries is processed exactly once per run.
					if !seen.add(post.URL()) {
						stats.Duplicates++
						continue
					}
					r.ingestPost(ctx, src, parser, post, &stats)
				}
			}
		}
	}
	return stats, nil
}

func (r *Runner) ingestPost(ctx context.Context, src source.Source, parser *pick.Parser, post source.RawPost, stats *Stats) {
	cand, err := parser.Parse(ctx, post)
	if err != nil {
		if errors.Is(err, pick.ErrNoOdds) || errors.Is(err, pick.ErrNoAuthor) {
			stats.Rejected++
			return
		}
		slog.Warn("parse failed", "url", post.URL(), "error", err)
		stats.Rejected++
		return
	}

	platform := string(src.Platform())
	capper := store.Capper{
		Username:      cand.Author,
		Platform:      platform,
		DisplayName:   cand.Author,
		ProfileURL:    profileURL(src.Platform(), cand.Author),
		TotalWins:     cand.Wins,
		TotalLosses:   cand.Losses,
		TotalUnitsWon: cand.TotalUnits,
		Credibility:   string(cand.Credibility),
		LastActive:    time.Now().UTC(),
	}

	capperID, err := r.store.UpsertCapper(ctx, &capper)
	if err != nil {
		// No orphaned pick without a capper row: skip the insert but
		// keep the run going.
		slog.Warn("capper upsert failed", "username", cand.Author, "error", err)
		stats.WriteFails++
		return
	}

	row := store.Pick{
		CapperID:    capperID,
		Sport:       cand.Sport,
		Matchup:     cand.Matchup,
		PickText:    cand.PickText,
		Odds:        cand.Odds,
		RiskUnits:   cand.RiskUnits,
		Status:      "pending",
		SourceURL:   cand.SourceURL,
		RawPostText: cand.RawText,
	}
	if _, err := r.store.InsertPick(ctx, &row); err != nil {
		slog.Warn("pick insert failed", "username", cand.Author, "error", err)
		stats.WriteFails++
		return
	}
	stats.PicksAdded++

	slog.Info("pick ingested",
		"username", cand.Author, "credibility", cand.Credibility,
		"record", recordString(cand.Wins, cand.Losses), "pick", cand.PickText)

	if r.alerts.HasNotifiers() && cand.Credibility == "verified" {
		n := &alert.Notification{
			Capper:      cand.Author,
			Platform:    platform,
			PickText:    cand.PickText,
			Sport:       cand.Sport,
			Odds:        cand.Odds,
			RiskUnits:   cand.RiskUnits,
			Wins:        cand.Wins,
			Losses:      cand.Losses,
			Credibility: string(cand.Credibility),
			SourceURL:   cand.SourceURL,
		}
		if err := r.alerts.Broadcast(ctx, n); err != nil {
			slog.Warn("pick alert failed", "username", cand.Author, "error", err)
		}
	}
}

func profileURL(p source.Platform, author string) string {
	if p == source.PlatformReddit {
		return "https://reddit.com/u/" + author
	}
	return ""
}

func recordString(wins, losses int) string {
	if wins == 0 && losses == 0 {
		return "none"
	}
	return fmt.Sprintf("%d-%d", wins, losses)
}

// seenSet is the in-run dedup set keyed by post URL. add is an atomic
// check-and-insert so concurrent workers cannot double-process a post.
type seenSet struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

func newSeenSet() *seenSet {
	return &seenSet{urls: make(map[string]struct{})}
}

// add returns false if url was already present.
func (s *seenSet) add(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.urls[url]; ok {
		return false
	}
	s.urls[url] = struct{}{}
	return true
}
