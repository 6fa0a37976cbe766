package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Capper is a pick-maker tracked across posts by username. Cumulative
// fields hold current-state totals reported by the source, not deltas:
// upserting replaces them.
type Capper struct {
	ID            string    `db:"id" json:"id"`
	Username      string    `db:"username" json:"username"`
	Platform      string    `db:"platform" json:"platform"`
	DisplayName   string    `db:"display_name" json:"display_name"`
	ProfileURL    string    `db:"profile_url" json:"profile_url"`
	TotalWins     int       `db:"total_wins" json:"total_wins"`
	TotalLosses   int       `db:"total_losses" json:"total_losses"`
	TotalUnitsWon float64   `db:"total_units_won" json:"total_units_won"`
	Credibility   string    `db:"credibility" json:"credibility"`
	LastActive    time.Time `db:"last_active" json:"last_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Pick is one extracted betting recommendation. Content fields are
// immutable after insert; only Status may later transition.
type Pick struct {
	ID            string     `db:"id" json:"id"`
	CapperID      string     `db:"capper_id" json:"capper_id"`
	Sport         string     `db:"sport" json:"sport"`
	Matchup       string     `db:"matchup" json:"matchup"`
	PickText      string     `db:"pick_text" json:"pick_text"`
	Odds          int        `db:"odds" json:"odds"`
	RiskUnits     float64    `db:"risk_units" json:"risk_units"`
	Status        string     `db:"status" json:"status"`
	GameStartTime *time.Time `db:"game_start_time" json:"game_start_time,omitempty"`
	SourceURL     string     `db:"source_url" json:"source_url"`
	RawPostText   string     `db:"raw_post_text" json:"raw_post_text"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// UserProfile is a dashboard user's bankroll settings.
type UserProfile struct {
	ID            string    `db:"id" json:"id"`
	Email         string    `db:"email" json:"email"`
	Bankroll      float64   `db:"bankroll" json:"bankroll"`
	UnitSize      float64   `db:"unit_size" json:"unit_size"`
	RiskTolerance string    `db:"risk_tolerance" json:"risk_tolerance"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// CapperEntry is a leaderboard row: a capper with their most recent
// pending picks attached.
type CapperEntry struct {
	Capper
	ActivePicks []Pick `json:"active_picks"`
}

// PickEntry is a feed row: a pick joined with its capper's summary.
type PickEntry struct {
	Pick
	CapperUsername    string  `db:"capper_username" json:"capper_username"`
	CapperPlatform    string  `db:"capper_platform" json:"capper_platform"`
	CapperCredibility string  `db:"capper_credibility" json:"capper_credibility"`
	CapperWins        int     `db:"capper_wins" json:"capper_wins"`
	CapperLosses      int     `db:"capper_losses" json:"capper_losses"`
	CapperUnitsWon    float64 `db:"capper_units_won" json:"capper_units_won"`
}

// LeaderboardOpts controls the leaderboard projection.
type LeaderboardOpts struct {
	Sport       string
	Credibility string
	Limit       int
}

// FeedOpts controls the pending-picks feed projection.
type FeedOpts struct {
	Sport       string
	Credibility string
	Limit       int
}

// Store is the persistence contract for the ingestion pipeline and the
// read API. Write failures are non-fatal to an ingestion run.
type Store interface {
	UpsertCapper(ctx context.Context, c *Capper) (string, error)
	InsertPick(ctx context.Context, p *Pick) (string, error)

	Leaderboard(ctx context.Context, opts LeaderboardOpts) ([]CapperEntry, error)
	PendingPicks(ctx context.Context, opts FeedOpts) ([]PickEntry, error)
	GradedPicks(ctx context.Context, days, limit int) ([]PickEntry, error)

	SaveUserProfile(ctx context.Context, u *UserProfile) error

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations. The handle is
// constructed once at process start and injected into its consumers.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// UpsertCapper inserts or updates a capper keyed by username. Cumulative
// fields are overwritten, never summed: the source is authoritative for
// current totals. Returns the capper's row id either way.
func (s *SQLiteStore) UpsertCapper(ctx context.Context, c *Capper) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	var id string
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO cappers (id, username, platform, display_name, profile_url,
			total_wins, total_losses, total_units_won, credibility, last_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
			platform        = excluded.platform,
			display_name    = excluded.display_name,
			profile_url     = excluded.profile_url,
			total_wins      = excluded.total_wins,
			total_losses    = excluded.total_losses,
			total_units_won = excluded.total_units_won,
			credibility     = excluded.credibility,
			last_active     = excluded.last_active
		RETURNING id
	`, c.ID, c.Username, c.Platform, c.DisplayName, c.ProfileURL,
		c.TotalWins, c.TotalLosses, c.TotalUnitsWon, c.Credibility,
		c.LastActive, c.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("upsert capper %s: %w", c.Username, err)
	}
	c.ID = id
	return id, nil
}

// InsertPick appends a pick to the ledger.
func (s *SQLiteStore) InsertPick(ctx context.Context, p *Pick) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = "pending"
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO picks (id, capper_id, sport, matchup, pick_text, odds,
			risk_units, status, game_start_time, source_url, raw_post_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.CapperID, p.Sport, p.Matchup, p.PickText, p.Odds,
		p.RiskUnits, p.Status, p.GameStartTime, p.SourceURL, p.RawPostText, p.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("insert pick for capper %s: %w", p.CapperID, err)
	}
	return p.ID, nil
}

// Leaderboard returns cappers sorted by total units won, each with up to
// three most recent pending picks attached. When a sport filter is set,
// only the matching picks are attached and cappers left with none are
// dropped.
func (s *SQLiteStore) Leaderboard(ctx context.Context, opts LeaderboardOpts) ([]CapperEntry, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	q := sq.Select("*").From("cappers").
		OrderBy("total_units_won DESC").
		Limit(uint64(limit))
	if opts.Credibility != "" {
		q = q.Where(sq.Eq{"credibility": opts.Credibility})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build leaderboard query: %w", err)
	}

	var cappers []Capper
	if err := s.db.SelectContext(ctx, &cappers, query, args...); err != nil {
		return nil, fmt.Errorf("list cappers: %w", err)
	}

	entries := make([]CapperEntry, 0, len(cappers))
	for _, c := range cappers {
		pq := sq.Select("*").From("picks").
			Where(sq.Eq{"capper_id": c.ID, "status": "pending"}).
			OrderBy("created_at DESC").
			Limit(3)
		if opts.Sport != "" {
			pq = pq.Where(sq.Expr("LOWER(sport) = LOWER(?)", opts.Sport))
		}

		pquery, pargs, err := pq.ToSql()
		if err != nil {
			return nil, fmt.Errorf("build active picks query: %w", err)
		}

		var picks []Pick
		if err := s.db.SelectContext(ctx, &picks, pquery, pargs...); err != nil {
			return nil, fmt.Errorf("active picks for %s: %w", c.Username, err)
		}

		if opts.Sport != "" && len(picks) == 0 {
			continue
		}
		entries = append(entries, CapperEntry{Capper: c, ActivePicks: picks})
	}
	return entries, nil
}

const pickEntryColumns = `picks.id, picks.capper_id, picks.sport, picks.matchup,
	picks.pick_text, picks.odds, picks.risk_units, picks.status,
	picks.game_start_time, picks.source_url, picks.raw_post_text, picks.created_at,
	cappers.username AS capper_username, cappers.platform AS capper_platform,
	cappers.credibility AS capper_credibility, cappers.total_wins AS capper_wins,
	cappers.total_losses AS capper_losses, cappers.total_units_won AS capper_units_won`

// PendingPicks returns the live feed of pending picks joined with capper
// summaries, newest first.
func (s *SQLiteStore) PendingPicks(ctx context.Context, opts FeedOpts) ([]PickEntry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	q := sq.Select(pickEntryColumns).From("picks").
		Join("cappers ON cappers.id = picks.capper_id").
		Where(sq.Eq{"picks.status": "pending"}).
		OrderBy("picks.created_at DESC").
		Limit(uint64(limit))
	if opts.Sport != "" {
		q = q.Where(sq.Expr("LOWER(picks.sport) = LOWER(?)", opts.Sport))
	}
	if opts.Credibility != "" {
		q = q.Where(sq.Eq{"cappers.credibility": opts.Credibility})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build feed query: %w", err)
	}

	var entries []PickEntry
	if err := s.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list pending picks: %w", err)
	}
	return entries, nil
}

// GradedPicks returns picks with a terminal status created within the
// last days days.
func (s *SQLiteStore) GradedPicks(ctx context.Context, days, limit int) ([]PickEntry, error) {
	if days <= 0 || days > 30 {
		days = 7
	}
	if limit <= 0 {
		limit = 100
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	q := sq.Select(pickEntryColumns).From("picks").
		Join("cappers ON cappers.id = picks.capper_id").
		Where(sq.Eq{"picks.status": []string{"won", "lost", "pushed"}}).
		Where(sq.GtOrEq{"picks.created_at": cutoff}).
		OrderBy("picks.created_at DESC").
		Limit(uint64(limit))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build graded query: %w", err)
	}

	var entries []PickEntry
	if err := s.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list graded picks: %w", err)
	}
	return entries, nil
}

// SaveUserProfile stores a dashboard user's bankroll settings.
func (s *SQLiteStore) SaveUserProfile(ctx context.Context, u *UserProfile) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.RiskTolerance == "" {
		u.RiskTolerance = "moderate"
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, bankroll, unit_size, risk_tolerance, created_at)
		VALUES (?, NULLIF(?, ''), ?, ?, ?, ?)
	`, u.ID, u.Email, u.Bankroll, u.UnitSize, u.RiskTolerance, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("save user profile: %w", err)
	}
	return nil
}
