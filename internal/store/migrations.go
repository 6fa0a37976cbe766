package store

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id             TEXT PRIMARY KEY,
    email          TEXT UNIQUE,
    bankroll       REAL NOT NULL DEFAULT 0,
    unit_size      REAL NOT NULL DEFAULT 5,
    risk_tolerance TEXT NOT NULL DEFAULT 'moderate'
                   CHECK (risk_tolerance IN ('conservative','moderate','aggressive')),
    created_at     DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS cappers (
    id              TEXT PRIMARY KEY,
    username        TEXT NOT NULL UNIQUE,
    platform        TEXT NOT NULL,
    display_name    TEXT NOT NULL DEFAULT '',
    profile_url     TEXT NOT NULL DEFAULT '',
    total_wins      INTEGER NOT NULL DEFAULT 0,
    total_losses    INTEGER NOT NULL DEFAULT 0,
    total_units_won REAL NOT NULL DEFAULT 0,
    credibility     TEXT NOT NULL DEFAULT 'unverified'
                    CHECK (credibility IN ('verified','unverified','suspicious')),
    last_active     DATETIME NOT NULL,
    created_at      DATETIME NOT NULL
);

-- Append-only ledger: pick rows are never deleted, and only status
-- changes after insert.
CREATE TABLE IF NOT EXISTS picks (
    id              TEXT PRIMARY KEY,
    capper_id       TEXT NOT NULL REFERENCES cappers(id) ON DELETE CASCADE,
    sport           TEXT NOT NULL DEFAULT '',
    matchup         TEXT NOT NULL DEFAULT '',
    pick_text       TEXT NOT NULL,
    odds            INTEGER NOT NULL,
    risk_units      REAL NOT NULL DEFAULT 1,
    status          TEXT NOT NULL DEFAULT 'pending'
                    CHECK (status IN ('pending','won','lost','pushed')),
    game_start_time DATETIME,
    source_url      TEXT NOT NULL DEFAULT '',
    raw_post_text   TEXT NOT NULL DEFAULT '',
    created_at      DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_picks_capper_id ON picks(capper_id);
CREATE INDEX IF NOT EXISTS idx_picks_status    ON picks(status);
CREATE INDEX IF NOT EXISTS idx_picks_created   ON picks(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_cappers_units   ON cappers(total_units_won DESC);
`
