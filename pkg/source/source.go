package source

import (
	"context"
	"time"
)

// Platform identifies where a post was found.
type Platform string

const (
	PlatformReddit Platform = "Reddit"
	PlatformRSS    Platform = "RSS"
)

// DeletedAuthor is the sentinel Reddit uses for removed accounts.
const DeletedAuthor = "[deleted]"

// RawPost is a candidate pick post as returned by a source. It lives only
// for the duration of one ingestion pass and is never persisted as-is.
type RawPost struct {
	Author    string
	Title     string
	Body      string
	Permalink string
	SourceURL string
	Created   time.Time
}

// URL returns the canonical external URL for the post. This is also the
// in-run dedup key. Reddit posts derive it from the permalink; other
// sources set SourceURL directly.
func (p RawPost) URL() string {
	if p.SourceURL != "" {
		return p.SourceURL
	}
	return "https://reddit.com" + p.Permalink
}

// Source is the interface every content platform adapter implements.
// Search and AuthorReplies degrade to empty results on failure; callers
// must treat an empty result as "zero picks", not as fatal.
type Source interface {
	Platform() Platform

	// Communities returns the configured communities (subreddits, feeds)
	// this source searches across.
	Communities() []string

	// Search returns posts matching query within the given community.
	Search(ctx context.Context, community, query string, limit int) ([]RawPost, error)

	// AuthorReplies returns the concatenated text of top-level replies to
	// the given post written by author. Sources without comment threads
	// return "".
	AuthorReplies(ctx context.Context, permalink, author string) (string, error)
}
