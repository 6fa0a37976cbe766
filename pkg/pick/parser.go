// Package pick turns raw posts into structured pick candidates by
// orchestrating the signal extractors and the reply-thread fallback.
package pick

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pickscout/pickscout/pkg/extract"
	"github.com/pickscout/pickscout/pkg/source"
)

const (
	maxPickTextLen = 200
	maxRawTextLen  = 2000
)

// Rejection reasons. A rejected post is not an error condition for the
// run; callers skip it and move on.
var (
	ErrNoAuthor = errors.New("post has no usable author")
	ErrNoOdds   = errors.New("no odds found, not a pick")
)

// ReplyFetcher retrieves an author's own top-level replies to a post.
// source.Source satisfies this.
type ReplyFetcher interface {
	AuthorReplies(ctx context.Context, permalink, author string) (string, error)
}

// Candidate is a fully extracted pick, ready to be written to storage.
type Candidate struct {
	Author      string
	Sport       string
	Matchup     string
	PickText    string
	Odds        int
	RiskUnits   float64
	Wins        int
	Losses      int
	TotalUnits  float64
	Credibility extract.Credibility
	SourceURL   string
	RawText     string
}

// Parser builds Candidates from RawPosts.
type Parser struct {
	replies ReplyFetcher
}

// NewParser creates a Parser using replies for the record fallback. A nil
// fetcher disables the fallback.
func NewParser(replies ReplyFetcher) *Parser {
	return &Parser{replies: replies}
}

// Parse runs the extraction state machine over one post. It returns a
// rejection error (ErrNoAuthor, ErrNoOdds) for posts that are not picks;
// extractor absence below the odds gate is resolved to defaults, never
// propagated.
func (p *Parser) Parse(ctx context.Context, post source.RawPost) (*Candidate, error) {
	if post.Author == "" || post.Author == source.DeletedAuthor {
		return nil, ErrNoAuthor
	}

	fullText := post.Title + "\n" + post.Body

	odds, ok := extract.Odds(fullText)
	if !ok {
		return nil, ErrNoOdds
	}

	wins, losses, hasRecord := extract.Record(fullText)

	// Cappers often state their running record only in a reply to their
	// own post, so an absent record triggers one comment-thread scan.
	replyText := ""
	if !hasRecord && post.Permalink != "" && p.replies != nil {
		var err error
		replyText, err = p.replies.AuthorReplies(ctx, post.Permalink, post.Author)
		if err != nil {
			slog.Warn("reply fallback failed", "permalink", post.Permalink, "error", err)
			replyText = ""
		}
		if replyText != "" {
			wins, losses, hasRecord = extract.Record(replyText)
		}
	}

	// Sport and credibility detection benefit from the full context,
	// replies included. The record is not re-scanned once found.
	blob := fullText
	if replyText != "" {
		blob += "\n" + replyText
	}

	pickText := truncate(post.Title, maxPickTextLen)
	if pickText == "" {
		pickText = "Unknown Pick"
	}

	return &Candidate{
		Author:      post.Author,
		Sport:       extract.Sport(blob),
		Matchup:     "",
		PickText:    pickText,
		Odds:        odds,
		RiskUnits:   extract.RiskUnits(blob),
		Wins:        wins,
		Losses:      losses,
		TotalUnits:  extract.CumulativeUnits(post.Body),
		Credibility: extract.Classify(hasRecord, extract.HasHype(blob)),
		SourceURL:   post.URL(),
		RawText:     truncate(blob, maxRawTextLen),
	}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
