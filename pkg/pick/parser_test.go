package pick

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pickscout/pickscout/pkg/extract"
	"github.com/pickscout/pickscout/pkg/source"
)

type fakeReplies struct {
	text  string
	err   error
	calls int

	lastPermalink string
	lastAuthor    string
}

func (f *fakeReplies) AuthorReplies(ctx context.Context, permalink, author string) (string, error) {
	f.calls++
	f.lastPermalink = permalink
	f.lastAuthor = author
	return f.text, f.err
}

func TestParseRejections(t *testing.T) {
	t.Parallel()

	p := NewParser(nil)

	tests := []struct {
		name string
		post source.RawPost
		want error
	}{
		{"empty author", source.RawPost{Title: "Lakers -110"}, ErrNoAuthor},
		{"deleted author", source.RawPost{Author: "[deleted]", Title: "Lakers -110"}, ErrNoAuthor},
		{"no odds", source.RawPost{Author: "alice", Title: "Lakers look great tonight"}, ErrNoOdds},
		{"spread only", source.RawPost{Author: "alice", Title: "Lakers -5.5", Body: "hammer it"}, ErrNoOdds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(context.Background(), tt.post)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseFullPost(t *testing.T) {
	t.Parallel()

	replies := &fakeReplies{}
	p := NewParser(replies)

	cand, err := p.Parse(context.Background(), source.RawPost{
		Author:    "alice",
		Title:     "Lakers -5.5 -110",
		Body:      "Record: 20-10, 3u play",
		Permalink: "/r/sportsbook/comments/abc/lakers/",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cand.Odds != -110 {
		t.Errorf("odds = %d, want -110", cand.Odds)
	}
	if cand.Wins != 20 || cand.Losses != 10 {
		t.Errorf("record = %d-%d, want 20-10", cand.Wins, cand.Losses)
	}
	if cand.RiskUnits != 3.0 {
		t.Errorf("risk units = %v, want 3.0", cand.RiskUnits)
	}
	if cand.Credibility != extract.CredVerified {
		t.Errorf("credibility = %q, want verified", cand.Credibility)
	}
	if cand.PickText != "Lakers -5.5 -110" {
		t.Errorf("pick text = %q", cand.PickText)
	}
	if cand.Sport != "Basketball" {
		t.Errorf("sport = %q, want Basketball", cand.Sport)
	}
	if cand.SourceURL != "https://reddit.com/r/sportsbook/comments/abc/lakers/" {
		t.Errorf("source url = %q", cand.SourceURL)
	}
	if replies.calls != 0 {
		t.Errorf("reply fallback ran %d times despite record in body", replies.calls)
	}
}

func TestParseReplyFallback(t *testing.T) {
	t.Parallel()

	replies := &fakeReplies{text: "currently 14-6 on the month, ride with me"}
	p := NewParser(replies)

	cand, err := p.Parse(context.Background(), source.RawPost{
		Author:    "bob",
		Title:     "Thunder ML -120",
		Body:      "easy game tonight",
		Permalink: "/r/sportsbook/comments/xyz/thunder/",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if replies.calls != 1 {
		t.Fatalf("reply fallback calls = %d, want 1", replies.calls)
	}
	if replies.lastPermalink != "/r/sportsbook/comments/xyz/thunder/" || replies.lastAuthor != "bob" {
		t.Errorf("fallback fetched %q by %q", replies.lastPermalink, replies.lastAuthor)
	}
	if cand.Wins != 14 || cand.Losses != 6 {
		t.Errorf("record = %d-%d, want 14-6", cand.Wins, cand.Losses)
	}
	if cand.Credibility != extract.CredVerified {
		t.Errorf("credibility = %q, want verified", cand.Credibility)
	}
	if !strings.Contains(cand.RawText, "ride with me") {
		t.Errorf("raw text does not include reply context: %q", cand.RawText)
	}
}

func TestParseReplyFallbackErrorDegrades(t *testing.T) {
	t.Parallel()

	replies := &fakeReplies{err: errors.New("thread gone")}
	p := NewParser(replies)

	cand, err := p.Parse(context.Background(), source.RawPost{
		Author:    "carol",
		Title:     "GUARANTEED winner -110",
		Permalink: "/r/sportsbook/comments/deleted/",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cand.Wins != 0 || cand.Losses != 0 {
		t.Errorf("record = %d-%d, want 0-0", cand.Wins, cand.Losses)
	}
	if cand.Credibility != extract.CredSuspicious {
		t.Errorf("credibility = %q, want suspicious", cand.Credibility)
	}
}

func TestParseDefaults(t *testing.T) {
	t.Parallel()

	p := NewParser(&fakeReplies{})

	cand, err := p.Parse(context.Background(), source.RawPost{
		Author: "dave",
		Body:   "quiet confidence, -105 on the over",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cand.PickText != "Unknown Pick" {
		t.Errorf("pick text = %q, want Unknown Pick", cand.PickText)
	}
	if cand.RiskUnits != 1.0 {
		t.Errorf("risk units = %v, want default 1.0", cand.RiskUnits)
	}
	if cand.TotalUnits != 0 {
		t.Errorf("total units = %v, want 0", cand.TotalUnits)
	}
	if cand.Sport != extract.SportOther {
		t.Errorf("sport = %q, want Other", cand.Sport)
	}
	if cand.Credibility != extract.CredUnverified {
		t.Errorf("credibility = %q, want unverified", cand.Credibility)
	}
}

func TestParseCumulativeUnitsFromBodyOnly(t *testing.T) {
	t.Parallel()

	p := NewParser(nil)

	cand, err := p.Parse(context.Background(), source.RawPost{
		Author: "erin",
		Title:  "Mets ML -115, 2u",
		Body:   "+25.5u on the season so far",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cand.TotalUnits != 25.5 {
		t.Errorf("total units = %v, want 25.5", cand.TotalUnits)
	}
	if cand.RiskUnits != 2.0 {
		t.Errorf("risk units = %v, want 2.0", cand.RiskUnits)
	}
}

func TestParseTruncation(t *testing.T) {
	t.Parallel()

	p := NewParser(nil)

	longTitle := strings.Repeat("Lakers -110 ", 30) // well over 200 chars
	longBody := strings.Repeat("analysis ", 400)    // well over 2000 chars

	cand, err := p.Parse(context.Background(), source.RawPost{
		Author: "frank",
		Title:  longTitle,
		Body:   longBody,
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(cand.PickText) != 200 {
		t.Errorf("pick text length = %d, want 200", len(cand.PickText))
	}
	if len(cand.RawText) != 2000 {
		t.Errorf("raw text length = %d, want 2000", len(cand.RawText))
	}
}
