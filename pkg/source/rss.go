package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// RSSFeed is a named RSS/Atom feed URL publishing picks.
type RSSFeed struct {
	Name string
	URL  string
}

// RSS collects pick posts from tipster RSS/Atom feeds. Feeds have no
// comment threads, so the reply fallback is never available here.
type RSS struct {
	client *http.Client
	parser *gofeed.Parser
	feeds  map[string]RSSFeed
	names  []string
	maxAge time.Duration
}

// NewRSS creates an RSS source over the given feeds.
func NewRSS(feeds []RSSFeed) *RSS {
	byName := make(map[string]RSSFeed, len(feeds))
	names := make([]string, 0, len(feeds))
	for _, f := range feeds {
		byName[f.Name] = f
		names = append(names, f.Name)
	}
	return &RSS{
		client: &http.Client{Timeout: 12 * time.Second},
		parser: gofeed.NewParser(),
		feeds:  byName,
		names:  names,
		maxAge: 7 * 24 * time.Hour,
	}
}

func (r *RSS) Platform() Platform    { return PlatformRSS }
func (r *RSS) Communities() []string { return r.names }

// Search fetches a feed and returns entries whose text contains query.
func (r *RSS) Search(ctx context.Context, feedName, query string, limit int) ([]RawPost, error) {
	feed, ok := r.feeds[feedName]
	if !ok {
		return nil, fmt.Errorf("unknown feed %q", feedName)
	}
	if limit <= 0 {
		limit = 25
	}

	resp, err := getWithBackoff(ctx, r.client, feed.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feed.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s status %d", feed.Name, resp.StatusCode)
	}

	parsed, err := r.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feed.Name, err)
	}

	cutoff := time.Now().Add(-r.maxAge)
	needle := strings.ToLower(query)

	var posts []RawPost
	for _, entry := range parsed.Items {
		if len(posts) >= limit {
			break
		}

		published := time.Now().UTC()
		if entry.PublishedParsed != nil {
			published = entry.PublishedParsed.UTC()
		} else if entry.UpdatedParsed != nil {
			published = entry.UpdatedParsed.UTC()
		}
		if published.Before(cutoff) {
			continue
		}

		if !strings.Contains(strings.ToLower(entry.Title+"\n"+entry.Description), needle) {
			continue
		}

		author := ""
		if entry.Author != nil {
			author = entry.Author.Name
		}
		if author == "" {
			author = parsed.Title
		}

		link := entry.Link
		if link == "" && len(entry.Links) > 0 {
			link = entry.Links[0]
		}

		posts = append(posts, RawPost{
			Author:    author,
			Title:     entry.Title,
			Body:      entry.Description,
			SourceURL: link,
			Created:   published,
		})
	}
	return posts, nil
}

// AuthorReplies always returns "": feeds carry no comment threads.
func (r *RSS) AuthorReplies(ctx context.Context, permalink, author string) (string, error) {
	return "", nil
}
