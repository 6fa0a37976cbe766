package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Reddit fetches pick posts from subreddits via Reddit's public JSON
// endpoints. No API key is required.
type Reddit struct {
	client     *http.Client
	baseURL    string
	subreddits []string

	// replyLimiter paces comment-thread fetches so one run never hammers
	// the comments endpoint, regardless of how many posts need the
	// reply fallback.
	replyLimiter *rate.Limiter
}

// NewReddit creates a Reddit source over the given subreddits.
func NewReddit(subreddits []string, replyDelay time.Duration) *Reddit {
	if len(subreddits) == 0 {
		subreddits = []string{
			"sportsbook", "sportsbetting",
			"PickOfTheDay", "SportsPicksHub",
			"nba", "nfl", "nhl", "baseball", "soccer",
			"PrizePicks", "parlays",
		}
	}
	if replyDelay <= 0 {
		replyDelay = 800 * time.Millisecond
	}
	return &Reddit{
		client:       &http.Client{Timeout: 12 * time.Second},
		baseURL:      "https://www.reddit.com",
		subreddits:   subreddits,
		replyLimiter: rate.NewLimiter(rate.Every(replyDelay), 1),
	}
}

func (r *Reddit) Platform() Platform    { return PlatformReddit }
func (r *Reddit) Communities() []string { return r.subreddits }

// Search queries a subreddit for recent posts matching query.
func (r *Reddit) Search(ctx context.Context, subreddit, query string, limit int) ([]RawPost, error) {
	if limit <= 0 {
		limit = 25
	}

	params := url.Values{
		"q":           {query},
		"sort":        {"new"},
		"limit":       {fmt.Sprintf("%d", limit)},
		"restrict_sr": {"true"},
		"t":           {"week"},
	}
	reqURL := fmt.Sprintf("%s/r/%s/search.json?%s", r.baseURL, subreddit, params.Encode())

	resp, err := getWithBackoff(ctx, r.client, reqURL)
	if err != nil {
		return nil, fmt.Errorf("search r/%s: %w", subreddit, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search r/%s status %d", subreddit, resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode r/%s search: %w", subreddit, err)
	}

	var posts []RawPost
	for _, child := range listing.Data.Children {
		d := child.Data
		posts = append(posts, RawPost{
			Author:    d.Author,
			Title:     d.Title,
			Body:      d.Selftext,
			Permalink: d.Permalink,
			Created:   time.Unix(int64(d.CreatedUTC), 0).UTC(),
		})
	}
	return posts, nil
}

// AuthorReplies fetches the comment thread for a post and returns the
// concatenated text of all top-level replies written by author. Cappers
// commonly post their running record as a comment on their own thread
// rather than in the post body.
func (r *Reddit) AuthorReplies(ctx context.Context, permalink, author string) (string, error) {
	if err := r.replyLimiter.Wait(ctx); err != nil {
		return "", err
	}

	reqURL := fmt.Sprintf("%s%s.json?limit=50&depth=1", r.baseURL, strings.TrimSuffix(permalink, "/"))

	resp, err := getWithBackoff(ctx, r.client, reqURL)
	if err != nil {
		return "", fmt.Errorf("fetch replies %s: %w", permalink, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch replies %s status %d", permalink, resp.StatusCode)
	}

	// Reddit returns [postListing, commentListing].
	var listings []redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return "", fmt.Errorf("decode replies %s: %w", permalink, err)
	}
	if len(listings) < 2 {
		return "", nil
	}

	var texts []string
	for _, child := range listings[1].Data.Children {
		if child.Kind != "t1" {
			continue
		}
		d := child.Data
		if !strings.EqualFold(d.Author, author) {
			continue
		}
		if d.Body == "" || d.Body == DeletedAuthor {
			continue
		}
		texts = append(texts, d.Body)
	}
	return strings.Join(texts, "\n"), nil
}

// Reddit JSON API response types.

type redditListing struct {
	Data struct {
		Children []struct {
			Kind string     `json:"kind"`
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Body       string  `json:"body"`
	Author     string  `json:"author"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
}
