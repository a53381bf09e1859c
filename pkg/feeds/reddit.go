package feeds

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const RedditBaseURL = "https://www.reddit.com"

type RedditPost struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Selftext    string `json:"selftext"`
	Permalink   string `json:"permalink"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
}

type RedditComment struct {
	Body   string `json:"body"`
	Score  int    `json:"score"`
	Author string `json:"author"`
}

type redditThing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type redditListing struct {
	Data struct {
		Children []redditThing `json:"children"`
	} `json:"data"`
}

type redditCommentData struct {
	RedditComment
	Replies json.RawMessage `json:"replies"`
}

type RedditClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewRedditClient creates a client for the unauthenticated JSON endpoints.
// Reddit throttles requests without a descriptive User-Agent.
func NewRedditClient(timeout time.Duration, userAgent string) *RedditClient {
	return NewRedditClientWithBaseURL(&http.Client{Timeout: timeout}, RedditBaseURL, userAgent)
}

func NewRedditClientWithBaseURL(httpClient *http.Client, baseURL, userAgent string) *RedditClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RedditClient{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// HotPosts returns up to limit posts from the subreddit's hot listing.
func (c *RedditClient) HotPosts(ctx context.Context, subreddit string, limit int) ([]RedditPost, error) {
	endpoint := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", c.baseURL, url.PathEscape(subreddit), limit)

	var listing redditListing
	if err := getJSON(ctx, c.httpClient, endpoint, c.userAgent, &listing); err != nil {
		return nil, fmt.Errorf("reddit r/%s: %w", subreddit, err)
	}

	posts := make([]RedditPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		var p RedditPost
		if err := json.Unmarshal(child.Data, &p); err != nil {
			return nil, fmt.Errorf("reddit r/%s: decoding post: %w", subreddit, err)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// Comments returns the post's whole comment tree flattened depth-first,
// each comment followed by its replies.
func (c *RedditClient) Comments(ctx context.Context, permalink string, limit int) ([]RedditComment, error) {
	endpoint := fmt.Sprintf("%s%s.json?limit=%d", c.baseURL, permalink, limit)

	// The first listing is the post itself, the second its comments.
	var listings []redditListing
	if err := getJSON(ctx, c.httpClient, endpoint, c.userAgent, &listings); err != nil {
		return nil, fmt.Errorf("reddit comments %s: %w", permalink, err)
	}

	if len(listings) < 2 {
		return nil, nil
	}
	return flattenComments(listings[1].Data.Children), nil
}

func flattenComments(children []redditThing) []RedditComment {
	var comments []RedditComment
	for _, child := range children {
		if child.Kind != "t1" {
			continue
		}

		var data redditCommentData
		if err := json.Unmarshal(child.Data, &data); err != nil {
			continue
		}
		comments = append(comments, data.RedditComment)

		// Reddit sends "" instead of a listing when there are no replies.
		replies := bytes.TrimSpace(data.Replies)
		if len(replies) == 0 || replies[0] != '{' {
			continue
		}

		var listing redditListing
		if err := json.Unmarshal(replies, &listing); err != nil {
			continue
		}
		comments = append(comments, flattenComments(listing.Data.Children)...)
	}
	return comments
}

func RedditPermalinkURL(permalink string) string {
	return "https://reddit.com" + permalink
}
