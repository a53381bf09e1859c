package feeds

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const HackerNewsBaseURL = "https://hacker-news.firebaseio.com/v0"

// HNItem is a story or comment from the Firebase item endpoint.
type HNItem struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	By          string `json:"by"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Kids        []int  `json:"kids"`
	Parent      int    `json:"parent"`
	Deleted     bool   `json:"deleted"`
	Dead        bool   `json:"dead"`
}

type HackerNewsClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHackerNewsClient creates a client with a per-request timeout. A positive
// requestsPerSecond throttles every call; zero leaves calls unthrottled.
func NewHackerNewsClient(timeout time.Duration, requestsPerSecond float64) *HackerNewsClient {
	c := NewHackerNewsClientWithBaseURL(&http.Client{Timeout: timeout}, HackerNewsBaseURL)
	if requestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return c
}

func NewHackerNewsClientWithBaseURL(httpClient *http.Client, baseURL string) *HackerNewsClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HackerNewsClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
}

func (c *HackerNewsClient) TopStories(ctx context.Context, limit int) ([]int, error) {
	return c.listing(ctx, "topstories", limit)
}

func (c *HackerNewsClient) NewStories(ctx context.Context, limit int) ([]int, error) {
	return c.listing(ctx, "newstories", limit)
}

// AskStories lists Ask HN posts, which carry most self-text pain points.
func (c *HackerNewsClient) AskStories(ctx context.Context, limit int) ([]int, error) {
	return c.listing(ctx, "askstories", limit)
}

func (c *HackerNewsClient) listing(ctx context.Context, name string, limit int) ([]int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var ids []int
	url := fmt.Sprintf("%s/%s.json", c.baseURL, name)
	if err := getJSON(ctx, c.httpClient, url, "", &ids); err != nil {
		return nil, fmt.Errorf("hackernews %s: %w", name, err)
	}

	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids, nil
}

// Item fetches a single story or comment. Firebase answers unknown ids with a
// JSON null, reported as ErrItemNotFound.
func (c *HackerNewsClient) Item(ctx context.Context, id int) (*HNItem, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var item *HNItem
	url := fmt.Sprintf("%s/item/%d.json", c.baseURL, id)
	if err := getJSON(ctx, c.httpClient, url, "", &item); err != nil {
		return nil, fmt.Errorf("hackernews item %d: %w", id, err)
	}

	if item == nil {
		return nil, fmt.Errorf("hackernews item %d: %w", id, ErrItemNotFound)
	}
	return item, nil
}

func HackerNewsItemURL(id int) string {
	return fmt.Sprintf("https://news.ycombinator.com/item?id=%d", id)
}
