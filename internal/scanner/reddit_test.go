package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/wizelements/saas-opportunity-bot/internal/config"
	"github.com/wizelements/saas-opportunity-bot/internal/model"
	"github.com/wizelements/saas-opportunity-bot/pkg/feeds"
)

type fakeReddit struct {
	posts        map[string][]feeds.RedditPost
	postErr      map[string]error
	comments     map[string][]feeds.RedditComment
	commentCalls []string
}

func (f *fakeReddit) HotPosts(ctx context.Context, subreddit string, limit int) ([]feeds.RedditPost, error) {
	if err := f.postErr[subreddit]; err != nil {
		return nil, err
	}
	return f.posts[subreddit], nil
}

func (f *fakeReddit) Comments(ctx context.Context, permalink string, limit int) ([]feeds.RedditComment, error) {
	f.commentCalls = append(f.commentCalls, permalink)
	return f.comments[permalink], nil
}

func redditConfig(subs ...string) *config.Config {
	cfg := config.Default()
	cfg.Subreddits = subs
	cfg.RedditPostDelay = 0
	cfg.RedditSubredditDelay = 0
	return cfg
}

func TestRedditScan_PostsAndCommentGate(t *testing.T) {
	rd := &fakeReddit{
		posts: map[string][]feeds.RedditPost{
			"smallbusiness": {
				{Title: "Looking for a solution to invoicing", Selftext: "our realtor clients", Permalink: "/r/smallbusiness/comments/a/", Score: 70, NumComments: 12},
				{Title: "Quiet post", Permalink: "/r/smallbusiness/comments/b/", NumComments: 5},
			},
		},
		comments: map[string][]feeds.RedditComment{
			"/r/smallbusiness/comments/a/": {
				{Body: "I'd pay for that", Score: 3},
				{Body: "I'd pay for that too", Score: 2},
				{Body: "nice", Score: 50},
			},
		},
	}
	cfg := redditConfig("smallbusiness")
	e := NewRedditExtractor(rd, NewMatcher(cfg.PainSignals, cfg.Industries), cfg)

	var got []model.Opportunity
	for o := range e.Scan(context.Background()) {
		got = append(got, o)
	}

	assert.Equal(t, 2, len(got))

	post := got[0]
	assert.Equal(t, model.TypePost, post.Type)
	assert.Equal(t, model.SourceReddit, post.Source)
	assert.Equal(t, "smallbusiness", post.Subreddit)
	assert.Equal(t, "https://reddit.com/r/smallbusiness/comments/a/", post.URL)
	assert.Equal(t, []string{"looking for a solution"}, post.PainSignals)
	assert.Equal(t, []string{"real_estate"}, post.Industries)
	assert.Equal(t, 12, post.Comments())

	c := got[1]
	assert.Equal(t, model.TypeComment, c.Type)
	assert.Equal(t, "I'd pay for that", c.Text)
	assert.Equal(t, 3, c.Score)
	assert.Equal(t, true, c.NumComments == nil)
	assert.Equal(t, "Comment on: Looking for a solution to invoicing", c.Title)
	assert.Equal(t, post.URL, c.URL)

	// Comments are only fetched for posts above the threshold.
	assert.Equal(t, []string{"/r/smallbusiness/comments/a/"}, rd.commentCalls)
}

func TestRedditScan_SubredditFailureContinues(t *testing.T) {
	rd := &fakeReddit{
		postErr: map[string]error{"private": errors.New("HTTP error: 403")},
		posts: map[string][]feeds.RedditPost{
			"SaaS": {{Title: "Spreadsheet hell", Permalink: "/r/SaaS/comments/c/"}},
		},
	}
	cfg := redditConfig("private", "SaaS")
	e := NewRedditExtractor(rd, NewMatcher(cfg.PainSignals, cfg.Industries), cfg)

	var got []model.Opportunity
	for o := range e.Scan(context.Background()) {
		got = append(got, o)
	}

	assert.Equal(t, 1, len(got))
	assert.Equal(t, "SaaS", got[0].Subreddit)
}

func TestRedditScan_CancelDuringDelay(t *testing.T) {
	rd := &fakeReddit{
		posts: map[string][]feeds.RedditPost{
			"a": {{Title: "tired of it", Permalink: "/r/a/1/"}},
			"b": {{Title: "tired of it", Permalink: "/r/b/1/"}},
		},
	}
	cfg := redditConfig("a", "b")
	cfg.RedditSubredditDelay = time.Hour
	e := NewRedditExtractor(rd, NewMatcher(cfg.PainSignals, cfg.Industries), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	var got []model.Opportunity
	for o := range e.Scan(ctx) {
		got = append(got, o)
		cancel()
	}

	assert.Equal(t, 1, len(got))
}

func TestSleep(t *testing.T) {
	assert.Equal(t, true, sleep(context.Background(), 0))
	assert.Equal(t, true, sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, false, sleep(ctx, time.Hour))
	assert.Equal(t, false, sleep(ctx, 0))
}
