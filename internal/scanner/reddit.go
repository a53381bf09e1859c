package scanner

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/wizelements/saas-opportunity-bot/internal/config"
	"github.com/wizelements/saas-opportunity-bot/internal/metrics"
	"github.com/wizelements/saas-opportunity-bot/internal/model"
	"github.com/wizelements/saas-opportunity-bot/pkg/feeds"
)

type RedditSource interface {
	HotPosts(ctx context.Context, subreddit string, limit int) ([]feeds.RedditPost, error)
	Comments(ctx context.Context, permalink string, limit int) ([]feeds.RedditComment, error)
}

type RedditExtractor struct {
	client           RedditSource
	matcher          *Matcher
	subreddits       []string
	postLimit        int
	commentLimit     int
	commentThreshold int
	minCommentScore  int
	postDelay        time.Duration
	subredditDelay   time.Duration
}

func NewRedditExtractor(client RedditSource, matcher *Matcher, cfg *config.Config) *RedditExtractor {
	return &RedditExtractor{
		client:           client,
		matcher:          matcher,
		subreddits:       cfg.Subreddits,
		postLimit:        cfg.RedditPostLimit,
		commentLimit:     cfg.RedditCommentLimit,
		commentThreshold: cfg.RedditCommentThreshold,
		minCommentScore:  cfg.RedditMinCommentScore,
		postDelay:        cfg.RedditPostDelay,
		subredditDelay:   cfg.RedditSubredditDelay,
	}
}

// Scan walks every configured subreddit's hot listing. Comments yield only
// when they carry a pain signal and reach minCommentScore. The scan pauses
// after each comment fetch and after each subreddit to stay under Reddit's
// anonymous rate limit.
func (e *RedditExtractor) Scan(ctx context.Context) iter.Seq[model.Opportunity] {
	return func(yield func(model.Opportunity) bool) {
		defer metrics.ObserveScan(model.SourceReddit)()

		for _, sub := range e.subreddits {
			if ctx.Err() != nil {
				return
			}
			slog.Info("checking subreddit", "subreddit", sub)

			posts, err := e.client.HotPosts(ctx, sub, e.postLimit)
			metrics.RecordUpstream(model.SourceReddit, err)
			if err != nil {
				slog.Error("error fetching subreddit", "subreddit", sub, "error", err)
			}

			for _, p := range posts {
				if !e.scanPost(ctx, sub, p, yield) {
					return
				}
			}

			if !sleep(ctx, e.subredditDelay) {
				return
			}
		}
	}
}

// scanPost yields the post and its qualifying comments. It returns false
// when the consumer stopped or ctx ended.
func (e *RedditExtractor) scanPost(ctx context.Context, sub string, p feeds.RedditPost, yield func(model.Opportunity) bool) bool {
	fullText := p.Title + " " + p.Selftext
	if ok, signals := e.matcher.ContainsPainSignal(fullText); ok {
		opp := model.Opportunity{
			Source:      model.SourceReddit,
			Subreddit:   sub,
			Title:       p.Title,
			Text:        model.Truncate(p.Selftext, model.MaxTextChars),
			URL:         feeds.RedditPermalinkURL(p.Permalink),
			Score:       p.Score,
			NumComments: model.IntPtr(p.NumComments),
			PainSignals: signals,
			Industries:  e.matcher.IdentifyIndustry(fullText),
			Type:        model.TypePost,
		}
		metrics.RecordOpportunity(opp.Source, opp.Type)
		if !yield(opp) {
			return false
		}
	}

	if p.NumComments <= e.commentThreshold {
		return true
	}

	comments, err := e.client.Comments(ctx, p.Permalink, e.commentLimit)
	metrics.RecordUpstream(model.SourceReddit, err)
	if err != nil {
		slog.Error("error fetching comments", "permalink", p.Permalink, "error", err)
	}

	for _, c := range comments {
		ok, signals := e.matcher.ContainsPainSignal(c.Body)
		if !ok || c.Score < e.minCommentScore {
			continue
		}

		opp := model.Opportunity{
			Source:      model.SourceReddit,
			Subreddit:   sub,
			Title:       "Comment on: " + model.Truncate(p.Title, commentTitleLength),
			Text:        model.Truncate(c.Body, model.MaxTextChars),
			URL:         feeds.RedditPermalinkURL(p.Permalink),
			Score:       c.Score,
			PainSignals: signals,
			Industries:  e.matcher.IdentifyIndustry(c.Body),
			Type:        model.TypeComment,
		}
		metrics.RecordOpportunity(opp.Source, opp.Type)
		if !yield(opp) {
			return false
		}
	}

	return sleep(ctx, e.postDelay)
}

// sleep waits for d or until ctx ends, reporting whether ctx is still live.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
