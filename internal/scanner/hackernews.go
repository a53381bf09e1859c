package scanner

import (
	"context"
	"iter"
	"log/slog"

	"github.com/wizelements/saas-opportunity-bot/internal/config"
	"github.com/wizelements/saas-opportunity-bot/internal/metrics"
	"github.com/wizelements/saas-opportunity-bot/internal/model"
	"github.com/wizelements/saas-opportunity-bot/pkg/feeds"
)

const (
	hnMaxKidsPerLevel  = 20
	hnMaxCommentDepth  = 2
	commentTitleLength = 50
)

type HackerNewsSource interface {
	TopStories(ctx context.Context, limit int) ([]int, error)
	NewStories(ctx context.Context, limit int) ([]int, error)
	AskStories(ctx context.Context, limit int) ([]int, error)
	Item(ctx context.Context, id int) (*feeds.HNItem, error)
}

type HackerNewsExtractor struct {
	client      HackerNewsSource
	matcher     *Matcher
	topLimit    int
	newLimit    int
	askLimit    int
	minComments int
}

func NewHackerNewsExtractor(client HackerNewsSource, matcher *Matcher, cfg *config.Config) *HackerNewsExtractor {
	return &HackerNewsExtractor{
		client:      client,
		matcher:     matcher,
		topLimit:    cfg.HNTopLimit,
		newLimit:    cfg.HNNewLimit,
		askLimit:    cfg.HNAskLimit,
		minComments: cfg.HNMinComments,
	}
}

// Scan yields stories and comments that carry a pain signal. Items are
// fetched as the sequence is pulled; breaking out of the loop stops the scan.
func (e *HackerNewsExtractor) Scan(ctx context.Context) iter.Seq[model.Opportunity] {
	return func(yield func(model.Opportunity) bool) {
		defer metrics.ObserveScan(model.SourceHackerNews)()

		ids := e.storyIDs(ctx)
		slog.Info("checking hacker news stories", "count", len(ids))

		for _, id := range ids {
			if ctx.Err() != nil {
				return
			}

			story := e.item(ctx, id)
			if story == nil {
				continue
			}

			fullText := story.Title + " " + story.Text
			if ok, signals := e.matcher.ContainsPainSignal(fullText); ok {
				opp := model.Opportunity{
					Source:      model.SourceHackerNews,
					Title:       story.Title,
					Text:        model.Truncate(story.Text, model.MaxTextChars),
					URL:         feeds.HackerNewsItemURL(story.ID),
					Score:       story.Score,
					NumComments: model.IntPtr(story.Descendants),
					PainSignals: signals,
					Industries:  e.matcher.IdentifyIndustry(fullText),
					Type:        model.TypeStory,
				}
				metrics.RecordOpportunity(opp.Source, opp.Type)
				if !yield(opp) {
					return
				}
			}

			if story.Descendants < e.minComments {
				continue
			}

			for _, c := range e.walkComments(ctx, story, 0) {
				ok, signals := e.matcher.ContainsPainSignal(c.Text)
				if !ok {
					continue
				}

				opp := model.Opportunity{
					Source:      model.SourceHackerNews,
					Title:       "Comment on: " + model.Truncate(story.Title, commentTitleLength),
					Text:        model.Truncate(c.Text, model.MaxTextChars),
					URL:         feeds.HackerNewsItemURL(c.ID),
					Score:       0, // the API exposes no comment score
					PainSignals: signals,
					Industries:  e.matcher.IdentifyIndustry(c.Text),
					Type:        model.TypeComment,
				}
				metrics.RecordOpportunity(opp.Source, opp.Type)
				if !yield(opp) {
					return
				}
			}
		}
	}
}

// storyIDs unions the top, new and ask listings, keeping first-seen order.
// A failed listing contributes nothing.
func (e *HackerNewsExtractor) storyIDs(ctx context.Context) []int {
	listings := []struct {
		name  string
		limit int
		fetch func(context.Context, int) ([]int, error)
	}{
		{"topstories", e.topLimit, e.client.TopStories},
		{"newstories", e.newLimit, e.client.NewStories},
		{"askstories", e.askLimit, e.client.AskStories},
	}

	seen := make(map[int]struct{})
	var ids []int
	for _, l := range listings {
		got, err := l.fetch(ctx, l.limit)
		metrics.RecordUpstream(model.SourceHackerNews, err)
		if err != nil {
			slog.Error("error fetching hacker news listing", "listing", l.name, "error", err)
			continue
		}

		for _, id := range got {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// walkComments returns live comments under parent in pre-order, visiting at
// most hnMaxKidsPerLevel kids per node and recursing while depth < hnMaxCommentDepth.
func (e *HackerNewsExtractor) walkComments(ctx context.Context, parent *feeds.HNItem, depth int) []*feeds.HNItem {
	kids := parent.Kids
	if len(kids) > hnMaxKidsPerLevel {
		kids = kids[:hnMaxKidsPerLevel]
	}

	var comments []*feeds.HNItem
	for _, id := range kids {
		if ctx.Err() != nil {
			break
		}

		c := e.item(ctx, id)
		if c == nil || c.Type != "comment" || c.Deleted {
			continue
		}

		comments = append(comments, c)
		if depth < hnMaxCommentDepth {
			comments = append(comments, e.walkComments(ctx, c, depth+1)...)
		}
	}
	return comments
}

func (e *HackerNewsExtractor) item(ctx context.Context, id int) *feeds.HNItem {
	it, err := e.client.Item(ctx, id)
	metrics.RecordUpstream(model.SourceHackerNews, err)
	if err != nil {
		slog.Warn("error fetching hacker news item", "id", id, "error", err)
		return nil
	}
	return it
}
