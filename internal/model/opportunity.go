package model

const (
	SourceHackerNews = "hackernews"
	SourceReddit     = "reddit"

	TypeStory   = "story"
	TypePost    = "post"
	TypeComment = "comment"

	// MaxTextChars bounds Opportunity.Text.
	MaxTextChars = 500
)

// Opportunity is a snippet that matched at least one pain signal.
type Opportunity struct {
	Source        string   `json:"source"`
	Subreddit     string   `json:"subreddit,omitempty"`
	Title         string   `json:"title"`
	Text          string   `json:"text"`
	URL           string   `json:"url"`
	Score         int      `json:"score"`
	NumComments   *int     `json:"num_comments,omitempty"`
	PainSignals   []string `json:"pain_signals"`
	Industries    []string `json:"industries"`
	Type          string   `json:"type"`
	PriorityScore *int     `json:"priority_score,omitempty"`
}

// Comments returns the comment count, zero when absent.
func (o Opportunity) Comments() int {
	if o.NumComments == nil {
		return 0
	}
	return *o.NumComments
}

// Priority returns the computed priority score, zero before scoring.
func (o Opportunity) Priority() int {
	if o.PriorityScore == nil {
		return 0
	}
	return *o.PriorityScore
}

// Truncate cuts s to at most max characters.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func IntPtr(v int) *int {
	return &v
}
