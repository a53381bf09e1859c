// Package config holds the scan settings: tracked industries, pain signals,
// subreddits and the fetch limits applied to each source.
package config

import (
	"errors"
	"os"
	"time"
)

var (
	ErrInvalidConfig      = errors.New("invalid config")
	ErrMissingBearerToken = errors.New("API_BEARER_TOKEN not set")
)

// Industry is a tracked customer vertical and the keywords that tag it.
type Industry struct {
	Name     string   `koanf:"name"`
	Keywords []string `koanf:"keywords"`
}

type Config struct {
	LogLevel string `koanf:"log_level"`

	Industries  []Industry `koanf:"industries"`
	PainSignals []string   `koanf:"pain_signals"`
	Subreddits  []string   `koanf:"subreddits"`

	HNTopLimit    int `koanf:"hn_top_limit"`
	HNNewLimit    int `koanf:"hn_new_limit"`
	HNAskLimit    int `koanf:"hn_ask_limit"`
	HNMinComments int `koanf:"hn_min_comments"`
	// HNRequestsPerSecond throttles item fetches; zero means unlimited.
	HNRequestsPerSecond float64 `koanf:"hn_requests_per_second"`

	RedditPostLimit        int           `koanf:"reddit_post_limit"`
	RedditCommentLimit     int           `koanf:"reddit_comment_limit"`
	RedditCommentThreshold int           `koanf:"reddit_comment_threshold"`
	RedditMinCommentScore  int           `koanf:"reddit_min_comment_score"`
	RedditPostDelay        time.Duration `koanf:"reddit_post_delay"`
	RedditSubredditDelay   time.Duration `koanf:"reddit_subreddit_delay"`

	HTTPTimeout time.Duration `koanf:"http_timeout"`
	UserAgent   string        `koanf:"user_agent"`
	OutputDir   string        `koanf:"output_dir"`
}

// IndustryNames returns the configured industry identifiers in declaration order.
func (c *Config) IndustryNames() []string {
	names := make([]string, 0, len(c.Industries))
	for _, ind := range c.Industries {
		names = append(names, ind.Name)
	}
	return names
}

// BearerToken returns the token agent clients must present.
func BearerToken() (string, error) {
	token := os.Getenv("API_BEARER_TOKEN")
	if token == "" {
		return "", ErrMissingBearerToken
	}
	return token, nil
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Industries: []Industry{
			{Name: "finance", Keywords: []string{"fintech", "banking", "trading", "investment", "accounting", "bookkeeping", "tax", "CFO", "financial"}},
			{Name: "legal", Keywords: []string{"lawyer", "attorney", "law firm", "legal tech", "contract", "compliance", "paralegal"}},
			{Name: "healthcare", Keywords: []string{"medical", "healthcare", "clinic", "hospital", "doctor", "patient", "HIPAA", "telehealth"}},
			{Name: "real_estate", Keywords: []string{"real estate", "realtor", "property", "landlord", "rental", "mortgage", "broker"}},
			{Name: "saas_b2b", Keywords: []string{"SaaS", "B2B", "enterprise", "startup", "founder", "CEO", "CTO", "software company"}},
			{Name: "agencies", Keywords: []string{"agency", "marketing agency", "design agency", "consultant", "freelancer", "client work"}},
			{Name: "ecommerce", Keywords: []string{"ecommerce", "shopify", "amazon seller", "dropshipping", "inventory", "fulfillment"}},
			{Name: "developers", Keywords: []string{"developer", "engineer", "devops", "API", "programming", "software development"}},
		},
		PainSignals: []string{
			"I wish there was",
			"I'd pay for",
			"shut up and take my money",
			"is there a tool",
			"looking for a solution",
			"so frustrating",
			"waste so much time",
			"hate doing this manually",
			"anyone know a tool",
			"willing to pay",
			"need a better way",
			"current solution sucks",
			"can't find anything",
			"would save me hours",
			"tired of",
			"there has to be a better way",
			"manual process",
			"spreadsheet hell",
			"pain point",
			"bottleneck",
		},
		Subreddits: []string{
			"entrepreneur", "startups", "SaaS", "smallbusiness", "Bookkeeping",
			"realestate", "freelance", "webdev", "devops", "sysadmin",
			"marketing", "digital_marketing", "ecommerce", "shopify", "lawfirm",
			"medicine", "healthcare", "accounting", "consulting", "agency",
		},
		HNTopLimit:             100,
		HNNewLimit:             100,
		HNAskLimit:             50,
		HNMinComments:          5,
		RedditPostLimit:        50,
		RedditCommentLimit:     100,
		RedditCommentThreshold: 5,
		RedditMinCommentScore:  3,
		RedditPostDelay:        time.Second,
		RedditSubredditDelay:   2 * time.Second,
		HTTPTimeout:            10 * time.Second,
		UserAgent:              "SaaSOpportunityBot/1.0",
		OutputDir:              "results",
	}
}

// fillDefaults copies every unset field from d.
func (c *Config) fillDefaults(d *Config) {
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if len(c.Industries) == 0 {
		c.Industries = d.Industries
	}
	if len(c.PainSignals) == 0 {
		c.PainSignals = d.PainSignals
	}
	if len(c.Subreddits) == 0 {
		c.Subreddits = d.Subreddits
	}
	if c.HNTopLimit == 0 {
		c.HNTopLimit = d.HNTopLimit
	}
	if c.HNNewLimit == 0 {
		c.HNNewLimit = d.HNNewLimit
	}
	if c.HNAskLimit == 0 {
		c.HNAskLimit = d.HNAskLimit
	}
	if c.HNMinComments == 0 {
		c.HNMinComments = d.HNMinComments
	}
	if c.RedditPostLimit == 0 {
		c.RedditPostLimit = d.RedditPostLimit
	}
	if c.RedditCommentLimit == 0 {
		c.RedditCommentLimit = d.RedditCommentLimit
	}
	if c.RedditCommentThreshold == 0 {
		c.RedditCommentThreshold = d.RedditCommentThreshold
	}
	if c.RedditMinCommentScore == 0 {
		c.RedditMinCommentScore = d.RedditMinCommentScore
	}
	if c.RedditPostDelay == 0 {
		c.RedditPostDelay = d.RedditPostDelay
	}
	if c.RedditSubredditDelay == 0 {
		c.RedditSubredditDelay = d.RedditSubredditDelay
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = d.HTTPTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
}

func (c *Config) validate() error {
	if len(c.PainSignals) == 0 {
		return errors.Join(ErrInvalidConfig, errors.New("pain_signals must not be empty"))
	}
	for _, ind := range c.Industries {
		if ind.Name == "" {
			return errors.Join(ErrInvalidConfig, errors.New("industry name must not be empty"))
		}
	}
	if c.RedditPostDelay < 0 || c.RedditSubredditDelay < 0 {
		return errors.Join(ErrInvalidConfig, errors.New("reddit delays must not be negative"))
	}
	return nil
}
