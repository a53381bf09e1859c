package agent

import (
	"strconv"
	"strings"

	"github.com/wizelements/saas-opportunity-bot/internal/config"
	"github.com/wizelements/saas-opportunity-bot/internal/model"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

var actionWords = []struct {
	action string
	words  []string
}{
	{model.ActionAnalyze, []string{"analyze", "analysis", "insights", "summarize", "summary"}},
	{model.ActionExplain, []string{"explain", "what is", "how does", "help"}},
	{model.ActionListIndustries, []string{"list industries", "what industries", "available industries"}},
	{model.ActionListSignals, []string{"list signals", "what signals", "pain signals"}},
}

// ParseIntent maps a free-text query to an action, an optional industry
// filter and a result limit. Matching is case-insensitive substring search;
// the first action group with a hit wins, scan otherwise.
func ParseIntent(query string, industries []config.Industry) model.Intent {
	q := strings.ToLower(query)

	intent := model.Intent{
		Action:         model.ActionScan,
		IndustryFilter: industryFilter(q, industries),
		Limit:          DefaultLimit,
	}

	for _, group := range actionWords {
		if containsAny(q, group.words) {
			intent.Action = group.action
			break
		}
	}

	for _, tok := range strings.Fields(q) {
		if !isDigits(tok) {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n > MaxLimit {
			n = MaxLimit
		}
		intent.Limit = n
		break
	}

	return intent
}

// industryFilter prefers an industry named in the query ("real estate" or
// "real_estate") and falls back to the first industry one of whose keywords
// appears, so "fintech" selects finance.
func industryFilter(q string, industries []config.Industry) string {
	for _, ind := range industries {
		name := strings.ToLower(ind.Name)
		if strings.Contains(q, strings.ReplaceAll(name, "_", " ")) || strings.Contains(q, name) {
			return ind.Name
		}
	}

	for _, ind := range industries {
		for _, kw := range ind.Keywords {
			if strings.Contains(q, strings.ToLower(kw)) {
				return ind.Name
			}
		}
	}
	return ""
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
