// Package scanner turns Hacker News and Reddit content into scored
// opportunity records.
package scanner

import (
	"strings"

	"github.com/wizelements/saas-opportunity-bot/internal/config"
)

// Matcher tags text with pain signals and industries by case-insensitive
// substring search. There are no word boundaries: "accounting" matches
// inside "unaccounted".
type Matcher struct {
	signals      []string
	lowerSignals []string
	industries   []industryKeywords
}

type industryKeywords struct {
	name     string
	keywords []string
}

func NewMatcher(signals []string, industries []config.Industry) *Matcher {
	m := &Matcher{
		signals:      signals,
		lowerSignals: make([]string, len(signals)),
		industries:   make([]industryKeywords, len(industries)),
	}
	for i, s := range signals {
		m.lowerSignals[i] = strings.ToLower(s)
	}
	for i, ind := range industries {
		kw := make([]string, len(ind.Keywords))
		for j, k := range ind.Keywords {
			kw[j] = strings.ToLower(k)
		}
		m.industries[i] = industryKeywords{name: ind.Name, keywords: kw}
	}
	return m
}

// ContainsPainSignal reports whether text holds any configured signal and
// returns every match in configured order.
func (m *Matcher) ContainsPainSignal(text string) (bool, []string) {
	if text == "" {
		return false, nil
	}

	lower := strings.ToLower(text)
	var found []string
	for i, s := range m.lowerSignals {
		if strings.Contains(lower, s) {
			found = append(found, m.signals[i])
		}
	}
	return len(found) > 0, found
}

// IdentifyIndustry returns each industry with at least one keyword in text,
// once, in declaration order.
func (m *Matcher) IdentifyIndustry(text string) []string {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	var found []string
	for _, ind := range m.industries {
		for _, k := range ind.keywords {
			if strings.Contains(lower, k) {
				found = append(found, ind.name)
				break
			}
		}
	}
	return found
}
