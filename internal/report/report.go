// Package report renders ranked opportunities for chat replies and the console.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/wizelements/saas-opportunity-bot/internal/model"
)

const (
	snippetChars      = 200
	maxSignalsShown   = 3
	consoleTopN       = 20
	consoleTitleChars = 70
)

var rule = strings.Repeat("=", 70)

type IndustryCount struct {
	Industry string
	Count    int
}

// FormatOpportunities renders up to limit records as markdown. The header
// always reports the full count.
func FormatOpportunities(opps []model.Opportunity, limit int) string {
	if len(opps) == 0 {
		return "No opportunities found matching your criteria."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d opportunities:\n\n", len(opps))

	for i, o := range head(opps, limit) {
		fmt.Fprintf(&b, "**#%d [Score: %d]**\n", i+1, o.Priority())
		fmt.Fprintf(&b, "📌 %s\n", o.Title)
		if o.Text != "" {
			fmt.Fprintf(&b, "   %s...\n", model.Truncate(o.Text, snippetChars))
		}
		fmt.Fprintf(&b, "🔍 Signals: %s\n", strings.Join(head(o.PainSignals, maxSignalsShown), ", "))
		if len(o.Industries) > 0 {
			fmt.Fprintf(&b, "🏢 Industries: %s\n", strings.Join(o.Industries, ", "))
		}
		fmt.Fprintf(&b, "🔗 %s\n\n", o.URL)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// IndustryCounts tallies industry tags, most frequent first. Ties keep the
// order in which industries were first seen.
func IndustryCounts(opps []model.Opportunity) []IndustryCount {
	var counts []IndustryCount
	index := map[string]int{}

	for _, o := range opps {
		for _, ind := range o.Industries {
			i, ok := index[ind]
			if !ok {
				i = len(counts)
				index[ind] = i
				counts = append(counts, IndustryCount{Industry: ind})
			}
			counts[i].Count++
		}
	}

	slices.SortStableFunc(counts, func(a, b IndustryCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return counts
}

func IndustrySummary(opps []model.Opportunity) string {
	counts := IndustryCounts(opps)
	if len(counts) == 0 {
		return "No industry-specific opportunities found."
	}

	lines := []string{"**Industry Breakdown:**"}
	for _, c := range counts {
		lines = append(lines, fmt.Sprintf("  • %s: %d opportunities", c.Industry, c.Count))
	}
	return strings.Join(lines, "\n")
}

// PrintSummary writes the console report: the top records by priority and
// the industry breakdown. opps is not reordered.
func PrintSummary(w io.Writer, opps []model.Opportunity) {
	fmt.Fprintf(w, "\n%s\nTOP SAAS OPPORTUNITIES\n%s\n", rule, rule)

	sorted := slices.Clone(opps)
	slices.SortStableFunc(sorted, func(a, b model.Opportunity) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})

	for i, o := range head(sorted, consoleTopN) {
		fmt.Fprintf(w, "\n#%d [Score: %d] [%s]\n", i+1, o.Priority(), strings.ToUpper(o.Source))
		fmt.Fprintf(w, "   %s\n", model.Truncate(o.Title, consoleTitleChars))
		fmt.Fprintf(w, "   Signals: %s\n", strings.Join(head(o.PainSignals, maxSignalsShown), ", "))
		if len(o.Industries) > 0 {
			fmt.Fprintf(w, "   Industries: %s\n", strings.Join(o.Industries, ", "))
		}
		fmt.Fprintf(w, "   URL: %s\n", o.URL)
	}

	fmt.Fprintf(w, "\n%s\nINDUSTRY BREAKDOWN\n%s\n", rule, rule)
	for _, c := range IndustryCounts(opps) {
		fmt.Fprintf(w, "  %s: %d opportunities\n", c.Industry, c.Count)
	}
}

func head[T any](s []T, n int) []T {
	if n >= 0 && n < len(s) {
		return s[:n]
	}
	return s
}
