// Package agent answers chat queries about SaaS opportunities found on
// Hacker News.
package agent

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"unicode"

	"github.com/wizelements/saas-opportunity-bot/internal/config"
	"github.com/wizelements/saas-opportunity-bot/internal/metrics"
	"github.com/wizelements/saas-opportunity-bot/internal/model"
	"github.com/wizelements/saas-opportunity-bot/internal/report"
	"github.com/wizelements/saas-opportunity-bot/internal/scanner"
	"github.com/wizelements/saas-opportunity-bot/pkg/llm"
)

const helpText = `**SaaS Opportunity Bot** 🚀

I scan Hacker News for pain points that indicate SaaS opportunities in high-value industries.

**What I look for:**
• Pain signals like "I wish there was...", "I'd pay for...", "so frustrating"
• Industries: Finance, Legal, Healthcare, Real Estate, SaaS/B2B, Agencies, E-commerce, Developers

**Commands you can try:**
• "Scan for opportunities" - Run a fresh scan
• "Find fintech opportunities" - Filter by industry
• "Analyze the top 10" - Get AI insights
• "Show me healthcare pain points" - Industry-specific scan
• "List industries" - See all tracked industries
• "List signals" - See pain point signals I detect`

const (
	noAnalysisText = "No opportunities found to analyze. Try running a scan first."
	analyzeHint    = "💡 *Say \"analyze\" for AI insights on these opportunities*"
	keywordsShown  = 5
)

type Source interface {
	Scan(ctx context.Context) iter.Seq[model.Opportunity]
}

type ScanCache interface {
	Put(ctx context.Context, sessionID string, opps []model.Opportunity) error
	Get(ctx context.Context, sessionID string) ([]model.Opportunity, bool, error)
}

type Agent struct {
	cfg      *config.Config
	source   Source
	analyzer llm.Analyzer
	cache    ScanCache
}

func New(cfg *config.Config, source Source, analyzer llm.Analyzer, cache ScanCache) *Agent {
	return &Agent{
		cfg:      cfg,
		source:   source,
		analyzer: analyzer,
		cache:    cache,
	}
}

// Process answers one query. Scans run against live Hacker News data and the
// result replaces whatever was cached for the session.
func (a *Agent) Process(ctx context.Context, query, sessionID string) (reply string, err error) {
	intent := ParseIntent(query, a.cfg.Industries)
	defer func() {
		metrics.RecordAgentRequest(intent.Action, err == nil)
	}()

	switch intent.Action {
	case model.ActionExplain:
		return helpText, nil
	case model.ActionListIndustries:
		return a.listIndustries(), nil
	case model.ActionListSignals:
		return a.listSignals(), nil
	}

	slog.Info("running scan", "session_id", sessionID, "industry_filter", intent.IndustryFilter, "limit", intent.Limit)
	opps, err := a.scan(ctx, intent)
	if err != nil {
		return "", err
	}

	if err := a.cache.Put(ctx, sessionID, opps); err != nil {
		slog.Warn("error caching scan", "session_id", sessionID, "error", err)
	}

	if intent.Action == model.ActionAnalyze {
		return a.analyze(ctx, opps), nil
	}

	var b strings.Builder
	b.WriteString(report.FormatOpportunities(opps, intent.Limit))
	b.WriteString("\n\n")
	b.WriteString(report.IndustrySummary(opps))
	b.WriteString("\n\n")
	b.WriteString(analyzeHint)
	return b.String(), nil
}

// scan runs the Hacker News scan on its own goroutine so a cancelled request
// returns immediately. The scan sees the same context and stops soon after.
func (a *Agent) scan(ctx context.Context, intent model.Intent) ([]model.Opportunity, error) {
	done := make(chan []model.Opportunity, 1)
	go func() {
		done <- scanner.RunScan(a.source.Scan(ctx), intent.IndustryFilter, intent.Limit)
	}()

	select {
	case opps := <-done:
		return opps, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("scan cancelled: %w", ctx.Err())
	}
}

func (a *Agent) analyze(ctx context.Context, opps []model.Opportunity) string {
	if len(opps) == 0 {
		return noAnalysisText
	}

	analysis := a.analyzer.Analyze(ctx, llm.AnalysisSystemPrompt, llm.AnalysisUserMessage(opps))

	return fmt.Sprintf("**AI Analysis of %d Opportunities**\n\n%s\n\n---\n*Based on live scan of Hacker News*",
		len(opps), analysis)
}

func (a *Agent) listIndustries() string {
	lines := []string{"**Tracked Industries:**"}
	for _, ind := range a.cfg.Industries {
		kws := ind.Keywords
		if len(kws) > keywordsShown {
			kws = kws[:keywordsShown]
		}
		name := titleCase(strings.ReplaceAll(ind.Name, "_", " "))
		lines = append(lines, fmt.Sprintf("• **%s**: %s...", name, strings.Join(kws, ", ")))
	}
	return strings.Join(lines, "\n")
}

func (a *Agent) listSignals() string {
	lines := []string{"**Pain Point Signals I Detect:**"}
	for i, s := range a.cfg.PainSignals {
		lines = append(lines, fmt.Sprintf("%d. %q", i+1, s))
	}
	return strings.Join(lines, "\n")
}

// titleCase upper-cases each letter that follows a non-letter and
// lower-cases the rest, so "saas b2b" becomes "Saas B2B".
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
