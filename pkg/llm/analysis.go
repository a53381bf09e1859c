package llm

import (
	"encoding/json"

	"github.com/wizelements/saas-opportunity-bot/internal/model"
)

const AnalysisSystemPrompt = `You are a SaaS opportunity analyst. Analyze the following pain points found on Hacker News and provide:
1. Top 3-5 most promising SaaS ideas based on these pain points
2. Market size potential (small/medium/large)
3. Competition level (low/medium/high based on your knowledge)
4. Quick MVP suggestion for the top opportunity

Be specific, actionable, and entrepreneurial. Format with markdown.`

const (
	analysisMaxRecords = 15
	analysisTextChars  = 300
)

type analysisRecord struct {
	Title       string   `json:"title"`
	Text        string   `json:"text"`
	PainSignals []string `json:"pain_signals"`
	Industries  []string `json:"industries"`
	Score       int      `json:"score"`
	URL         string   `json:"url"`
}

// BuildAnalysisPayload renders the first 15 records as indented JSON for the
// analysis prompt. score carries the priority score.
func BuildAnalysisPayload(opps []model.Opportunity) string {
	if len(opps) > analysisMaxRecords {
		opps = opps[:analysisMaxRecords]
	}

	records := make([]analysisRecord, 0, len(opps))
	for _, o := range opps {
		records = append(records, analysisRecord{
			Title:       o.Title,
			Text:        model.Truncate(o.Text, analysisTextChars),
			PainSignals: o.PainSignals,
			Industries:  o.Industries,
			Score:       o.Priority(),
			URL:         o.URL,
		})
	}

	data, _ := json.MarshalIndent(records, "", "  ")
	return string(data)
}

func AnalysisUserMessage(opps []model.Opportunity) string {
	return "Analyze these opportunities:\n" + BuildAnalysisPayload(opps)
}
