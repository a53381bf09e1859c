package model

const (
	MessageHuman = "human"
	MessageAI    = "ai"
)

const (
	ActionScan           = "scan"
	ActionAnalyze        = "analyze"
	ActionExplain        = "explain"
	ActionListIndustries = "list_industries"
	ActionListSignals    = "list_signals"
)

// Message is one turn of a conversation persisted to the history store.
type Message struct {
	Type    string         `json:"type"`
	Content string         `json:"content"`
	Data    map[string]any `json:"data,omitempty"`
}

// Intent is the action derived from a free-text agent query.
type Intent struct {
	Action         string
	IndustryFilter string
	Limit          int
}
