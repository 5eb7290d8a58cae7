package contracts

// Severity of an insight. Ordering: High > Medium > Low.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Rank returns a sortable weight; unknown values rank lowest.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Priority of an insight. Ordering: high > medium > low.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns a sortable weight; unknown values rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Fact is one labelled metric quoted by an insight.
type Fact struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Insight is a cross-domain alert produced by one rule evaluation.
// Insights are created fresh on every engine run and never mutated afterwards.
type Insight struct {
	ID                string   `json:"id"`
	Severity          Severity `json:"severity"`
	Priority          Priority `json:"priority"`
	Domains           []Domain `json:"domains"`
	Title             string   `json:"title"`
	Message           string   `json:"message"`
	Explanation       string   `json:"explanation"`
	RecommendedAction string   `json:"recommended_action,omitempty"`
	Facts             []Fact   `json:"facts,omitempty"`
}
