package planner

// The plan types carry JSON tags because the same shape is produced by the
// rule engine, exchanged with AI providers, and served to clients.

type ActionSuggestion struct {
	Text   string `json:"text"`
	Action string `json:"action"`
}

// Warning flags a project whose actual share of time drifted from its
// budget target.
type Warning struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Message     string             `json:"message"`
	Level       string             `json:"level"`
	Suggestions []ActionSuggestion `json:"suggestions"`
}

// Recommendation proposes one pending task for today.
type Recommendation struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ProjectName   string `json:"projectName"`
	Priority      string `json:"priority"`
	EstimatedTime string `json:"estimatedTime"`
	Reason        string `json:"reason"`
}

// EnergySuggestion compares one project's target and actual share.
type EnergySuggestion struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Target      int    `json:"target"`
	Actual      int    `json:"actual"`
	Status      string `json:"status"`
	Suggestion  string `json:"suggestion"`
}

// Plan is the daily plan served to clients.
type Plan struct {
	Warnings          []Warning          `json:"warnings"`
	Recommendations   []Recommendation   `json:"recommendations"`
	EnergySuggestions []EnergySuggestion `json:"energySuggestions"`
	DailyTips         []string           `json:"dailyTips"`
}

const (
	LevelHigh   = "high"
	LevelMedium = "medium"
	LevelLow    = "low"

	EnergyBalanced   = "balanced"
	EnergyUnbalanced = "unbalanced"
)
