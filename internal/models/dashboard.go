package models

// Uptime reports host uptime and how long this process has been running
type Uptime struct {
	SystemSeconds  float64 `json:"systemSeconds"`
	ProcessSeconds float64 `json:"processSeconds"`
}

// Motivation is the quote of the current minute
type Motivation struct {
	Quote     string   `json:"quote"`
	AllQuotes []string `json:"allQuotes"`
}

// Dashboard is the composite payload served by /api/dashboard
type Dashboard struct {
	System     SystemSnapshot        `json:"system"`
	GitHub     Result[[]RepoSummary] `json:"github"`
	Weather    Result[Weather]       `json:"weather"`
	Uptime     Uptime                `json:"uptime"`
	Motivation Motivation            `json:"motivation"`
}
