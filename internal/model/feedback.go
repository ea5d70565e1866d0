package model

// CategoryConfig describes one fixed evaluation category of the feedback
// schema: the key under which its error bit appears in the category payload,
// plus display metadata.
type CategoryConfig struct {
	ErrorKey    string `json:"errorKey"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// CategoryResult is the parsed outcome for one evaluation category.
type CategoryResult struct {
	Error            bool     `json:"error"`
	Extremity        string   `json:"extremity"`
	EditInstructions []string `json:"editInstructions"`
}

// FeedbackSummary aggregates parsed categories. Total counts only categories
// that parsed successfully; absent or malformed categories do not count.
type FeedbackSummary struct {
	Errors int `json:"errors"`
	Total  int `json:"total"`
}
