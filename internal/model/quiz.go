package model

// QuizKind identifies the interaction style of a module quiz.
type QuizKind string

const (
	QuizKindMultiSelect QuizKind = "multi_select"
	QuizKindPickGood    QuizKind = "pick_good"
)

// QuizElement is one selectable option in a multi-select quiz.
type QuizElement struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// QuizExample is one labeled example in a pick-the-good-one quiz. IsGood is the
// answer key and is never serialized to clients.
type QuizExample struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	IsGood bool   `json:"-"`
}

// QuizDefinition is static, hardcoded ground truth for one module quiz.
// Answer-key fields are excluded from JSON so definitions can be served as-is.
type QuizDefinition struct {
	Key      string        `json:"key"`
	Kind     QuizKind      `json:"kind"`
	Question string        `json:"question"`
	Elements []QuizElement `json:"elements,omitempty"`
	Examples []QuizExample `json:"examples,omitempty"`

	// CorrectKeys is the exact subset of Elements that should be selected
	// (multi-select quizzes only).
	CorrectKeys []string `json:"-"`
}

// ElementVerdict explains one element of a submitted multi-select answer.
type ElementVerdict string

const (
	VerdictCorrect   ElementVerdict = "correct"
	VerdictMissed    ElementVerdict = "missed"
	VerdictIncorrect ElementVerdict = "incorrect"
)

// SelectionResult is the outcome of evaluating a multi-select quiz answer.
type SelectionResult struct {
	Perfect  bool                      `json:"perfect"`
	Verdicts map[string]ElementVerdict `json:"verdicts"`
}

// ExampleReveal carries the true classification of one example, shown for both
// examples after a pick-good quiz is answered.
type ExampleReveal struct {
	ID     string `json:"id"`
	IsGood bool   `json:"isGood"`
}

// PickResult is the outcome of evaluating a pick-the-good-one quiz answer.
type PickResult struct {
	Correct bool            `json:"correct"`
	Reveal  []ExampleReveal `json:"reveal"`
}

// ChecklistItem is a single checkable entry. Notes are informational sub-items
// that are not independently checkable.
type ChecklistItem struct {
	ID    string   `json:"id"`
	Text  string   `json:"text"`
	Notes []string `json:"notes,omitempty"`
}

// ChecklistGroup is a section of a checklist. RequireAll groups are satisfied
// only when every item is checked; otherwise one checked item suffices.
type ChecklistGroup struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	RequireAll bool            `json:"requireAll"`
	Items      []ChecklistItem `json:"items"`
}

// ChecklistDefinition is the static checklist attached to a module.
type ChecklistDefinition struct {
	Key    string           `json:"key"`
	Groups []ChecklistGroup `json:"groups"`
}
