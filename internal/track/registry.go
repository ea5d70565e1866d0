// Package track holds the static catalog of Project Beet training tracks.
// Definitions are embedded configuration: never persisted, never mutated.
package track

import "beetacademy/internal/model"

var tracks = []model.TrackDefinition{promptWriting, rubrics}

var trackIndex = func() map[string]model.TrackDefinition {
	idx := make(map[string]model.TrackDefinition, len(tracks))
	for _, t := range tracks {
		idx[t.ID] = t
	}
	return idx
}()

// All returns every registered track in catalog order.
func All() []model.TrackDefinition {
	return tracks
}

// Get looks up a track by id.
func Get(id string) (model.TrackDefinition, bool) {
	t, ok := trackIndex[id]
	return t, ok
}

var promptWriting = model.TrackDefinition{
	ID:    "prompt-writing",
	Title: "Prompt Writing",
	Modules: []model.ModuleDefinition{
		{
			Index: 1,
			Title: "Welcome to Project Beet",
			Path:  "/training/prompt-writing/welcome",
		},
		{
			Index:            2,
			Title:            "Anatomy of a Strong Prompt",
			Path:             "/training/prompt-writing/anatomy",
			RequiresPrevious: true,
			Quiz:             &anatomyQuiz,
		},
		{
			Index:            3,
			Title:            "Spotting Weak Prompts",
			Path:             "/training/prompt-writing/weak-prompts",
			RequiresPrevious: true,
			Quiz:             &weakPromptQuiz,
		},
		{
			Index:            4,
			Title:            "Validation Checklist",
			Path:             "/training/prompt-writing/checklist",
			RequiresPrevious: true,
			Checklist:        &promptChecklist,
		},
		{
			Index:            5,
			Title:            "Writing Practice",
			Path:             "/training/prompt-writing/practice",
			RequiresPrevious: true,
		},
		{
			Index:            6,
			Title:            "Submit Your Prompt",
			Path:             "/training/prompt-writing/submit",
			RequiresPrevious: true,
		},
	},
}

var rubrics = model.TrackDefinition{
	ID:    "rubrics",
	Title: "Rubric Writing",
	Modules: []model.ModuleDefinition{
		{
			Index: 1,
			Title: "Why Rubrics Matter",
			Path:  "/training/rubrics/intro",
		},
		{
			Index:            2,
			Title:            "Criteria That Measure",
			Path:             "/training/rubrics/criteria",
			RequiresPrevious: true,
			Quiz:             &criteriaQuiz,
		},
		{
			Index:            3,
			Title:            "Grading the Graders",
			Path:             "/training/rubrics/examples",
			RequiresPrevious: true,
			Quiz:             &rubricExampleQuiz,
		},
		{
			Index:            4,
			Title:            "Rubric Review Checklist",
			Path:             "/training/rubrics/checklist",
			RequiresPrevious: true,
			Checklist:        &rubricChecklist,
		},
		{
			Index:            5,
			Title:            "Final Self-Check",
			Path:             "/training/rubrics/final",
			RequiresPrevious: true,
		},
	},
}
