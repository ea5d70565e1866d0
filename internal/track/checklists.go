package track

import "beetacademy/internal/model"

var promptChecklist = model.ChecklistDefinition{
	Key: "prompt-validation",
	Groups: []model.ChecklistGroup{
		{
			ID:         "clarity",
			Title:      "Clarity",
			RequireAll: true,
			Items: []model.ChecklistItem{
				{
					ID:   "one-reading",
					Text: "I can state the single intended reading of my prompt in one sentence.",
				},
				{
					ID:   "defined-output",
					Text: "The expected output format is stated or obvious.",
					Notes: []string{
						"A list, a paragraph, a table, a number.",
						"If two annotators would format it differently, say which.",
					},
				},
				{
					ID:   "no-contradictions",
					Text: "No constraint contradicts another constraint.",
				},
			},
		},
		{
			ID:         "durability",
			Title:      "Durability",
			RequireAll: true,
			Items: []model.ChecklistItem{
				{
					ID:   "timeless",
					Text: "The correct answer will still be correct in five years.",
				},
				{
					ID:   "no-live-data",
					Text: "Nothing in the prompt needs real-time or account-specific data.",
				},
			},
		},
		{
			ID:         "stress-tests",
			Title:      "Stress tests tried",
			RequireAll: false,
			Items: []model.ChecklistItem{
				{
					ID:   "read-aloud",
					Text: "I read the prompt aloud to catch a second reading.",
				},
				{
					ID:   "peer-read",
					Text: "Someone else read it and paraphrased the task back to me.",
				},
				{
					ID:   "model-dry-run",
					Text: "I dry-ran it against a model and checked the failure mode.",
				},
			},
		},
	},
}

var rubricChecklist = model.ChecklistDefinition{
	Key: "rubric-review",
	Groups: []model.ChecklistGroup{
		{
			ID:         "criteria-quality",
			Title:      "Criteria quality",
			RequireAll: true,
			Items: []model.ChecklistItem{
				{
					ID:   "each-observable",
					Text: "Every criterion is checkable from the response alone.",
				},
				{
					ID:   "each-binary",
					Text: "Every criterion can be marked met or not met without debate.",
				},
				{
					ID:   "no-overlap",
					Text: "No two criteria reward the same thing twice.",
				},
			},
		},
		{
			ID:         "coverage",
			Title:      "Coverage",
			RequireAll: false,
			Items: []model.ChecklistItem{
				{
					ID:   "best-response",
					Text: "I wrote the response I would want and scored it against the rubric.",
				},
				{
					ID:   "bad-response",
					Text: "I wrote a plausible bad response and confirmed the rubric fails it.",
				},
			},
		},
	},
}
