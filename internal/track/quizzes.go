package track

import "beetacademy/internal/model"

// Quiz answer keys live only here, server-side. The definitions serialize
// without their CorrectKeys/IsGood fields.

var anatomyQuiz = model.QuizDefinition{
	Key:      "anatomy-quiz",
	Kind:     model.QuizKindMultiSelect,
	Question: "Which of these belong in every strong Beet prompt?",
	Elements: []model.QuizElement{
		{Key: "concrete-task", Label: "A concrete, verifiable task"},
		{Key: "single-reading", Label: "Exactly one reasonable reading"},
		{Key: "trick-wording", Label: "Deliberately tricky wording"},
		{Key: "realistic-asker", Label: "A plausible person who would ask it"},
		{Key: "current-events", Label: "A hook into this week's news"},
		{Key: "stable-answer", Label: "An answer that stays correct over time"},
	},
	CorrectKeys: []string{"concrete-task", "single-reading", "realistic-asker", "stable-answer"},
}

var weakPromptQuiz = model.QuizDefinition{
	Key:      "weak-prompt-quiz",
	Kind:     model.QuizKindPickGood,
	Question: "One of these prompts would pass review. Which one?",
	Examples: []model.QuizExample{
		{
			ID:    "prompt-a",
			Title: "Prompt A",
			Body: "Write a short guide for a home cook on substituting baking soda " +
				"for baking powder, including the ratio and one pitfall to avoid.",
			IsGood: true,
		},
		{
			ID:    "prompt-b",
			Title: "Prompt B",
			Body: "Tell me about the best things happening in AI right now and " +
				"whether they are good or bad.",
		},
	},
}

var criteriaQuiz = model.QuizDefinition{
	Key:      "criteria-quiz",
	Kind:     model.QuizKindMultiSelect,
	Question: "Which properties make a rubric criterion usable by a grader?",
	Elements: []model.QuizElement{
		{Key: "observable", Label: "Checkable from the response text alone"},
		{Key: "binary", Label: "Decidable as met or not met"},
		{Key: "vibes", Label: "Captures the overall vibe of the response"},
		{Key: "independent", Label: "Independent of the other criteria"},
		{Key: "length-bonus", Label: "Rewards longer responses"},
	},
	CorrectKeys: []string{"observable", "binary", "independent"},
}

var rubricExampleQuiz = model.QuizDefinition{
	Key:      "rubric-example-quiz",
	Kind:     model.QuizKindPickGood,
	Question: "Which criterion would two graders score the same way?",
	Examples: []model.QuizExample{
		{
			ID:    "criterion-a",
			Title: "Criterion A",
			Body:  "The response is well-written and engaging throughout.",
		},
		{
			ID:    "criterion-b",
			Title: "Criterion B",
			Body: "The response states the 3:1 substitution ratio and mentions " +
				"at least one taste or texture tradeoff.",
			IsGood: true,
		},
	},
}
